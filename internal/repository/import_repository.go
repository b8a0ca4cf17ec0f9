package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

// ImportRepository handles database operations for import records
type ImportRepository struct {
	db *sql.DB
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *sql.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// List returns all imports, newest first
func (r *ImportRepository) List(ctx context.Context) ([]models.Import, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, source, row_count, created_at FROM imports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	imports := []models.Import{}
	for rows.Next() {
		var imp models.Import
		var created int64
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.RowCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imp.CreatedAt = time.UnixMilli(created).UTC()
		imports = append(imports, imp)
	}

	return imports, rows.Err()
}

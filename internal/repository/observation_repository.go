package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/database"
	"github.com/jengzang/fox-tracks-go/internal/models"
)

// ErrSubjectNotFound is returned when no observations exist for a subject
var ErrSubjectNotFound = errors.New("subject not found")

// ObservationRepository handles database operations for observations
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// InsertBatch stores an import record and all of its observations in one transaction
func (r *ObservationRepository) InsertBatch(ctx context.Context, imp models.Import, observations []models.Observation) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO imports (id, source, row_count, created_at) VALUES (?, ?, ?, ?)`,
			imp.ID, imp.Source, imp.RowCount, imp.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert import: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations
			(import_id, subject_id, ts_unix_ms, latitude, longitude, hdop, satellite_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, o := range observations {
			var hdop sql.NullFloat64
			if o.HDOP != nil {
				hdop = sql.NullFloat64{Float64: *o.HDOP, Valid: true}
			}
			var satellites sql.NullInt64
			if o.SatelliteCount != nil {
				satellites = sql.NullInt64{Int64: int64(*o.SatelliteCount), Valid: true}
			}

			_, err := stmt.ExecContext(ctx, imp.ID, o.SubjectID, o.Timestamp.UnixMilli(),
				o.Latitude, o.Longitude, hdop, satellites)
			if err != nil {
				return fmt.Errorf("failed to insert observation %d: %w", i, err)
			}
		}
		return nil
	})
}

// ListSubjects returns every subject with its observation count and time span
func (r *ObservationRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT subject_id, COUNT(*), MIN(ts_unix_ms), MAX(ts_unix_ms)
		FROM observations GROUP BY subject_id ORDER BY subject_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var s models.Subject
		var first, last int64
		if err := rows.Scan(&s.ID, &s.Count, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		s.FirstSeen = time.UnixMilli(first).UTC()
		s.LastSeen = time.UnixMilli(last).UTC()
		subjects = append(subjects, s)
	}

	return subjects, rows.Err()
}

// GetTrajectory retrieves a subject's observations in time order.
// Returns ErrSubjectNotFound when the subject has no observations at all.
func (r *ObservationRepository) GetTrajectory(ctx context.Context, filter models.ObservationFilter) (models.Trajectory, error) {
	query := `SELECT subject_id, ts_unix_ms, latitude, longitude, hdop, satellite_count FROM observations`

	conditions := []string{"subject_id = ?"}
	args := []interface{}{filter.SubjectID}

	if !filter.From.IsZero() {
		conditions = append(conditions, "ts_unix_ms >= ?")
		args = append(args, filter.From.UnixMilli())
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "ts_unix_ms <= ?")
		args = append(args, filter.To.UnixMilli())
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY ts_unix_ms, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	traj := models.Trajectory{}
	for rows.Next() {
		var o models.Observation
		var ts int64
		var hdop sql.NullFloat64
		var satellites sql.NullInt64
		if err := rows.Scan(&o.SubjectID, &ts, &o.Latitude, &o.Longitude, &hdop, &satellites); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.Timestamp = time.UnixMilli(ts).UTC()
		if hdop.Valid {
			v := hdop.Float64
			o.HDOP = &v
		}
		if satellites.Valid {
			v := int(satellites.Int64)
			o.SatelliteCount = &v
		}
		traj = append(traj, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read observations: %w", err)
	}

	if len(traj) == 0 {
		exists, err := r.subjectExists(ctx, filter.SubjectID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, filter.SubjectID)
		}
	}

	return traj, nil
}

// GetAll retrieves every stored observation, ordered by subject then time
func (r *ObservationRepository) GetAll(ctx context.Context) ([]models.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT subject_id, ts_unix_ms, latitude, longitude
		FROM observations ORDER BY subject_id, ts_unix_ms, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []models.Observation
	for rows.Next() {
		var o models.Observation
		var ts int64
		if err := rows.Scan(&o.SubjectID, &ts, &o.Latitude, &o.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.Timestamp = time.UnixMilli(ts).UTC()
		observations = append(observations, o)
	}

	return observations, rows.Err()
}

func (r *ObservationRepository) subjectExists(ctx context.Context, subjectID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM observations WHERE subject_id = ? LIMIT 1", subjectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check subject: %w", err)
	}
	return true, nil
}

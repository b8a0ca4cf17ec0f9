package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/fox-tracks-go/internal/ingest"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// ImportService loads telemetry exports into the database
type ImportService struct {
	observationRepo *repository.ObservationRepository
	importRepo      *repository.ImportRepository
	now             func() time.Time
}

// NewImportService creates a new import service
func NewImportService(observationRepo *repository.ObservationRepository, importRepo *repository.ImportRepository) *ImportService {
	return &ImportService{
		observationRepo: observationRepo,
		importRepo:      importRepo,
		now:             time.Now,
	}
}

// ImportCSV parses a CSV export and stores every row under a new import.
// Nothing is stored if any row is malformed.
func (s *ImportService) ImportCSV(ctx context.Context, source string, r io.Reader) (*models.Import, error) {
	observations, err := ingest.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: %s has no observations", trajectory.ErrInvalidArgument, source)
	}

	imp := models.Import{
		ID:        uuid.NewString(),
		Source:    source,
		RowCount:  len(observations),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.observationRepo.InsertBatch(ctx, imp, observations); err != nil {
		return nil, fmt.Errorf("failed to store import: %w", err)
	}

	log.Printf("[ImportService] Imported %d observations of %d subjects from %s (import %s)",
		imp.RowCount, len(ingest.Subjects(observations)), source, imp.ID)

	return &imp, nil
}

// ListImports returns all imports, newest first
func (s *ImportService) ListImports(ctx context.Context) ([]models.Import, error) {
	imports, err := s.importRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return imports, nil
}

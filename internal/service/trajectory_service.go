package service

import (
	"context"
	"fmt"

	"github.com/jengzang/fox-tracks-go/internal/ingest"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// TrajectoryService serves stored trajectories, raw or downsampled
type TrajectoryService struct {
	observationRepo *repository.ObservationRepository
}

// NewTrajectoryService creates a new trajectory service
func NewTrajectoryService(observationRepo *repository.ObservationRepository) *TrajectoryService {
	return &TrajectoryService{
		observationRepo: observationRepo,
	}
}

// ListSubjects returns every tracked subject
func (s *TrajectoryService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.observationRepo.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// Get retrieves the observations of one subject within the filter's time range
func (s *TrajectoryService) Get(ctx context.Context, filter models.ObservationFilter) (models.Trajectory, error) {
	if filter.SubjectID == "" {
		return nil, fmt.Errorf("%w: subject is required", trajectory.ErrInvalidArgument)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: range ends before it starts", trajectory.ErrInvalidArgument)
	}

	traj, err := s.observationRepo.GetTrajectory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get trajectory: %w", err)
	}
	return traj, nil
}

// Downsampled retrieves a subject's observations and keeps only those that
// pass th. A time range without observations yields an empty trajectory.
func (s *TrajectoryService) Downsampled(ctx context.Context, filter models.ObservationFilter, th trajectory.Thresholds) (models.Trajectory, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	traj, err := s.Get(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(traj) == 0 {
		return traj, nil
	}
	return trajectory.Downsample(traj, th.MinInterval, th.MinDistance)
}

// All retrieves every stored trajectory keyed by subject
func (s *TrajectoryService) All(ctx context.Context) (map[string]models.Trajectory, error) {
	all, err := s.observationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}
	return ingest.GroupBySubject(all), nil
}

// DownsampledAll downsamples every stored subject independently
func (s *TrajectoryService) DownsampledAll(ctx context.Context, th trajectory.Thresholds) (map[string]models.Trajectory, error) {
	all, err := s.observationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}
	if len(all) == 0 {
		return map[string]models.Trajectory{}, nil
	}
	return trajectory.DownsampleBySubject(all, th)
}

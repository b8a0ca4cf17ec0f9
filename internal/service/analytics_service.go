package service

import (
	"context"
	"fmt"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// Correlation modes accepted by AnalyticsService.Correlation
const (
	CorrelationAligned       = "aligned"
	CorrelationByMonth       = "month"
	CorrelationEndOfDay      = "eod"
	CorrelationEndOfDayMonth = "eod-month"
)

// AnalyticsService computes movement statistics over stored trajectories
type AnalyticsService struct {
	observationRepo *repository.ObservationRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(observationRepo *repository.ObservationRepository) *AnalyticsService {
	return &AnalyticsService{
		observationRepo: observationRepo,
	}
}

func (s *AnalyticsService) load(ctx context.Context, subjectID string) (models.Trajectory, error) {
	traj, err := s.observationRepo.GetTrajectory(ctx, models.ObservationFilter{SubjectID: subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to get trajectory: %w", err)
	}
	return traj, nil
}

func (s *AnalyticsService) pair(ctx context.Context, a, b string) (models.Trajectory, models.Trajectory, error) {
	if a == b {
		return nil, nil, fmt.Errorf("%w: a subject cannot be paired with itself", trajectory.ErrInvalidArgument)
	}
	trajA, err := s.load(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	trajB, err := s.load(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return trajA, trajB, nil
}

// Summary returns the headline movement figures of a subject
func (s *AnalyticsService) Summary(ctx context.Context, subjectID string) (*models.MovementSummary, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	summary, err := analysis.Summarize(subjectID, traj)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Sections returns the average leg distance per time-of-day section
func (s *AnalyticsService) Sections(ctx context.Context, subjectID string, intervalMinutes int) ([]models.SectionDistance, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.DistanceByTimeSection(traj, intervalMinutes)
}

// Monthly returns the average daily distance per month
func (s *AnalyticsService) Monthly(ctx context.Context, subjectID string) ([]models.MonthlyDailyDistance, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.DailyDistanceByMonth(traj), nil
}

// Directions returns the predominant direction of travel per time-of-day section
func (s *AnalyticsService) Directions(ctx context.Context, subjectID string, intervalMinutes int) ([]models.SectionDirection, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.DirectionsByTimeSection(traj, intervalMinutes)
}

// Displacement returns the first-to-last move of each month
func (s *AnalyticsService) Displacement(ctx context.Context, subjectID string) ([]models.MonthlyDisplacement, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.MonthlyDisplacement(traj), nil
}

// Clusters returns the k most visited areas of a subject
func (s *AnalyticsService) Clusters(ctx context.Context, subjectID string, k int) ([]models.FrequentArea, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.FrequentAreas(traj, k)
}

// PairDistance summarizes how far apart two subjects were over time
func (s *AnalyticsService) PairDistance(ctx context.Context, a, b string) (*models.PairDistanceStats, error) {
	trajA, trajB, err := s.pair(ctx, a, b)
	if err != nil {
		return nil, err
	}
	result, err := analysis.PairDistanceStats(trajA, trajB)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MonthlyPairDistance averages the separation of two subjects per month
func (s *AnalyticsService) MonthlyPairDistance(ctx context.Context, a, b string) ([]models.MonthlyPairDistance, error) {
	trajA, trajB, err := s.pair(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return analysis.MonthlyPairDistance(trajA, trajB), nil
}

// Correlation correlates the coordinates of two subjects. The month modes
// return one result per month, the others a single result.
func (s *AnalyticsService) Correlation(ctx context.Context, a, b, mode string) ([]models.Correlation, error) {
	var correlate func(a, b models.Trajectory) []models.Correlation
	switch mode {
	case CorrelationAligned, "":
		correlate = func(a, b models.Trajectory) []models.Correlation {
			return []models.Correlation{analysis.CorrelateAligned(a, b)}
		}
	case CorrelationByMonth:
		correlate = analysis.CorrelateByMonth
	case CorrelationEndOfDay:
		correlate = func(a, b models.Trajectory) []models.Correlation {
			return []models.Correlation{analysis.CorrelateEndOfDay(a, b)}
		}
	case CorrelationEndOfDayMonth:
		correlate = analysis.CorrelateEndOfDayByMonth
	default:
		return nil, fmt.Errorf("%w: unknown correlation mode %q", trajectory.ErrInvalidArgument, mode)
	}

	trajA, trajB, err := s.pair(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return correlate(trajA, trajB), nil
}

// Heatmap bins every stored observation into geohash cells
func (s *AnalyticsService) Heatmap(ctx context.Context, precision int) (*models.HeatmapResponse, error) {
	if precision < 1 || precision > 12 {
		return nil, fmt.Errorf("%w: geohash precision %d not in [1, 12]", trajectory.ErrInvalidArgument, precision)
	}
	all, err := s.observationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}
	heatmap := analysis.Heatmap(all, precision)
	return &heatmap, nil
}

// MonthlyFrames groups a subject's observations by calendar month for timelapse views
func (s *AnalyticsService) MonthlyFrames(ctx context.Context, subjectID string) ([]analysis.Frame, error) {
	traj, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return analysis.MonthlyFrames(traj), nil
}

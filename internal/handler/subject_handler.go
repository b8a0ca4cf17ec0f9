package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/export"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/service"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// SubjectHandler handles HTTP requests for subjects and their observations
type SubjectHandler struct {
	trajectoryService *service.TrajectoryService
	defaults          trajectory.Thresholds
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(trajectoryService *service.TrajectoryService, defaults trajectory.Thresholds) *SubjectHandler {
	return &SubjectHandler{
		trajectoryService: trajectoryService,
		defaults:          defaults,
	}
}

// ListSubjects handles GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.trajectoryService.ListSubjects(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  subjects,
		"count": len(subjects),
	})
}

// load resolves the request's subject, range and optional downsampling
func (h *SubjectHandler) load(c *gin.Context) (models.ObservationFilter, models.DownsampleQuery, models.Trajectory, error) {
	var q models.DownsampleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return models.ObservationFilter{}, q, nil, fmt.Errorf("%w: %v", trajectory.ErrInvalidArgument, err)
	}
	filter, err := observationFilter(c.Param("id"), q)
	if err != nil {
		return filter, q, nil, err
	}

	if !q.Downsample {
		traj, err := h.trajectoryService.Get(c.Request.Context(), filter)
		return filter, q, traj, err
	}
	th, err := thresholds(h.defaults, q.MinInterval, q.MinDistance)
	if err != nil {
		return filter, q, nil, err
	}
	traj, err := h.trajectoryService.Downsampled(c.Request.Context(), filter, th)
	return filter, q, traj, err
}

// GetObservations handles GET /api/v1/subjects/:id/observations
func (h *SubjectHandler) GetObservations(c *gin.Context) {
	filter, q, traj, err := h.load(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"subjectId":   filter.SubjectID,
		"downsampled": q.Downsample,
		"data":        traj,
		"count":       len(traj),
	})
}

// GetGeoJSON handles GET /api/v1/subjects/:id/geojson
func (h *SubjectHandler) GetGeoJSON(c *gin.Context) {
	filter, _, traj, err := h.load(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	data, err := export.FeatureCollection(map[string]models.Trajectory{filter.SubjectID: traj}).MarshalJSON()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func observationFilter(subjectID string, q models.DownsampleQuery) (models.ObservationFilter, error) {
	from, err := parseTime(q.From)
	if err != nil {
		return models.ObservationFilter{}, err
	}
	to, err := parseTime(q.To)
	if err != nil {
		return models.ObservationFilter{}, err
	}
	return models.ObservationFilter{SubjectID: subjectID, From: from, To: to}, nil
}

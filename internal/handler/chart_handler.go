package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/chart"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/service"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// ChartHandler serves rendered HTML charts and PNG plots
type ChartHandler struct {
	trajectoryService *service.TrajectoryService
	analyticsService  *service.AnalyticsService
	defaults          trajectory.Thresholds
	options           chart.Options
}

// NewChartHandler creates a new chart handler
func NewChartHandler(trajectoryService *service.TrajectoryService, analyticsService *service.AnalyticsService,
	defaults trajectory.Thresholds, options chart.Options) *ChartHandler {
	return &ChartHandler{
		trajectoryService: trajectoryService,
		analyticsService:  analyticsService,
		defaults:          defaults,
		options:           options,
	}
}

// trajectories loads every subject, downsampled with the default thresholds
// when ?downsample=true
func (h *ChartHandler) trajectories(c *gin.Context) (map[string]models.Trajectory, error) {
	if c.Query("downsample") == "true" {
		return h.trajectoryService.DownsampledAll(c.Request.Context(), h.defaults)
	}
	return h.trajectoryService.All(c.Request.Context())
}

func (h *ChartHandler) render(c *gin.Context, contentType string, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		response.InternalError(c, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

const htmlContentType = "text/html; charset=utf-8"

// GetMap handles GET /charts/map
func (h *ChartHandler) GetMap(c *gin.Context) {
	trajectories, err := h.trajectories(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.render(c, htmlContentType, func(buf *bytes.Buffer) error {
		return chart.Map(buf, trajectories, h.options)
	})
}

// GetTrajectoryPNG handles GET /charts/trajectories.png
func (h *ChartHandler) GetTrajectoryPNG(c *gin.Context) {
	trajectories, err := h.trajectories(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.render(c, "image/png", func(buf *bytes.Buffer) error {
		return chart.WritePNG(buf, trajectories)
	})
}

// GetHeatmap handles GET /charts/heatmap?precision=5
func (h *ChartHandler) GetHeatmap(c *gin.Context) {
	precision, err := intQuery(c, "precision", analysis.DefaultHeatmapPrecision)
	if err != nil {
		response.FromError(c, err)
		return
	}
	heatmap, err := h.analyticsService.Heatmap(c.Request.Context(), precision)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.render(c, htmlContentType, func(buf *bytes.Buffer) error {
		return chart.Heatmap(buf, *heatmap, h.options)
	})
}

// GetTimelapse handles GET /charts/timelapse?subject=ID
func (h *ChartHandler) GetTimelapse(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		response.BadRequest(c, "subject is required")
		return
	}
	frames, err := h.analyticsService.MonthlyFrames(c.Request.Context(), subject)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.render(c, htmlContentType, func(buf *bytes.Buffer) error {
		return chart.Timelapse(buf, subject, frames, h.options)
	})
}

// GetPair handles GET /charts/pairs/:a/:b
func (h *ChartHandler) GetPair(c *gin.Context) {
	a, b := c.Param("a"), c.Param("b")
	distances, err := h.analyticsService.MonthlyPairDistance(c.Request.Context(), a, b)
	if err != nil {
		response.FromError(c, err)
		return
	}
	correlations, err := h.analyticsService.Correlation(c.Request.Context(), a, b, service.CorrelationByMonth)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.render(c, htmlContentType, func(buf *bytes.Buffer) error {
		return chart.Pair(buf, a, b, distances, correlations, h.options)
	})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/service"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for movement statistics
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// respond sends data, or the error mapped to its status
func respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, data)
}

// GetSummary handles GET /api/v1/subjects/:id/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.Summary(c.Request.Context(), c.Param("id"))
	respond(c, summary, err)
}

// GetSections handles GET /api/v1/subjects/:id/analytics/sections?interval=90
func (h *AnalyticsHandler) GetSections(c *gin.Context) {
	interval, err := intQuery(c, "interval", analysis.DefaultSectionMinutes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	sections, err := h.analyticsService.Sections(c.Request.Context(), c.Param("id"), interval)
	respond(c, sections, err)
}

// GetMonthly handles GET /api/v1/subjects/:id/analytics/monthly
func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	monthly, err := h.analyticsService.Monthly(c.Request.Context(), c.Param("id"))
	respond(c, monthly, err)
}

// GetDirections handles GET /api/v1/subjects/:id/analytics/directions?interval=90
func (h *AnalyticsHandler) GetDirections(c *gin.Context) {
	interval, err := intQuery(c, "interval", analysis.DefaultSectionMinutes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	directions, err := h.analyticsService.Directions(c.Request.Context(), c.Param("id"), interval)
	respond(c, directions, err)
}

// GetDisplacement handles GET /api/v1/subjects/:id/analytics/displacement
func (h *AnalyticsHandler) GetDisplacement(c *gin.Context) {
	displacement, err := h.analyticsService.Displacement(c.Request.Context(), c.Param("id"))
	respond(c, displacement, err)
}

// GetClusters handles GET /api/v1/subjects/:id/analytics/clusters?k=5
func (h *AnalyticsHandler) GetClusters(c *gin.Context) {
	k, err := intQuery(c, "k", analysis.DefaultClusters)
	if err != nil {
		response.FromError(c, err)
		return
	}
	clusters, err := h.analyticsService.Clusters(c.Request.Context(), c.Param("id"), k)
	respond(c, clusters, err)
}

// GetPairDistance handles GET /api/v1/pairs/:a/:b/distance
func (h *AnalyticsHandler) GetPairDistance(c *gin.Context) {
	stats, err := h.analyticsService.PairDistance(c.Request.Context(), c.Param("a"), c.Param("b"))
	respond(c, stats, err)
}

// GetMonthlyPairDistance handles GET /api/v1/pairs/:a/:b/monthly-distance
func (h *AnalyticsHandler) GetMonthlyPairDistance(c *gin.Context) {
	monthly, err := h.analyticsService.MonthlyPairDistance(c.Request.Context(), c.Param("a"), c.Param("b"))
	respond(c, monthly, err)
}

// GetCorrelation handles GET /api/v1/pairs/:a/:b/correlation?mode=aligned|month|eod|eod-month
func (h *AnalyticsHandler) GetCorrelation(c *gin.Context) {
	mode := c.DefaultQuery("mode", service.CorrelationAligned)
	correlations, err := h.analyticsService.Correlation(c.Request.Context(), c.Param("a"), c.Param("b"), mode)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"mode": mode,
		"data": correlations,
	})
}

// GetHeatmap handles GET /api/v1/heatmap?precision=5
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	precision, err := intQuery(c, "precision", analysis.DefaultHeatmapPrecision)
	if err != nil {
		response.FromError(c, err)
		return
	}
	heatmap, err := h.analyticsService.Heatmap(c.Request.Context(), precision)
	respond(c, heatmap, err)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// DownsampleHandler downsamples observations posted by the client without storing them
type DownsampleHandler struct {
	defaults trajectory.Thresholds
}

// NewDownsampleHandler creates a new downsample handler
func NewDownsampleHandler(defaults trajectory.Thresholds) *DownsampleHandler {
	return &DownsampleHandler{defaults: defaults}
}

// Downsample handles POST /api/v1/downsample
func (h *DownsampleHandler) Downsample(c *gin.Context) {
	var req models.DownsampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	th, err := thresholds(h.defaults, req.MinInterval, req.MinDistance)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if req.BySubject {
		bySubject, err := trajectory.DownsampleBySubject(req.Observations, th)
		if err != nil {
			response.FromError(c, err)
			return
		}
		retained := 0
		for _, traj := range bySubject {
			retained += len(traj)
		}
		response.Success(c, gin.H{
			"subjects":   bySubject,
			"total":      len(req.Observations),
			"retained":   retained,
			"thresholds": thresholdsJSON(th),
		})
		return
	}

	traj, err := trajectory.Downsample(req.Observations, th.MinInterval, th.MinDistance)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":       traj,
		"total":      len(req.Observations),
		"retained":   len(traj),
		"thresholds": thresholdsJSON(th),
	})
}

func thresholdsJSON(th trajectory.Thresholds) gin.H {
	return gin.H{
		"minInterval": th.MinInterval.String(),
		"minDistance": th.MinDistance,
	}
}

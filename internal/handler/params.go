package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/ingest"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// thresholds overrides defaults with the request's values where given
func thresholds(defaults trajectory.Thresholds, minInterval string, minDistance *float64) (trajectory.Thresholds, error) {
	th := defaults
	if minInterval != "" {
		d, err := time.ParseDuration(minInterval)
		if err != nil {
			return th, fmt.Errorf("%w: minInterval %q is not a duration", trajectory.ErrInvalidArgument, minInterval)
		}
		th.MinInterval = d
	}
	if minDistance != nil {
		th.MinDistance = *minDistance
	}
	return th, th.Validate()
}

// parseTime accepts anything a CSV timestamp may hold, or a bare date
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := ingest.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", trajectory.ErrInvalidArgument, err)
	}
	return t, nil
}

// intQuery reads a positive integer query parameter, falling back to def
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", trajectory.ErrInvalidArgument, name, raw)
	}
	return v, nil
}

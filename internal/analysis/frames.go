package analysis

import (
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// Frame is one step of a timelapse. Trail holds every fix up to the end of
// Month; Current holds the fixes recorded within Month.
type Frame struct {
	Month   string            `json:"month"`
	Trail   models.Trajectory `json:"trail"`
	Current models.Trajectory `json:"current"`
}

// MonthlyFrames builds one cumulative frame per calendar month (UTC) that has fixes
func MonthlyFrames(traj models.Trajectory) []Frame {
	sorted := trajectory.SortByTime(traj)

	var frames []Frame
	for start := 0; start < len(sorted); {
		month := sorted[start].Timestamp.UTC().Format(monthLayout)
		end := start
		for end < len(sorted) && sorted[end].Timestamp.UTC().Format(monthLayout) == month {
			end++
		}
		frames = append(frames, Frame{
			Month:   month,
			Trail:   sorted[:end:end],
			Current: sorted[start:end:end],
		})
		start = end
	}
	return frames
}

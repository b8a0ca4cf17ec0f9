// Package report prints trajectories for terminal review.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

// DisplayLimit is the most rows printed before the middle is elided
const DisplayLimit = 10

// WriteTable prints traj as an aligned table. Trajectories longer than
// DisplayLimit show their first and last DisplayLimit/2 rows around a "..." row.
func WriteTable(w io.Writer, traj models.Trajectory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tTIMESTAMP\tLAT\tLON\tHDOP\tSATS")

	row := func(o models.Observation) {
		fmt.Fprintf(tw, "%s\t%s\t%.6f\t%.6f\t%s\t%s\n",
			o.SubjectID, o.Timestamp.UTC().Format(time.DateTime), o.Latitude, o.Longitude,
			optional(o.HDOP, "%.1f"), optional(o.SatelliteCount, "%d"))
	}

	if len(traj) > DisplayLimit {
		half := DisplayLimit / 2
		for _, o := range traj[:half] {
			row(o)
		}
		fmt.Fprintln(tw, "...\t...\t...\t...\t...\t...")
		for _, o := range traj[len(traj)-half:] {
			row(o)
		}
	} else {
		for _, o := range traj {
			row(o)
		}
	}

	return tw.Flush()
}

func optional[T any](v *T, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

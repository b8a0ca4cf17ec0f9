package chart

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

const (
	pngWidth  = 10 * vg.Inch
	pngHeight = 8 * vg.Inch
)

// TrajectoryPlot draws each subject's path as a line with its fixes marked
func TrajectoryPlot(trajectories map[string]models.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Fox Trajectories"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	for i, s := range sortedSubjects(trajectories) {
		traj := trajectories[s]
		if len(traj) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(traj))
		for j, o := range traj {
			pts[j] = plotter.XY{X: o.Longitude, Y: o.Latitude}
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %w", s, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(2)

		p.Add(line, points)
		p.Legend.Add(s, line, points)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// WritePNG renders TrajectoryPlot as a PNG image to w
func WritePNG(w io.Writer, trajectories map[string]models.Trajectory) error {
	p, err := TrajectoryPlot(trajectories)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

// SavePNG renders TrajectoryPlot to a PNG file
func SavePNG(path string, trajectories map[string]models.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, trajectories); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package chart renders trajectories and analytics as HTML charts and PNG plots.
package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paulmach/orb"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/export"
	"github.com/jengzang/fox-tracks-go/internal/models"
)

// viridis runs from dark purple (low) to yellow (high)
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Options applies to every rendered page
type Options struct {
	// AssetsHost serves echarts.min.js; empty uses the go-echarts default CDN
	AssetsHost string
}

func (o Options) init(title string) opts.Initialization {
	return opts.Initialization{PageTitle: title, Width: "100%", Height: "720px", AssetsHost: o.AssetsHost}
}

// mapAxes frames a lon/lat scatter around bound with a small margin
func mapAxes(bound orb.Bound) []charts.GlobalOpts {
	padLon := (bound.Max.Lon() - bound.Min.Lon()) * 0.05
	padLat := (bound.Max.Lat() - bound.Min.Lat()) * 0.05
	if padLon == 0 {
		padLon = 0.01
	}
	if padLat == 0 {
		padLat = 0.01
	}
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Longitude", NameLocation: "middle", NameGap: 25,
			Min: bound.Min.Lon() - padLon, Max: bound.Max.Lon() + padLon}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Latitude", NameLocation: "middle", NameGap: 40,
			Min: bound.Min.Lat() - padLat, Max: bound.Max.Lat() + padLat}),
	}
}

func boundOf(trajectories map[string]models.Trajectory) (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for _, traj := range trajectories {
		if len(traj) == 0 {
			continue
		}
		b := export.LineString(traj).Bound()
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}
	return bound, found
}

func scatterData(traj models.Trajectory) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(traj))
	for _, o := range traj {
		data = append(data, opts.ScatterData{
			Name:  o.Timestamp.UTC().Format("2006-01-02 15:04"),
			Value: []interface{}{o.Longitude, o.Latitude},
		})
	}
	return data
}

func sortedSubjects(trajectories map[string]models.Trajectory) []string {
	subjects := make([]string, 0, len(trajectories))
	for s := range trajectories {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// Map renders every subject's fixes as one scatter series on a lon/lat plane
func Map(w io.Writer, trajectories map[string]models.Trajectory, o Options) error {
	scatter := charts.NewScatter()
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(o.init("Fox Movements")),
		charts.WithTitleOpts(opts.Title{Title: "Fox Movements", Subtitle: fmt.Sprintf("subjects=%d", len(trajectories))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	}
	if bound, ok := boundOf(trajectories); ok {
		global = append(global, mapAxes(bound)...)
	}
	scatter.SetGlobalOptions(global...)

	for _, s := range sortedSubjects(trajectories) {
		scatter.AddSeries(s, scatterData(trajectories[s]), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// Heatmap renders geohash cells as a scatter colored by fix count
func Heatmap(w io.Writer, heatmap models.HeatmapResponse, o Options) error {
	data := make([]opts.ScatterData, 0, len(heatmap.Points))
	bound := orb.Bound{Min: orb.Point{180, 90}, Max: orb.Point{-180, -90}}
	for _, p := range heatmap.Points {
		data = append(data, opts.ScatterData{Name: p.Geohash, Value: []interface{}{p.Lng, p.Lat, p.Value}})
		bound = bound.Extend(orb.Point{p.Lng, p.Lat})
	}

	scatter := charts.NewScatter()
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(o.init("Fox Heatmap")),
		charts.WithTitleOpts(opts.Title{Title: "Fox Heatmap", Subtitle: fmt.Sprintf("cells=%d precision=%d", heatmap.Count, heatmap.Precision)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(heatmap.MinValue),
			Max:        float32(heatmap.MaxValue),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	}
	if len(data) > 0 {
		global = append(global, mapAxes(bound)...)
	}
	scatter.SetGlobalOptions(global...)
	scatter.AddSeries("fixes", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	return nil
}

// Timelapse renders one chart per frame: the trail so far in gray and the
// fixes of the frame's month in red
func Timelapse(w io.Writer, subjectID string, frames []analysis.Frame, o Options) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Timelapse %s", subjectID)
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}

	var bound orb.Bound
	if len(frames) > 0 {
		bound = export.LineString(frames[len(frames)-1].Trail).Bound()
	}

	for _, f := range frames {
		scatter := charts.NewScatter()
		global := []charts.GlobalOpts{
			charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px", AssetsHost: o.AssetsHost}),
			charts.WithTitleOpts(opts.Title{Title: f.Month, Subtitle: fmt.Sprintf("%s fixes=%d total=%d", subjectID, len(f.Current), len(f.Trail))}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		}
		scatter.SetGlobalOptions(append(global, mapAxes(bound)...)...)

		scatter.AddSeries("trail", scatterData(f.Trail[:len(f.Trail)-len(f.Current)]),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "lightgray"}))
		scatter.AddSeries(f.Month, scatterData(f.Current),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 9}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}))
		page.AddCharts(scatter)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render timelapse: %w", err)
	}
	return nil
}

// Pair renders the monthly separation of two subjects and the monthly
// correlation of their coordinates as line charts on one page
func Pair(w io.Writer, a, b string, distances []models.MonthlyPairDistance, correlations []models.Correlation, o Options) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s and %s", a, b)
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}

	months := make([]string, 0, len(distances))
	distData := make([]opts.LineData, 0, len(distances))
	for _, d := range distances {
		months = append(months, d.Month)
		distData = append(distData, opts.LineData{Value: d.AverageDistance})
	}
	dist := charts.NewLine()
	dist.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: o.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Average separation", Subtitle: fmt.Sprintf("%s / %s, meters", a, b)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	dist.SetXAxis(months).AddSeries("distance", distData, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	corrMonths := make([]string, 0, len(correlations))
	lon := make([]opts.LineData, 0, len(correlations))
	lat := make([]opts.LineData, 0, len(correlations))
	for _, c := range correlations {
		corrMonths = append(corrMonths, c.Month)
		lon = append(lon, lineValue(c.PearsonLongitude))
		lat = append(lat, lineValue(c.PearsonLatitude))
	}
	corr := charts.NewLine()
	corr.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: o.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Coordinate correlation", Subtitle: "Pearson r per month"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Min: -1, Max: 1}),
	)
	corr.SetXAxis(corrMonths).
		AddSeries("longitude", lon).
		AddSeries("latitude", lat)

	page.AddCharts(dist, corr)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render pair chart: %w", err)
	}
	return nil
}

// lineValue maps an undefined coefficient to echarts' missing-value marker
func lineValue(r *float64) opts.LineData {
	if r == nil {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: *r}
}

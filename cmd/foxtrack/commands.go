package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/auth"
	"github.com/jengzang/fox-tracks-go/internal/chart"
	"github.com/jengzang/fox-tracks-go/internal/database"
	"github.com/jengzang/fox-tracks-go/internal/export"
	"github.com/jengzang/fox-tracks-go/internal/ingest"
	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/report"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/service"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

func handleDownsample(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("downsample", flag.ContinueOnError)
	fs.SetOutput(stdout)
	in := fs.String("in", "", "CSV export to read (required)")
	minInterval := fs.Duration("min-interval", trajectory.DefaultThresholds.MinInterval, "Minimum time since the last kept fix")
	minDistance := fs.Float64("min-distance", trajectory.DefaultThresholds.MinDistance, "Minimum distance in meters from the last kept fix")
	geojsonOut := fs.String("geojson", "", "Write the kept fixes as GeoJSON to this file")
	pngOut := fs.String("png", "", "Plot the kept fixes to this PNG file")
	htmlOut := fs.String("html", "", "Write an interactive map of the kept fixes to this HTML file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("downsample: -in is required")
	}

	observations, err := ingest.ReadCSVFile(*in)
	if err != nil {
		return err
	}
	if len(observations) == 0 {
		return fmt.Errorf("downsample: %s has no observations", *in)
	}

	th := trajectory.Thresholds{MinInterval: *minInterval, MinDistance: *minDistance}
	kept, err := trajectory.DownsampleBySubject(observations, th)
	if err != nil {
		return err
	}

	subjects := make([]string, 0, len(kept))
	for s := range kept {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	total := 0
	for _, s := range subjects {
		fmt.Fprintf(stdout, "\n%s: kept %d fixes\n", s, len(kept[s]))
		if err := report.WriteTable(stdout, kept[s]); err != nil {
			return err
		}
		total += len(kept[s])
	}
	fmt.Fprintf(stdout, "\nKept %d of %d fixes (min interval %s, min distance %gm)\n",
		total, len(observations), th.MinInterval, th.MinDistance)

	if *geojsonOut != "" {
		if err := export.WriteFile(*geojsonOut, kept); err != nil {
			return err
		}
	}
	if *pngOut != "" {
		if err := chart.SavePNG(*pngOut, kept); err != nil {
			return err
		}
	}
	if *htmlOut != "" {
		if err := writeHTML(*htmlOut, kept); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(path string, kept map[string]models.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := chart.Map(f, kept, chart.Options{}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func handleImport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stdout)
	in := fs.String("in", "", "CSV export to import (required)")
	dbPath := fs.String("db", "./data/tracks/foxes.db", "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("import: -in is required")
	}

	conn, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *in, err)
	}
	defer f.Close()

	imports := service.NewImportService(repository.NewObservationRepository(conn), repository.NewImportRepository(conn))
	imp, err := imports.ImportCSV(context.Background(), filepath.Base(*in), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Imported %d observations from %s as %s\n", imp.RowCount, imp.Source, imp.ID)
	return nil
}

func handleToken(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stdout)
	secret := fs.String("secret", os.Getenv("JWT_SECRET"), "Signing secret (defaults to $JWT_SECRET)")
	subject := fs.String("subject", "foxtrack", "Token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime, 0 for no expiry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := auth.IssueToken(*secret, *subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}

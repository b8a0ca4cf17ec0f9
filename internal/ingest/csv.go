// Package ingest reads Movebank-style telemetry exports into observations.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// ErrMissingColumn is returned when a required column cannot be found in the header
var ErrMissingColumn = errors.New("missing required column")

// Header names accepted for each field, in order of preference
var (
	longitudeHeaders = []string{"location-long", "longitude", "lon", "long"}
	latitudeHeaders  = []string{"location-lat", "latitude", "lat"}
	subjectHeaders   = []string{"tag-local-identifier", "individual-local-identifier", "name"}
	timestampHeaders = []string{"timestamp"}
	hdopHeaders      = []string{"gps:hdop"}
	satelliteHeaders = []string{"gps:satellite-count"}
)

// Timestamp layouts seen in Movebank exports
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

type columns struct {
	lon, lat, subject, timestamp int
	hdop, satellites             int // -1 when absent
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func resolveColumns(header []string) (columns, error) {
	c := columns{
		lon:        findColumn(header, longitudeHeaders),
		lat:        findColumn(header, latitudeHeaders),
		subject:    findColumn(header, subjectHeaders),
		timestamp:  findColumn(header, timestampHeaders),
		hdop:       findColumn(header, hdopHeaders),
		satellites: findColumn(header, satelliteHeaders),
	}

	var missing []string
	if c.lon < 0 {
		missing = append(missing, "longitude")
	}
	if c.lat < 0 {
		missing = append(missing, "latitude")
	}
	if c.subject < 0 {
		missing = append(missing, "subject")
	}
	if c.timestamp < 0 {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return c, nil
}

// ParseTimestamp parses a timestamp cell. Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// ReadCSV reads every row of a telemetry export. Any malformed row fails the
// whole read; the error names the 1-based line number.
func ReadCSV(r io.Reader) ([]models.Observation, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var observations []models.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		o, reason := parseRecord(record, cols)
		if reason == "" {
			reason = trajectory.ValidateObservation(o)
		}
		if reason != "" {
			return nil, fmt.Errorf("line %d: %w", line, &trajectory.MalformedObservationError{
				Index:     len(observations),
				SubjectID: o.SubjectID,
				Reason:    reason,
			})
		}
		observations = append(observations, o)
	}

	return observations, nil
}

func parseRecord(record []string, cols columns) (models.Observation, string) {
	o := models.Observation{SubjectID: strings.TrimSpace(record[cols.subject])}

	var err error
	if o.Timestamp, err = ParseTimestamp(record[cols.timestamp]); err != nil {
		return o, err.Error()
	}
	if o.Longitude, err = strconv.ParseFloat(strings.TrimSpace(record[cols.lon]), 64); err != nil {
		return o, fmt.Sprintf("unparsable longitude %q", record[cols.lon])
	}
	if o.Latitude, err = strconv.ParseFloat(strings.TrimSpace(record[cols.lat]), 64); err != nil {
		return o, fmt.Sprintf("unparsable latitude %q", record[cols.lat])
	}

	// Quality columns are often blank; blanks and junk are left unset
	if cols.hdop >= 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(record[cols.hdop]), 64); err == nil {
			o.HDOP = &v
		}
	}
	if cols.satellites >= 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(record[cols.satellites])); err == nil {
			o.SatelliteCount = &v
		}
	}

	return o, ""
}

// ReadCSVFile opens path and reads it with ReadCSV
func ReadCSVFile(path string) ([]models.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	observations, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return observations, nil
}

// GroupBySubject splits observations by subject, keeping input order within each group
func GroupBySubject(observations []models.Observation) map[string]models.Trajectory {
	groups := make(map[string]models.Trajectory)
	for _, o := range observations {
		groups[o.SubjectID] = append(groups[o.SubjectID], o)
	}
	return groups
}

// Subjects returns the distinct subject IDs in sorted order
func Subjects(observations []models.Observation) []string {
	seen := make(map[string]struct{})
	var subjects []string
	for _, o := range observations {
		if _, ok := seen[o.SubjectID]; ok {
			continue
		}
		seen[o.SubjectID] = struct{}{}
		subjects = append(subjects, o.SubjectID)
	}
	sort.Strings(subjects)
	return subjects
}

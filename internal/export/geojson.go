// Package export writes trajectories in interchange formats.
package export

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

// LineString converts a trajectory to an orb line in [lon, lat] order
func LineString(traj models.Trajectory) orb.LineString {
	line := make(orb.LineString, len(traj))
	for i, o := range traj {
		line[i] = orb.Point{o.Longitude, o.Latitude}
	}
	return line
}

// TrajectoryFeatures returns a LineString feature for the path followed by one
// Point feature per observation. The path carries the fix times in
// "coordTimes", parallel to its coordinates.
func TrajectoryFeatures(subjectID string, traj models.Trajectory) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(traj)+1)

	if len(traj) > 1 {
		path := geojson.NewFeature(LineString(traj))
		times := make([]string, len(traj))
		for i, o := range traj {
			times[i] = o.Timestamp.UTC().Format(time.RFC3339)
		}
		path.Properties["subject"] = subjectID
		path.Properties["kind"] = "path"
		path.Properties["coordTimes"] = times
		features = append(features, path)
	}

	for _, o := range traj {
		point := geojson.NewFeature(orb.Point{o.Longitude, o.Latitude})
		point.Properties["subject"] = subjectID
		point.Properties["kind"] = "fix"
		point.Properties["timestamp"] = o.Timestamp.UTC().Format(time.RFC3339)
		if o.HDOP != nil {
			point.Properties["hdop"] = *o.HDOP
		}
		if o.SatelliteCount != nil {
			point.Properties["satellites"] = *o.SatelliteCount
		}
		features = append(features, point)
	}

	return features
}

// FeatureCollection builds one collection for several subjects, in subject order
func FeatureCollection(trajectories map[string]models.Trajectory) *geojson.FeatureCollection {
	subjects := make([]string, 0, len(trajectories))
	for s := range trajectories {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	fc := geojson.NewFeatureCollection()
	for _, s := range subjects {
		for _, f := range TrajectoryFeatures(s, trajectories[s]) {
			fc.Append(f)
		}
	}
	return fc
}

// WriteFile writes trajectories to path as a GeoJSON FeatureCollection
func WriteFile(path string, trajectories map[string]models.Trajectory) error {
	data, err := FeatureCollection(trajectories).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

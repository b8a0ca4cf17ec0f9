package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

const movebankSample = `event-id,visible,timestamp,location-long,location-lat,gps:hdop,gps:satellite-count,sensor-type,individual-taxon-canonical-name,tag-local-identifier,study-name
1,true,2018-03-01 00:00:48.000,29.9701,69.7021,1.2,7,gps,Vulpes vulpes,FOX-3,Red fox Varanger
2,true,2018-03-01 05:00:12.000,29.9800,69.7100,,,gps,Vulpes vulpes,FOX-3,Red fox Varanger
3,true,2018-03-01 01:00:00.000,30.1000,69.6000,0.9,9,gps,Vulpes vulpes,FOX-7,Red fox Varanger
`

func TestReadCSVMovebank(t *testing.T) {
	t.Parallel()

	obs, err := ReadCSV(strings.NewReader(movebankSample))
	require.NoError(t, err)
	require.Len(t, obs, 3)

	first := obs[0]
	assert.Equal(t, "FOX-3", first.SubjectID)
	assert.Equal(t, time.Date(2018, 3, 1, 0, 0, 48, 0, time.UTC), first.Timestamp)
	assert.InDelta(t, 69.7021, first.Latitude, 1e-9)
	assert.InDelta(t, 29.9701, first.Longitude, 1e-9)
	require.NotNil(t, first.HDOP)
	assert.InDelta(t, 1.2, *first.HDOP, 1e-9)
	require.NotNil(t, first.SatelliteCount)
	assert.Equal(t, 7, *first.SatelliteCount)

	assert.Nil(t, obs[1].HDOP, "blank quality cells stay unset")
	assert.Nil(t, obs[1].SatelliteCount)

	assert.Equal(t, []string{"FOX-3", "FOX-7"}, Subjects(obs))
	groups := GroupBySubject(obs)
	assert.Len(t, groups["FOX-3"], 2)
	assert.Len(t, groups["FOX-7"], 1)
}

func TestReadCSVAlternateHeaders(t *testing.T) {
	t.Parallel()

	in := "name,timestamp,latitude,longitude\narctic-1,2020-01-02T03:04:05Z,78.2,15.6\n"
	obs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "arctic-1", obs[0].SubjectID)
	assert.Equal(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), obs[0].Timestamp)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		target error
		line   string
	}{
		{
			name:   "empty input",
			in:     "",
			target: ErrMissingColumn,
		},
		{
			name:   "no subject column",
			in:     "timestamp,location-long,location-lat\n",
			target: ErrMissingColumn,
		},
		{
			name:   "latitude out of range",
			in:     "timestamp,location-long,location-lat,tag-local-identifier\n2018-03-01 00:00:00,10,200,F\n",
			target: trajectory.ErrMalformedObservation,
			line:   "line 2",
		},
		{
			name:   "bad timestamp",
			in:     "timestamp,location-long,location-lat,tag-local-identifier\n2018-03-01 00:00:00,10,60,F\nyesterday,10,60,F\n",
			target: trajectory.ErrMalformedObservation,
			line:   "line 3",
		},
		{
			name:   "bad longitude",
			in:     "timestamp,location-long,location-lat,tag-local-identifier\n2018-03-01 00:00:00,east,60,F\n",
			target: trajectory.ErrMalformedObservation,
			line:   "line 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := ReadCSV(strings.NewReader(tt.in))
			assert.Nil(t, obs)
			require.True(t, errors.Is(err, tt.target), "got %v", err)
			if tt.line != "" {
				assert.Contains(t, err.Error(), tt.line)
			}
		})
	}
}

func TestReadCSVFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "red_fox.csv")
	require.NoError(t, os.WriteFile(path, []byte(movebankSample), 0o644))

	obs, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, obs, 3)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

func TestMonthlyFrames(t *testing.T) {
	t.Parallel()

	traj := models.Trajectory{
		fix("F", at(4, 2, 0, 0), 3, 3),
		fix("F", at(3, 1, 0, 0), 1, 1),
		fix("F", at(3, 20, 0, 0), 2, 2),
		fix("F", at(6, 1, 0, 0), 4, 4),
	}

	frames := MonthlyFrames(traj)
	require.Len(t, frames, 3)

	assert.Equal(t, "2018-03", frames[0].Month)
	assert.Len(t, frames[0].Trail, 2)
	assert.Len(t, frames[0].Current, 2)

	assert.Equal(t, "2018-04", frames[1].Month)
	assert.Len(t, frames[1].Trail, 3)
	require.Len(t, frames[1].Current, 1)
	assert.Equal(t, 3.0, frames[1].Current[0].Latitude)

	assert.Equal(t, "2018-06", frames[2].Month, "months without fixes are skipped")
	assert.Len(t, frames[2].Trail, 4)

	assert.Empty(t, MonthlyFrames(nil))
}

package emg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

func TestLayout(t *testing.T) {
	channels := []models.ChannelSeries{{Index: 0}, {Index: 1}, {Index: 2}}

	baselines, err := emg.Layout(channels, 2000)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2000, 4000}, baselines)
}

// Baselines are assigned by channel index, not input position.
func TestLayoutOrderIndependent(t *testing.T) {
	shuffled := []models.ChannelSeries{{Index: 2}, {Index: 0}, {Index: 1}}

	baselines, err := emg.Layout(shuffled, 500)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 500, 1000}, baselines)
}

func TestLayoutNonContiguous(t *testing.T) {
	for name, channels := range map[string][]models.ChannelSeries{
		"gap":       {{Index: 0}, {Index: 2}},
		"duplicate": {{Index: 0}, {Index: 0}},
		"negative":  {{Index: -1}, {Index: 0}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := emg.Layout(channels, 2000)
			require.ErrorIs(t, err, emg.ErrNonContiguousChannels)
		})
	}
}

package emg

import (
	"fmt"

	"github.com/neubond/emgdash/internal/models"
)

// Layout assigns each channel a vertical baseline of index * offsetUnit,
// returned indexed by channel index. Offsetting by index rather than by
// signal amplitude keeps a given channel at the same relative height
// across sessions, so a clinician can compare like with like.
func Layout(channels []models.ChannelSeries, offsetUnit float64) ([]float64, error) {
	seen := make([]bool, len(channels))
	for _, ch := range channels {
		if ch.Index < 0 || ch.Index >= len(channels) || seen[ch.Index] {
			return nil, fmt.Errorf("%w: got index %d among %d channels",
				ErrNonContiguousChannels, ch.Index, len(channels))
		}
		seen[ch.Index] = true
	}

	baselines := make([]float64, len(channels))
	for i := range baselines {
		baselines[i] = float64(i) * offsetUnit
	}
	return baselines, nil
}

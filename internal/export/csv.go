package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

var csvHeader = []string{"session_id", "channel_index", "sample_index", "timestamp", "amplitude", "phase_label"}

// WriteCSV flattens the bundle into one row per (session, channel,
// sample), grouped by session in selection order, then channel, then
// sample. Output is deterministic for a deterministic bundle.
func WriteCSV(w io.Writer, bundle models.ExportBundle) error {
	if len(bundle.Sessions) == 0 {
		return ErrEmptyBundle
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, session := range bundle.Sessions {
		if err := validateSession(session); err != nil {
			return err
		}

		markers := emg.ExpandIntervals(session.Phases, session.SampleCount())

		channels := append([]models.ChannelSeries(nil), session.Channels...)
		sort.Slice(channels, func(i, j int) bool { return channels[i].Index < channels[j].Index })

		for _, ch := range channels {
			for i, amp := range ch.Samples {
				label, _ := models.PhaseFromMarker(markers[i])
				row := []string{
					session.ID,
					strconv.Itoa(ch.Index),
					strconv.Itoa(i),
					session.Timestamps[i].Format(time.RFC3339Nano),
					strconv.FormatFloat(amp, 'g', -1, 64),
					label.String(),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// validateSession re-checks the load-time shape invariants. The bundle
// may outlive the load that produced it, so exports do not trust it.
func validateSession(s models.Session) error {
	n := s.SampleCount()
	for _, ch := range s.Channels {
		if len(ch.Samples) != n {
			return fmt.Errorf("%w: session %s channel %d has %d samples, expected %d",
				ErrSerialization, s.ID, ch.Index, len(ch.Samples), n)
		}
	}
	if len(s.Timestamps) != n {
		return fmt.Errorf("%w: session %s has %d timestamps for %d samples",
			ErrSerialization, s.ID, len(s.Timestamps), n)
	}
	return nil
}

package emg

import (
	"fmt"
	"sort"

	"github.com/neubond/emgdash/internal/models"
)

// Plot colors, red family for attempt, blue family for rest.
const (
	colorAttempt = "#ff6b6b"
	colorRest    = "#6ba4ff"
)

// PlanOptions tunes the drawing plan. Zero values fall back to the
// defaults the dashboard has always used.
type PlanOptions struct {
	OffsetUnit float64 // vertical distance between channel baselines
	GapFactor  float64 // break traces at gaps larger than GapFactor * median dt
}

const (
	defaultOffsetUnit = 2000
	defaultGapFactor  = 5.0
)

// Trace is one drawable polyline: a contiguous run of one channel's
// samples, already shifted to the channel's baseline. Recording gaps
// split a channel into multiple traces.
type Trace struct {
	Channel  int
	Baseline float64
	X        []float64 // seconds from session start
	Y        []float64 // amplitude + baseline
}

// Shade is a background rectangle spec for one phase interval.
type Shade struct {
	Label models.Phase
	Start float64 // seconds from session start
	End   float64
	Color string
}

// Plan is a fully specified drawing plan for one session. The core never
// draws pixels; a charting collaborator consumes this.
type Plan struct {
	SessionID string
	Channels  int
	Traces    []Trace
	Shades    []Shade
}

// PhaseColor maps a phase to its shading color. Unknown labels are an
// error so mis-segmented data shows up instead of rendering unshaded.
func PhaseColor(p models.Phase) (string, error) {
	switch p {
	case models.PhaseAttempt:
		return colorAttempt, nil
	case models.PhaseRest:
		return colorRest, nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnknownPhaseLabel, p)
}

// BuildPlan turns a session into a drawing plan: baseline-stacked channel
// traces over a shared seconds axis plus one shade per phase interval.
func BuildPlan(session models.Session, opts PlanOptions) (Plan, error) {
	if opts.OffsetUnit == 0 {
		opts.OffsetUnit = defaultOffsetUnit
	}
	if opts.GapFactor == 0 {
		opts.GapFactor = defaultGapFactor
	}

	baselines, err := Layout(session.Channels, opts.OffsetUnit)
	if err != nil {
		return Plan{}, err
	}

	xs := make([]float64, len(session.Timestamps))
	for i, t := range session.Timestamps {
		xs[i] = t.Sub(session.StartTime).Seconds()
	}
	breaks := gapBreaks(xs, opts.GapFactor)

	plan := Plan{SessionID: session.ID, Channels: len(session.Channels)}

	for _, ch := range session.Channels {
		baseline := baselines[ch.Index]
		for _, seg := range splitAt(len(ch.Samples), breaks) {
			trace := Trace{
				Channel:  ch.Index,
				Baseline: baseline,
				X:        xs[seg.start:seg.end],
				Y:        make([]float64, seg.end-seg.start),
			}
			for i, v := range ch.Samples[seg.start:seg.end] {
				trace.Y[i] = v + baseline
			}
			plan.Traces = append(plan.Traces, trace)
		}
	}

	for _, iv := range session.Phases {
		color, err := PhaseColor(iv.Label)
		if err != nil {
			return Plan{}, fmt.Errorf("session %s: %w", session.ID, err)
		}
		shade := Shade{Label: iv.Label, Color: color, Start: xs[iv.Start]}
		if iv.End >= len(xs) {
			shade.End = xs[len(xs)-1]
		} else {
			shade.End = xs[iv.End]
		}
		plan.Shades = append(plan.Shades, shade)
	}

	return plan, nil
}

// gapBreaks returns the indices of samples that follow a recording gap,
// i.e. a time step larger than factor times the median step.
func gapBreaks(xs []float64, factor float64) []int {
	if len(xs) < 2 {
		return nil
	}

	dts := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		dts[i-1] = xs[i] - xs[i-1]
	}

	sorted := append([]float64(nil), dts...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if median <= 0 {
		return nil
	}

	var breaks []int
	for i, dt := range dts {
		if dt > median*factor {
			breaks = append(breaks, i+1)
		}
	}
	return breaks
}

type span struct{ start, end int }

// splitAt cuts [0, n) at the given break indices.
func splitAt(n int, breaks []int) []span {
	if n == 0 {
		return nil
	}
	spans := make([]span, 0, len(breaks)+1)
	start := 0
	for _, b := range breaks {
		if b <= start || b >= n {
			continue
		}
		spans = append(spans, span{start, b})
		start = b
	}
	return append(spans, span{start, n})
}

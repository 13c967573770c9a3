// Package plot is the charting collaborator: it turns a drawing plan
// into an image file. Nothing here decides what to draw; the plan does.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/neubond/emgdash/internal/config"
	"github.com/neubond/emgdash/internal/emg"
)

const shadeAlpha = 64 // roughly the 25% alpha the dashboard always used

// Render draws the plan to an image file. The format follows the output
// path extension (.png, .svg, .pdf), as gonum/plot does.
func Render(plan emg.Plan, cfg config.PlotConfig, title, outPath string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "EMG channels (offset)"
	p.Add(plotter.NewGrid())

	yMin, yMax := planRange(plan)

	// Background shading first so traces draw on top of it.
	seenPhase := map[string]bool{}
	for _, shade := range plan.Shades {
		fill, err := parseHexColor(shade.Color, shadeAlpha)
		if err != nil {
			return err
		}

		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: shade.Start, Y: yMin},
			{X: shade.End, Y: yMin},
			{X: shade.End, Y: yMax},
			{X: shade.Start, Y: yMax},
		})
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle.Width = 0
		p.Add(poly)

		if !seenPhase[shade.Label.String()] {
			seenPhase[shade.Label.String()] = true
			p.Legend.Add(shade.Label.String(), poly)
		}
	}

	seenChannel := map[int]bool{}
	for _, trace := range plan.Traces {
		xys := make(plotter.XYs, len(trace.X))
		for i := range trace.X {
			xys[i] = plotter.XY{X: trace.X[i], Y: trace.Y[i]}
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(cfg.LineWidth)
		line.Color = plotutil.Color(trace.Channel)
		p.Add(line)

		// One legend entry per channel, not per gap-split trace.
		if !seenChannel[trace.Channel] {
			seenChannel[trace.Channel] = true
			p.Legend.Add(fmt.Sprintf("Ch %d", trace.Channel+1), line)
		}
	}

	p.Legend.Top = true

	return p.Save(vg.Length(cfg.WidthIn)*vg.Inch, vg.Length(cfg.HeightIn)*vg.Inch, outPath)
}

func planRange(plan emg.Plan) (float64, float64) {
	yMin, yMax := 0.0, 1.0
	first := true
	for _, trace := range plan.Traces {
		for _, y := range trace.Y {
			if first {
				yMin, yMax = y, y
				first = false
				continue
			}
			if y < yMin {
				yMin = y
			}
			if y > yMax {
				yMax = y
			}
		}
	}

	// Small headroom so traces do not touch the frame.
	margin := (yMax - yMin) * 0.05
	if margin == 0 {
		margin = 1
	}
	return yMin - margin, yMax + margin
}

func parseHexColor(s string, alpha uint8) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

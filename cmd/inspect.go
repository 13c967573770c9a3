package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/export"
	"github.com/neubond/emgdash/internal/plot"
	"github.com/neubond/emgdash/internal/utils"
)

var inspectPlot string

var inspectCmd = &cobra.Command{
	Use:   "inspect [bundle-file]",
	Short: "Describe a previously exported bundle file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := export.ReadBundleFile(args[0])
		if err != nil {
			if errors.Is(err, export.ErrUnknownFileType) {
				return fmt.Errorf("%s is not an emgdash bundle: %w", args[0], err)
			}
			return err
		}

		sessions, err := loadSelection(records, false)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %s (%d sessions)\n\n", green("Bundle:"), args[0], len(sessions))

		rows := make([][]string, 0, len(sessions))
		for _, s := range sessions {
			rows = append(rows, []string{
				s.ID,
				s.PatientID,
				utils.FormatTimestamp(s.StartTime),
				utils.FormatDurationSeconds(s.Duration().Seconds()),
				fmt.Sprintf("%d", len(s.Channels)),
				fmt.Sprintf("%d", s.SampleCount()),
				fmt.Sprintf("%d", len(s.Phases)),
			})
		}

		headers := []string{"ID", "Patient", "Start", "Duration", "Channels", "Samples", "Phases"}
		fmt.Println(renderTable(headers, rows, 5, 6, 7))

		if inspectPlot == "" {
			return nil
		}

		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		for _, session := range sessions {
			plan, err := emg.BuildPlan(session, emg.PlanOptions{
				OffsetUnit: cfg.Plot.OffsetUnit,
				GapFactor:  cfg.Plot.GapFactor,
			})
			if err != nil {
				return err
			}

			out := plotOutputPath(inspectPlot, session.ID, len(sessions) > 1)
			title := fmt.Sprintf("EMG Data - Session %s", session.ID)
			if err := plot.Render(plan, cfg.Plot, title, out); err != nil {
				return fmt.Errorf("failed to render plot: %w", err)
			}
			fmt.Printf("✅ Plot written to %s\n", out)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectPlot, "plot", "", "Also render each session to an image file (.png, .svg, .pdf)")
}

// plotOutputPath derives the per-session image path. A bundle with more
// than one session gets the session ID suffixed so the files do not
// overwrite each other.
func plotOutputPath(base, sessionID string, multi bool) string {
	if !multi {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + utils.SafeFilename(sessionID) + ext
}

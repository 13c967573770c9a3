package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/plot"
)

var (
	plotOutput        string
	plotFromFile      string
	plotCoerceUnknown bool
)

var plotCmd = &cobra.Command{
	Use:   "plot [session-id]",
	Short: "Plot a session's EMG channels with phase shading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		records, err := fetchRecords(cfg, plotFromFile, args)
		if err != nil {
			return err
		}

		sessions, err := loadSelection(records, plotCoerceUnknown)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("session %s not found", args[0])
		}
		session := sessions[0]

		plan, err := emg.BuildPlan(session, emg.PlanOptions{
			OffsetUnit: cfg.Plot.OffsetUnit,
			GapFactor:  cfg.Plot.GapFactor,
		})
		if err != nil {
			return err
		}

		title := fmt.Sprintf("EMG Data - Session %s", session.ID)
		if err := plot.Render(plan, cfg.Plot, title, plotOutput); err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}

		fmt.Printf("✅ Plot written to %s\n", plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "emg.png", "Output image file (.png, .svg, .pdf)")
	plotCmd.Flags().StringVarP(&plotFromFile, "from-file", "f", "", "Read the session from a bundle file instead of the database")
	plotCmd.Flags().BoolVar(&plotCoerceUnknown, "coerce-unknown-phase", false, "Treat unrecognized phase markers as rest instead of aborting")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/plot"
	"github.com/neubond/emgdash/internal/report"
)

var (
	reportOutput        string
	reportFromFile      string
	reportPatient       string
	reportPeriod        string
	reportNoCharts      bool
	reportCoerceUnknown bool
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id...]",
	Short: "Generate a PDF rehabilitation report for the selected sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		if len(args) == 0 && reportFromFile == "" {
			return emg.ErrEmptySelection
		}

		records, err := fetchRecords(cfg, reportFromFile, args)
		if err != nil {
			return err
		}

		sessions, err := loadSelection(records, reportCoerceUnknown)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return emg.ErrEmptySelection
		}

		patient := reportPatient
		if patient == "" {
			patient = sessions[0].PatientID
		}

		charts := map[string]string{}
		if !reportNoCharts {
			dir, err := os.MkdirTemp("", "emgdash-report-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)

			for _, session := range sessions {
				plan, err := emg.BuildPlan(session, emg.PlanOptions{
					OffsetUnit: cfg.Plot.OffsetUnit,
					GapFactor:  cfg.Plot.GapFactor,
				})
				if err != nil {
					return err
				}

				path := filepath.Join(dir, session.ID+".png")
				title := fmt.Sprintf("EMG Data - Session %s", session.ID)
				if err := plot.Render(plan, cfg.Plot, title, path); err != nil {
					return fmt.Errorf("failed to render chart for %s: %w", session.ID, err)
				}
				charts[session.ID] = path
			}
		}

		out := reportOutput
		if out == "" {
			out = report.DefaultFilename(patient, time.Now())
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}

		if err := report.Write(f, sessions, charts, report.Options{
			PatientName: patient,
			Period:      reportPeriod,
		}); err != nil {
			f.Close()
			os.Remove(out) // No partial file on failure.
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("✅ Report written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output PDF file (default: <patient>_report_<timestamp>.pdf)")
	reportCmd.Flags().StringVarP(&reportFromFile, "from-file", "f", "", "Read the sessions from a bundle file instead of the database")
	reportCmd.Flags().StringVar(&reportPatient, "patient", "", "Patient display name for the report header")
	reportCmd.Flags().StringVar(&reportPeriod, "period", "", "Report period shown in the header")
	reportCmd.Flags().BoolVar(&reportNoCharts, "no-charts", false, "Skip the embedded EMG charts")
	reportCmd.Flags().BoolVar(&reportCoerceUnknown, "coerce-unknown-phase", false, "Treat unrecognized phase markers as rest instead of aborting")
}

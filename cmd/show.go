package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/models"
)

var showFromFile string

var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show one session's EMG data: channels, samples, phase breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		records, err := fetchRecords(cfg, showFromFile, args)
		if err != nil {
			return err
		}

		sessions, err := loadSelection(records, false)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("session %s not found", args[0])
		}
		session := sessions[0]

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s %s\n", green("Session:"), session.ID)
		fmt.Printf("%s %s\n", cyan("Patient:"), session.PatientID)
		fmt.Printf("%s %s\n", cyan("Start:"), session.StartTime.Format(time.RFC1123))
		fmt.Printf("%s %s\n", cyan("Duration:"), session.Duration().Round(time.Second))
		fmt.Printf("%s %d\n", cyan("Channels:"), len(session.Channels))
		fmt.Printf("%s %d\n\n", cyan("Samples:"), session.SampleCount())

		rows := make([][]string, 0, len(session.Phases))
		for _, iv := range session.Phases {
			start := session.Timestamps[iv.Start].Sub(session.StartTime).Seconds()
			var end float64
			if iv.End >= len(session.Timestamps) {
				end = session.Timestamps[len(session.Timestamps)-1].Sub(session.StartTime).Seconds()
			} else {
				end = session.Timestamps[iv.End].Sub(session.StartTime).Seconds()
			}
			rows = append(rows, []string{
				iv.Label.String(),
				fmt.Sprintf("%d-%d", iv.Start, iv.End),
				fmt.Sprintf("%.2fs", start),
				fmt.Sprintf("%.2fs", end),
			})
		}
		fmt.Println(renderTable([]string{"Phase", "Samples", "From", "To"}, rows, 3, 4))

		totals := phaseTotals(session)
		fmt.Printf("%s %d samples attempt, %d samples rest\n",
			cyan("Totals:"), totals[models.PhaseAttempt], totals[models.PhaseRest])

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFromFile, "from-file", "f", "", "Read the session from a bundle file instead of the database")
}

// phaseTotals sums the labeled time per phase.
func phaseTotals(session models.Session) map[models.Phase]int {
	totals := make(map[models.Phase]int)
	for _, iv := range session.Phases {
		totals[iv.Label] += iv.End - iv.Start
	}
	return totals
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/emg"
)

var summaryFromFile string

var summaryCmd = &cobra.Command{
	Use:   "summary [session-id...]",
	Short: "Aggregate statistics over the selected sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		if len(args) == 0 && summaryFromFile == "" {
			// Aggregates over nothing are an error, not an empty chart.
			return emg.ErrEmptySelection
		}

		records, err := fetchRecords(cfg, summaryFromFile, args)
		if err != nil {
			return err
		}

		sessions, err := loadSelection(records, false)
		if err != nil {
			return err
		}

		summary, err := emg.Summarize(sessions)
		if err != nil {
			if errors.Is(err, emg.ErrEmptySelection) {
				return fmt.Errorf("%w: nothing matched the given session IDs", err)
			}
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("%s %d\n", green("Sessions:"), summary.Sessions)
		fmt.Printf("%s %s\n", cyan("Total duration:"), summary.TotalDuration.Round(time.Second))
		fmt.Printf("%s %s\n\n", cyan("Mean duration:"), summary.MeanDuration.Round(time.Second))

		rows := make([][]string, 0, len(summary.PerDay))
		for _, day := range summary.PerDay {
			rows = append(rows, []string{
				day.Day,
				fmt.Sprintf("%d", day.Sessions),
				day.TotalDuration.Round(time.Second).String(),
			})
		}
		fmt.Println(renderTable([]string{"Day", "Sessions", "Total"}, rows, 2, 3))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryFromFile, "from-file", "f", "", "Summarize sessions from a bundle file instead of the database")
}

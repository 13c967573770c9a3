package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/storage"
	"github.com/neubond/emgdash/internal/utils"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [patient-id]",
	Short: "List a patient's exercise sessions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		st := storage.NewStorage(cfg)
		defer st.Close()

		sessions, err := st.ListSessions(args[0])
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found for this patient")
			return nil
		}

		rows := make([][]string, 0, len(sessions))
		for _, m := range sessions {
			rows = append(rows, []string{
				m.ID,
				utils.FormatTimestamp(m.StartTime),
				m.ExerciseType,
				m.ExerciseGesture,
				m.StimulationMode,
				strconv.Itoa(m.RepsCompleted),
				utils.FormatDurationSeconds(m.DurationSeconds),
			})
		}

		headers := []string{"ID", "Start", "Exercise", "Gesture", "Stimulation", "Reps", "Duration"}
		fmt.Println(renderTable(headers, rows, 6, 7))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

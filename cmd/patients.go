package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/storage"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "List patient profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCfg()
		if err != nil {
			return err
		}

		st := storage.NewStorage(cfg)
		defer st.Close()

		patients, err := st.ListPatients()
		if err != nil {
			return fmt.Errorf("failed to retrieve patients: %w", err)
		}

		if len(patients) == 0 {
			fmt.Println("No patients found")
			return nil
		}

		rows := make([][]string, 0, len(patients))
		for _, p := range patients {
			rows = append(rows, []string{p.ID, p.Name})
		}
		fmt.Println(renderTable([]string{"ID", "Name"}, rows))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(patientsCmd)
}

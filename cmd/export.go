package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neubond/emgdash/internal/export"
	"github.com/neubond/emgdash/internal/models"
)

var (
	exportOutput        string
	exportFromFile      string
	exportCoerceUnknown bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export selected sessions to a file",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [session-id...]",
	Short: "Export per-sample rows as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := buildBundle(args)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = "sessions.csv"
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteCSV(f, bundle); err != nil {
			os.Remove(out) // No partial file on failure.
			return fmt.Errorf("CSV export failed: %w", err)
		}

		fmt.Printf("✅ Exported %d sessions to %s\n", len(bundle.Sessions), out)
		return nil
	},
}

var exportBundleCmd = &cobra.Command{
	Use:   "bundle [session-id...]",
	Short: "Export sessions and EMG arrays as a lossless array bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := buildBundle(args)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = "sessions.zip"
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteBundle(f, bundle); err != nil {
			os.Remove(out)
			return fmt.Errorf("bundle export failed: %w", err)
		}

		fmt.Printf("✅ Exported %d sessions to %s\n", len(bundle.Sessions), out)
		return nil
	},
}

var exportEDFCmd = &cobra.Command{
	Use:   "edf [session-id]",
	Short: "Export one session's EMG channels as EDF+",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := buildBundle(args)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = "session.edf"
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteEDF(f, bundle.Sessions[0]); err != nil {
			os.Remove(out)
			return fmt.Errorf("EDF export failed: %w", err)
		}

		fmt.Printf("✅ Exported session %s to %s\n", bundle.Sessions[0].ID, out)
		return nil
	},
}

// buildBundle snapshots the selected sessions for serialization.
func buildBundle(sessionIDs []string) (models.ExportBundle, error) {
	if len(sessionIDs) == 0 && exportFromFile == "" {
		return models.ExportBundle{}, export.ErrEmptyBundle
	}

	cfg, err := loadCfg()
	if err != nil {
		return models.ExportBundle{}, err
	}

	records, err := fetchRecords(cfg, exportFromFile, sessionIDs)
	if err != nil {
		return models.ExportBundle{}, err
	}

	sessions, err := loadSelection(records, exportCoerceUnknown)
	if err != nil {
		return models.ExportBundle{}, err
	}
	if len(sessions) == 0 {
		return models.ExportBundle{}, export.ErrEmptyBundle
	}

	return models.ExportBundle{Sessions: sessions}, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportBundleCmd)
	exportCmd.AddCommand(exportEDFCmd)

	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.PersistentFlags().StringVarP(&exportFromFile, "from-file", "f", "", "Re-export from a bundle file instead of the database")
	exportCmd.PersistentFlags().BoolVar(&exportCoerceUnknown, "coerce-unknown-phase", false, "Treat unrecognized phase markers as rest instead of aborting")
}

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "emgdash",
	Short: "Clinician CLI for patient exercise sessions and EMG data",
}

func Execute() error {
	return rootCmd.Execute()
}

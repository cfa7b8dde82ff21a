// Package main is the operator CLI for the job board's record store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard-admin",
	Short: "Maintenance commands for the TalentBridge record store",
	Long:  "jobboard-admin migrates, seeds and reports on the record store configured by RECORD_BACKEND.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

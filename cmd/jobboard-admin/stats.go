package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/talentbridge/jobboard/internal/backend"
	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/logger"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/pkg/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print application statistics",
	RunE:  runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}

func printStats(w io.Writer, stats model.ApplicationStats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Fprintf(w, "total applications: %d\n", stats.Total)
	fmt.Fprintf(w, "response rate:      %d%%\n", stats.ResponseRate)
	for _, s := range model.ApplicationStatuses {
		fmt.Fprintf(w, "  %-13s %d\n", s, stats.ByStatus[s])
	}
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	client, closeStore, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	stats := repository.NewRepository(client, log).Application.GetStatistics(ctx)
	return printStats(cmd.OutOrStdout(), stats, statsJSON)
}

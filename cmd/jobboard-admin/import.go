package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/talentbridge/jobboard/internal/backend"
	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/fetcher"
	"github.com/talentbridge/jobboard/internal/logger"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/pkg/model"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import URL...",
	Short: "Import job postings from careers pages",
	Long:  "Fetch each URL, read its schema.org JobPosting data (or its heading and article text) and publish it as a job.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

var (
	importTimeout   time.Duration
	importUserAgent string
	importDryRun    bool
)

func init() {
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 15*time.Second, "Per-page fetch timeout")
	importCmd.Flags().StringVar(&importUserAgent, "user-agent", fetcher.DefaultUserAgent, "User-Agent sent to careers sites")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print what would be imported without writing")

	rootCmd.AddCommand(importCmd)
}

// fetchPostings fetches every url, skipping pages that fail.
func fetchPostings(ctx context.Context, f *fetcher.Fetcher, urls []string, log *zap.SugaredLogger) []model.CreateJobReq {
	var jobs []model.CreateJobReq
	for _, u := range urls {
		job, err := f.Fetch(ctx, u)
		if err != nil {
			log.Warnw("skipping page", "url", u, "err", err)
			continue
		}
		if job.Company == "" {
			log.Warnw("skipping posting without company", "url", u, "title", job.Title)
			continue
		}
		job.Status = model.JobStatusActive
		jobs = append(jobs, *job)
	}
	return jobs
}

func runImport(cmd *cobra.Command, args []string) error {
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
	jobs := fetchPostings(ctx, fetcher.NewFetcher(importTimeout, importUserAgent), args, log.Sugar())
	if len(jobs) == 0 {
		return fmt.Errorf("no postings found in %d pages", len(args))
	}
	if importDryRun {
		for _, j := range jobs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s (%s)\n", j.Title, j.Company, j.Location)
		}
		return nil
	}

	client, closeStore, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := seedJobs(ctx, repository.NewRepository(client, log), jobs, seedConcurrency)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d pages: %v\n", len(ids), len(args), ids)
	return nil
}

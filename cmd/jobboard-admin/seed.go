package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/talentbridge/jobboard/internal/backend"
	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/logger"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/pkg/model"
	"golang.org/x/sync/errgroup"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create sample job postings",
	Long:  "Create job postings from a JSON file (an array of jobs), or a built-in sample set when --in is not given.",
	RunE:  runSeed,
}

var (
	seedInputFile   string
	seedConcurrency int
)

func init() {
	seedCmd.Flags().StringVarP(&seedInputFile, "in", "i", "", "Path to a JSON array of jobs")
	seedCmd.Flags().IntVar(&seedConcurrency, "concurrency", 4, "Number of jobs created in parallel")

	rootCmd.AddCommand(seedCmd)
}

var sampleJobs = []model.CreateJobReq{
	{
		Title: "Senior Backend Engineer", Company: "Northwind", Location: "Remote",
		JobType: "full-time", ExperienceLevel: "senior-level", Industry: "Technology",
		SalaryRange: "$150k - $180k",
		Description: "Own the services behind our marketplace.\n\nYou will design APIs, tune Postgres and mentor engineers.",
	},
	{
		Title: "Product Designer", Company: "Lumen Health", Location: "New York, NY",
		JobType: "full-time", ExperienceLevel: "mid-level", Industry: "Healthcare",
		SalaryRange: "$110k - $130k",
		Description: "Shape the patient experience across web and mobile.",
	},
	{
		Title: "Data Analyst", Company: "Harbor Logistics", Location: "Rotterdam",
		JobType: "contract", ExperienceLevel: "entry-level", Industry: "Logistics",
		Description: "Turn shipment data into weekly operational reports.",
	},
	{
		Title: "Support Specialist", Company: "Brightdesk", Location: "Austin, TX",
		JobType: "part-time", ExperienceLevel: "entry-level", Industry: "Customer Service",
		Description: "Help customers get the most out of Brightdesk.",
	},
}

func loadSeedJobs(path string) ([]model.CreateJobReq, error) {
	if path == "" {
		return sampleJobs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	var jobs []model.CreateJobReq
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}
	return jobs, nil
}

// seedJobs creates jobs with at most limit requests in flight and stops at
// the first failure.
func seedJobs(ctx context.Context, repo *repository.Repository, jobs []model.CreateJobReq, limit int) ([]int64, error) {
	ids := make([]int64, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, req := range jobs {
		g.Go(func() error {
			job, err := repo.Job.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("create %q: %w", req.Title, err)
			}
			ids[i] = job.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	jobs, err := loadSeedJobs(seedInputFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	if cfg.Record.Backend == config.BackendMemory {
		return fmt.Errorf("seeding the in-memory store has no lasting effect, set RECORD_BACKEND")
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

	ids, err := seedJobs(ctx, repository.NewRepository(client, log), jobs, seedConcurrency)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %d jobs: %v\n", len(ids), ids)
	return nil
}

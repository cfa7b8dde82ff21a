package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talentbridge/jobboard/internal/backend"
	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/logger"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the records relation and its unique indexes",
	Long:  "Create the postgres records relation and the unique indexes the job board relies on. With --dry-run the DDL is printed instead.",
	RunE:  runMigrate,
}

var migrateDryRun bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Print the statements without connecting")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrateDryRun {
		stmts, err := record.NewPGStore(nil, repository.Schema()).MigrationStatements()
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", stmt)
		}
		return nil
	}

	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	if cfg.Record.Backend != config.BackendPostgres {
		return fmt.Errorf("migrate needs RECORD_BACKEND=postgres, got %q", cfg.Record.Backend)
	}
	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Open migrates the postgres store before returning it.
	_, closeStore, err := backend.Open(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	closeStore()
	fmt.Fprintln(cmd.OutOrStdout(), "records relation is up to date")
	return nil
}

// Package backend opens the record store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/database"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/internal/repository"
	"go.uber.org/zap"
)

// Open returns the record client for cfg.Record.Backend and a func that
// releases it. The postgres backend is migrated before it is returned.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (record.Client, func(), error) {
	sugar := log.Sugar()
	switch cfg.Record.Backend {
	case config.BackendHTTP:
		sugar.Infow("using hosted record store", "url", cfg.Record.APIURL)
		return record.NewHTTPClient(cfg.Record.APIURL, cfg.Record.APIKey, cfg.Record.Timeout), func() {}, nil
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		store := record.NewPGStore(pool, repository.Schema())
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		sugar.Infow("using postgres record store", "max_conns", cfg.DB.MaxConns)
		return store, pool.Close, nil
	case config.BackendMemory, "":
		sugar.Warn("using in-memory record store, data is lost on restart")
		return record.NewMemStore(repository.Schema()), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown record backend %q", cfg.Record.Backend)
}

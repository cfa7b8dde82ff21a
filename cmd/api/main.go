package main

import (
	"context"
	"fmt"

	_ "github.com/joho/godotenv/autoload"
	"github.com/talentbridge/jobboard/internal/auth"
	"github.com/talentbridge/jobboard/internal/backend"
	"github.com/talentbridge/jobboard/internal/cache"
	"github.com/talentbridge/jobboard/internal/config"
	"github.com/talentbridge/jobboard/internal/handler"
	"github.com/talentbridge/jobboard/internal/logger"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/session"
	"go.uber.org/zap"
)

type application struct {
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Sessions   session.Store
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		panic(fmt.Errorf("build logger: %w", err))
	}
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded: %s", cfg)

	client, closeStore, err := backend.Open(ctx, cfg, log)
	if err != nil {
		sugar.Fatal(err)
	}
	defer closeStore()

	var sessions session.Store = session.NewMemoryStore()
	if cfg.Session.Store == config.SessionRedis {
		rdb := cache.NewRedisClient(cfg.Redis)
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Fatalw("redis unreachable", "addr", cfg.Redis.Addr, "err", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, "")
	}

	repo := repository.NewRepository(client, log)
	if err := handler.RegisterValidators(); err != nil {
		sugar.Fatalw("binding rules", "err", err)
	}

	app := &application{
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Sessions:   sessions,
		Handler: &handler.Handler{
			Logger:       log,
			Repo:         repo,
			TokenMaker:   auth.NewJWTMaker(cfg.JWT.Secret),
			Sessions:     sessions,
			TokenTTL:     cfg.JWT.AccessTokenTTL,
			CookieSecure: cfg.Session.CookieSecure,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/app"
	"github.com/ross1116/pokeref/internal/config"
	"github.com/ross1116/pokeref/server"
)

func main() {
	flags := pflag.NewFlagSet("pokeref-server", pflag.ExitOnError)
	cfgPath := flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("server.addr", ":8080", "listen address")
	flags.Bool("server.debug", false, "gin debug mode")
	flags.Bool("log.debug", false, "development logging")
	flags.String("store.path", "pokeref.db", "SQLite file for scores and streaks")
	flags.String("cache.redis_addr", "", "cache PokeAPI responses in this redis instead of memory")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadWithFlags(*cfgPath, flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Log.Debug || cfg.Server.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		Debug:        cfg.Server.Debug,
		DisplayDelay: cfg.Battle.DisplayDelay,
		AIDelay:      cfg.Battle.AIDelay,
		MaxParallel:  cfg.API.MaxParallel,
		IdleTTL:      cfg.Server.SessionIdleTTL,
	}, server.Deps{
		Catalog:   a.Catalog,
		Roster:    a.Client,
		Quiz:      a.Quiz,
		Guess:     a.Guess,
		Progress:  a.Progress,
		Cache:     a.Client,
		Scheduler: a.Scheduler,
		RNG:       a.BattleRNG(),
		Logger:    logger.Named("http"),
	})
	return srv.Run(ctx)
}

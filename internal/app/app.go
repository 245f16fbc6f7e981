// Package app wires the shared services both front ends run on.
package app

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/cache"
	"github.com/ross1116/pokeref/internal/catalog"
	"github.com/ross1116/pokeref/internal/config"
	"github.com/ross1116/pokeref/internal/guess"
	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/progress"
	"github.com/ross1116/pokeref/internal/quiz"
	"github.com/ross1116/pokeref/internal/scheduler"
	"github.com/ross1116/pokeref/internal/store"
)

type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Cache     cache.Cache
	Client    *pokemon.Client
	Store     *store.Store
	Progress  *progress.Tracker
	Scheduler *scheduler.Scheduler
	Catalog   *catalog.Catalog
	Quiz      *quiz.Game
	Guess     *guess.Game
	RNG       *rand.Rand

	rngMu sync.Mutex
}

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewRNG returns a source seeded from seed, or from the clock when seed is 0.
func NewRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New builds every service. The caller owns the logger. On error anything
// already opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.Cache, err = cache.New(cache.Config{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.GCInterval,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Cache.RedisAddr != "" {
		logger.Info("response cache on redis", zap.String("addr", cfg.Cache.RedisAddr))
	}

	a.Client = pokemon.NewClient(pokemon.ClientConfig{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimitRPS:   cfg.API.RateLimitRPS,
		RateLimitBurst: cfg.API.RateLimitBurst,
		Cache:          a.Cache,
		CacheTTL:       cfg.Cache.TTL,
		Logger:         logger.Named("pokeapi"),
	})

	a.Store, err = store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	a.Progress = progress.NewTracker(a.Store, logger.Named("progress"))
	if err = a.Progress.Load(ctx); err != nil {
		return nil, err
	}

	a.Scheduler = scheduler.New(logger.Named("scheduler"))
	a.RNG = NewRNG(cfg.Battle.Seed)
	a.Catalog = catalog.New(a.Client, logger.Named("catalog"))
	a.Quiz = quiz.NewGame(quiz.GameConfig{
		Generator:    quiz.NewGenerator(a.Client, a.childRNG()),
		Scorer:       a.Progress,
		Scheduler:    a.Scheduler,
		AdvanceDelay: cfg.Quiz.AdvanceDelay,
		Logger:       logger.Named("quiz"),
	})
	a.Guess = guess.NewGame(a.Client, a.childRNG(), a.Progress)
	return a, nil
}

// childRNG splits an independent source off the root one.
func (a *App) childRNG() *rand.Rand {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return rand.New(rand.NewPCG(a.RNG.Uint64(), a.RNG.Uint64()))
}

// BattleRNG is a fresh source for one battle.
func (a *App) BattleRNG() *rand.Rand {
	return a.childRNG()
}

func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("closing store", zap.Error(err))
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn("closing cache", zap.Error(err))
		}
	}
}

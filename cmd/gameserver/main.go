// Package main provides the game server binary: it loads the world,
// connects persistence, and serves players over Telnet.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/rowanvale/lantern/internal/config"
	"github.com/rowanvale/lantern/internal/frontend/handlers"
	"github.com/rowanvale/lantern/internal/frontend/telnet"
	"github.com/rowanvale/lantern/internal/game/engine"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/game/world"
	"github.com/rowanvale/lantern/internal/observability"
	"github.com/rowanvale/lantern/internal/server"
	"github.com/rowanvale/lantern/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "path to room YAML directory (overrides config)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting game server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
	)

	// Load world
	roomsDir := cfg.Game.ContentDir
	if *contentDir != "" {
		roomsDir = *contentDir
	}
	worldStart := time.Now()
	rooms, err := world.LoadRoomsFromDir(roomsDir)
	if err != nil {
		logger.Fatal("loading rooms", zap.Error(err))
	}
	store := world.NewStore()
	store.LoadRooms(rooms)
	if err := store.ValidateExits(); err != nil {
		logger.Fatal("validating exits", zap.Error(err))
	}
	if _, ok := store.Room(cfg.Game.StartingRoom); !ok {
		logger.Fatal("starting room not loaded",
			zap.String("room", cfg.Game.StartingRoom))
	}
	logger.Info("world loaded",
		zap.Int("rooms", store.RoomCount()),
		zap.Duration("elapsed", time.Since(worldStart)),
	)

	// Connect to PostgreSQL for account and snapshot persistence
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)
	accounts := postgres.NewAccountRepository(pool.DB())
	players := postgres.NewPlayerRepository(pool.DB())

	// Wire the engine and session handlers
	sessions := session.NewManager()
	eng := engine.New(store, sessions, cfg.Game, logger)
	game := handlers.NewGameHandler(eng, sessions, players, logger)
	auth := handlers.NewAuthHandler(accounts, game, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, auth, logger)

	// Services stop in reverse order: the acceptor drains before the pool
	// closes under it.
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("database", &server.FuncService{
		StartFn: func() error { return pool.Health(ctx, 5*time.Second) },
		StopFn:  pool.Close,
	})
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	logger.Info("game server ready",
		zap.Duration("startup", time.Since(start)),
	)
	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

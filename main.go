package main

import (
	"github.com/warithr621/game-theory/config"
	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/persistence"
	"github.com/warithr621/game-theory/server"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Round recording is optional: without a configured database the game
	// runs fine, outcomes just aren't kept.
	var store persistence.Store
	if cfg.Database.Postgres.Host != "" {
		pg := cfg.Database.Postgres
		switch cfg.Database.Driver {
		case "sql":
			store, err = persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		default:
			store, err = persistence.NewGormStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		}
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful, round recording enabled.")
		defer store.Close()
	} else {
		logger.Log.Info("No database configured, round recording disabled.")
	}

	// Initialize and start the game server
	gameServer := server.NewGameServer(cfg, store)
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

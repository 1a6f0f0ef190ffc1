// @title Referee Training API
// @version 1.0
// @description Backend for referee training: laws-of-the-game quizzes, video
// @description decision tests and the tagged clip library.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"referee_training_backend/internal/app"
	"referee_training_backend/internal/config"
	"referee_training_backend/pkg/configwatcher"
	"referee_training_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force migration on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migration finished, exiting")
		return
	}

	// Media limits are the only settings safe to pick up without a restart;
	// everything else (DB, ports, middleware) is fixed at boot.
	go configwatcher.Watch("configs/config.yaml", application.ApplyConfig)

	application.Run()
}

// @title BookClub Platform API
// @version 1.0
// @description Backend for the BookClub community platform: clubs, reading goals and consistency analytics.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"bookclub_backend/internal/app"
	"bookclub_backend/internal/config"
	"bookclub_backend/pkg/configwatcher"
	"bookclub_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on startup, even in release mode")
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
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		fresh, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		application.ReloadConfig(fresh)
		logger.Log.Info("Configuration reloaded", zap.String("mode", fresh.Server.Mode))
	})

	application.Run()
}

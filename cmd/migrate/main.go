package main

import (
	"context"
	"log"
	"time"

	"agora/backend/internal/config"
	"agora/backend/internal/db"
	"agora/backend/internal/logging"

	"github.com/spf13/pflag"
)

// migrate applies the schema to the configured database and exits
func main() {
	timeout := pflag.Duration("timeout", 2*time.Minute, "give up after this long")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	gormDB, err := db.InitORM(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to %s: %v", cfg.Database.Driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Printf("✅ Schema up to date on %s/%s", cfg.Database.Driver, cfg.Database.Name)
}

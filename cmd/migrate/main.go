package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"appointme.backend/internal/config"
	"appointme.backend/internal/infrastructure/datasources/postgres"
	"appointme.backend/pkg/logger"
)

var (
	loadDotenv = func() error { return godotenv.Load() }
	loadCfg    = config.Load
	initLog    = logger.Init
	openSQL    = postgres.NewConnection
	applySQL   = postgres.Migrate
	exitFn     = os.Exit
)

const migrateTimeout = 2 * time.Minute

func runMigrate(ctx context.Context) error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	initLog(cfg.Server.Env)
	defer logger.Sync()

	db, err := openSQL(cfg.Database)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	applied, err := applySQL(ctx, db)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info(ctx, "Schema is up to date", zap.Int("statements", applied))
	return nil
}

func main() {
	if err := runMigrate(context.Background()); err != nil {
		logger.Error(context.Background(), "Migrate exited with error", zap.Error(err))
		exitFn(1)
	}
}

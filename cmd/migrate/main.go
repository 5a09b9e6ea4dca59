package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/angelmondragon/inventory-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	exitOn(context.Background(), logg, "loading config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"dir": *dir,
	})

	switch *cmd {
	case "create":
		if *name == "" {
			exitOn(ctx, logg, "create", fmt.Errorf("missing -name"))
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		exitOn(ctx, logg, "creating migration", err)
		fmt.Println("created migration:", path)
		return
	case "validate":
		exitOn(ctx, logg, "validating migrations", migrate.ValidateDir(*dir))
		fmt.Println("migration validation passed")
		return
	case "up", "down", "status", "version":
	default:
		exitOn(ctx, logg, "parsing flags", fmt.Errorf("unknown -cmd value %q", *cmd))
	}

	// Schema commands always target Postgres; the memory store builds its
	// own schema on boot.
	dbClient, err := db.New(ctx, cfg.DB, logg)
	exitOn(ctx, logg, "connecting to database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.SQLDB()
	exitOn(ctx, logg, "extracting sql.DB", err)

	if *cmd == "version" {
		if *version == "" {
			exitOn(ctx, logg, "version", fmt.Errorf("missing -version"))
		}
		exitOn(ctx, logg, "goose version", migrate.MigrateToVersion(ctx, sqlDB, *dir, *version))
		return
	}

	exitOn(ctx, logg, "goose "+*cmd, migrate.Run(ctx, sqlDB, *dir, *cmd))
	logg.Info(ctx, "migrate finished")
}

func exitOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("migrate failed: %s", step), err)
	os.Exit(1)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/config"
	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/erp/addresssync/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Overall timeout for the command")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logLevel, time.Second))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info("Migration CLI started", zap.String("command", command))

	switch command {
	case "up":
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "seed":
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		countries, states := persistence.DefaultCountries(), persistence.DefaultStateProvinces()
		if err := persistence.NewGormReferenceDataRepository(db.DB).Seed(ctx, countries, states); err != nil {
			log.Fatal("Seeding reference data failed", zap.Error(err))
		}
		settings := persistence.NewGormSettingsRepository(db.DB, nil)
		_, err := settings.Get(ctx, domain.SettingSyncContactAddress)
		switch {
		case errors.Is(err, domain.ErrSettingNotFound):
			value := "no"
			if cfg.Sync.DefaultEnabled {
				value = "yes"
			}
			if err := settings.Set(ctx, domain.SettingSyncContactAddress, value); err != nil {
				log.Fatal("Seeding sync flag failed", zap.Error(err))
			}
		case err != nil:
			log.Fatal("Failed to read sync flag", zap.Error(err))
		}
		log.Info("Seed complete",
			zap.Int("countries", len(countries)),
			zap.Int("state_provinces", len(states)),
		)

	case "flag":
		if len(args) < 2 {
			log.Fatal("Value required. Usage: migrate flag <yes|no>")
		}
		value := "no"
		if domain.ParseYesNo(args[1]) {
			value = "yes"
		}
		if err := persistence.NewGormSettingsRepository(db.DB, nil).Set(ctx, domain.SettingSyncContactAddress, value); err != nil {
			log.Fatal("Failed to set sync flag", zap.Error(err))
		}
		log.Info("Sync flag updated",
			zap.String("option", domain.SettingSyncContactAddress),
			zap.String("value", value),
		)

	case "link":
		if len(args) < 3 {
			log.Fatal("Ids required. Usage: migrate link <user_id> <contact_id> [username]")
		}
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || userID <= 0 {
			log.Fatal("Invalid user id", zap.String("value", args[1]))
		}
		contactID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil || contactID <= 0 {
			log.Fatal("Invalid contact id", zap.String("value", args[2]))
		}
		username := ""
		if len(args) > 3 {
			username = args[3]
		}
		if err := persistence.NewGormIdentityLinkRepository(db.DB).Link(ctx, userID, contactID, username); err != nil {
			log.Fatal("Failed to link identities", zap.Error(err))
		}
		log.Info("Identities linked",
			zap.Int64("user_id", userID),
			zap.Int64("contact_id", contactID),
		)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Address sync database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                                 Create or update the tables
  seed                               Migrate, then insert default countries, states and the sync flag
  flag <yes|no>                      Switch address sync on or off
  link <user_id> <contact_id> [name] Link a store user to a CRM contact

Flags:
  -log-level string     Log level: debug, info, warn, error (default: info)
  -timeout duration     Overall timeout for the command (default: 1m)

Environment Variables:
  SYNC_DATABASE_HOST, SYNC_DATABASE_PORT, SYNC_DATABASE_USER,
  SYNC_DATABASE_PASSWORD, SYNC_DATABASE_DBNAME, SYNC_DATABASE_SSLMODE`)
}

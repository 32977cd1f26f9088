package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/infrastructure/config"
	"github.com/schoolms/backend/internal/infrastructure/logger"
	"github.com/schoolms/backend/internal/infrastructure/migration"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	defer func() {
		_ = log.Sync()
	}()

	// create does not need a database connection
	if command == "create" {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: migrate create <name>")
			os.Exit(1)
		}
		file, err := migration.CreateMigration(migrationsPath, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("up", file.UpPath),
			zap.String("down", file.DownPath),
		)
		return
	}

	// list only reads the local directory
	if command == "list" {
		names, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: migrate steps <n>")
			os.Exit(1)
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("arg", args[1]))
		}
		err = migrator.Steps(n)
	case "goto":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: migrate goto <version>")
			os.Exit(1)
		}
		var v uint64
		v, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", args[1]))
		}
		err = migrator.GoTo(uint(v))
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: migrate force <version>")
			os.Exit(1)
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", args[1]))
		}
		err = migrator.Force(v)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration command failed",
			zap.String("command", command),
			zap.Error(err),
		)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [-path dir] [-log-level level] <command> [args]

Commands:
  up                 Apply all pending migrations
  down               Roll back all migrations
  steps <n>          Apply n migrations (negative rolls back)
  goto <version>     Migrate to a specific version
  force <version>    Force-set the version without running migrations
  version            Print the current version
  create <name>      Create a new migration file pair
  list               Print the local migration files`)
}

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"medstock/config"
	"medstock/internal/pkg/database"
	"medstock/migrations"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	cfg := config.LoadConfig()

	var migrationsDir string
	var verbose bool
	flag.StringVar(&migrationsDir, "dir", cfg.MigrationDir, "directory with migration files (empty uses the embedded scripts)")
	flag.BoolVar(&verbose, "v", false, "enable goose logging")
	flag.Parse()

	// Connect to the database
	db, err := database.Open(database.Options{
		Driver:      cfg.DBDriver,
		URL:         cfg.DatabaseURL,
		MaxOpen:     2,
		MaxIdle:     1,
		PingTimeout: cfg.DBTimeout,
	})
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	if !verbose {
		goose.SetLogger(goose.NopLogger())
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := migrations.Run(command, db.DB, db.Dialect.GooseDialect, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success (%s)\n", command, db.Dialect.Name)
}

package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"stratcore/adapters/api"
	"stratcore/adapters/llm"
	"stratcore/adapters/postgres"
	"stratcore/app"
	"stratcore/domain/transform"
	"stratcore/internal/config"
	"stratcore/internal/errors"
	"stratcore/internal/migration"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("[Main] Database initialization failed: %v", err)
	}
	defer db.Close()

	log.Printf("[Main] Database ready, migration version %s", migration.NewRunner().Version())

	repo := postgres.NewContextRepository(db)
	sessions := app.NewSessionManager(repo)

	reasoning := llm.NewClient(appConfig.AI)
	generator := app.NewSmartOptionGenerator(reasoning)
	gapFiller := app.NewGapFiller(generator)

	registry := transform.NewRegistry()

	server := api.NewServer(appConfig.Server, sessions, gapFiller, registry)
	if err := server.Run(); err != nil {
		log.Fatalf("[Main] Server error: %v", err)
	}
}

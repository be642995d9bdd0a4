// Package store owns the postgres connection and every query the app runs
// against the users/tasks/teams schema.
package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var pool *pgxpool.Pool

type Config struct {
	Address     string
	User        string
	Password    string
	Name        string
	InitSQLPath string
}

// ConfigFromEnv builds the database config for the maintenance binaries,
// from the same env vars the web app reads.
func ConfigFromEnv(confPath string) Config {
	if confPath != "" {
		if err := godotenv.Load(confPath); err != nil {
			log.Printf("Failed to load the config file at %s, using default ones...", confPath)
		}
	}

	getEnv := func(env, fallback string) string {
		if value, exists := os.LookupEnv(env); exists {
			return value
		}
		return fallback
	}

	return Config{
		Address:     getEnv("DB_ADDRESS", "localhost:5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		Name:        getEnv("DB_NAME", "task_tracker"),
		InitSQLPath: getEnv("INIT_SQL_PATH", "./internal/store/db/init.sql"),
	}
}

func Connect(ctx context.Context, cfg Config) error {
	var err error
	pool, err = pgxpool.New(
		ctx,
		fmt.Sprintf(
			"postgres://%s:%s@%s/%s",
			cfg.User,
			cfg.Password,
			cfg.Address,
			cfg.Name,
		),
	)
	if err != nil {
		return fmt.Errorf("could not connect to the database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping the db: %w", err)
	}

	b, err := os.ReadFile(cfg.InitSQLPath)
	if err != nil {
		return fmt.Errorf("failed to open and read the init sql file: %w", err)
	}
	// apply init sql script
	if _, err := pool.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("failed to execute init sql: %w", err)
	}

	return nil
}

func MustConnect(ctx context.Context, cfg Config) {
	if err := Connect(ctx, cfg); err != nil {
		log.Fatalf("store: %v", err)
	}
}

func Close() {
	if pool != nil {
		pool.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/classroom-activities/config"
	pginfra "github.com/oksasatya/classroom-activities/internal/infrastructure/postgres"
	"github.com/oksasatya/classroom-activities/internal/seed"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	res, err := seed.Run(ctx, pginfra.NewUserRepository(pool), pginfra.NewActivityRepository(pool), logger)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	fmt.Printf("teacher: %s id=%s password=%s\n", seed.TeacherEmail, res.TeacherID, seed.Password)
	fmt.Printf("student: %s id=%s password=%s\n", seed.StudentEmail, res.StudentID, seed.Password)
	fmt.Printf("activity: id=%s\n", res.ActivityID)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/edivorce/edivorce-api/internal/config"
	"github.com/edivorce/edivorce-api/internal/db"
	"github.com/edivorce/edivorce-api/internal/repository"
	"github.com/edivorce/edivorce-api/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to read .env", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "dbtool",
		Usage: "Manage the eDivorce database",
		Commands: []*cli.Command{
			migrateCommand(logger),
			seedCommand(logger),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func migrateCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
				return err
			}
			logger.Info("database migrations applied", zap.String("dir", cfg.MigrationsDir))
			return nil
		},
	}
}

func seedCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load questions from a JSON file, upserting by key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "path to the questions seed file",
				Value:   "data/seeds/questions.json",
				Sources: cli.EnvVars("SEED_PATH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			pool, err := db.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			path := cmd.String("file")
			n, err := seed(ctx, pool, path, logger)
			if err != nil {
				return err
			}
			logger.Info("questions seeded", zap.String("file", path), zap.Int("count", n))
			return nil
		},
	}
}

func seed(ctx context.Context, pool *pgxpool.Pool, path string, logger *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	svc := service.NewSystemService(
		repository.NewPgQuestionRepository(pool),
		repository.NewPgUserRepository(pool),
		logger,
	)
	return svc.SeedQuestions(ctx, f)
}

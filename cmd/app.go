package cmd

import (
	"context"
	"fmt"
	"log"

	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/database"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

// app is the shared bootstrap for every command: config, logger and pool.
type app struct {
	config *utils.Config
	log    *zap.Logger
	db     database.PgxIface
	repo   *repository.Repository
}

func newApp(ctx context.Context, migrate bool) (*app, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.Log, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using default production logger.", err)
		logger, _ = zap.NewProduction()
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("Database connected successfully",
		zap.String("host", config.Database.Host),
		zap.String("database", config.Database.Name))

	if migrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			db.Close()
			_ = logger.Sync()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("Migrations applied", zap.Strings("versions", applied))
		}
	}

	return &app{
		config: config,
		log:    logger,
		db:     db,
		repo:   repository.NewRepository(db, logger),
	}, nil
}

func (a *app) service() *usecase.Service {
	return usecase.NewService(a.repo, a.config, a.log)
}

func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

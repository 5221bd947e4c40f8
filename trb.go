// Package trb wires the training record book data core together for the
// mobile shell: configuration, logging, the on-device store, repositories
// and the use-case services.
package trb

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/bootstrap"
	"github.com/noah-isme/cadet-trb/internal/models"
	"github.com/noah-isme/cadet-trb/internal/repository"
	"github.com/noah-isme/cadet-trb/internal/service"
	"github.com/noah-isme/cadet-trb/internal/store"
	"github.com/noah-isme/cadet-trb/pkg/config"
	"github.com/noah-isme/cadet-trb/pkg/logger"
)

// Session aliases the session model so shells don't import internal
// packages for the one value they construct themselves.
type Session = models.Session

// App is the composition root handed to the UI shell.
type App struct {
	Profiles    *service.ProfileService
	Deployments *service.DeploymentService
	Tasks       *service.TaskService
	Diary       *service.DiaryService
	Exports     *service.ExportService

	Logger *zap.Logger

	store  *store.Store
	seeder *bootstrap.Seeder
}

// Open loads configuration, opens the store and builds every service.
// A schema failure is returned to the caller; the app does not start on
// top of a broken store.
func Open() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	db := st.DB()

	profiles := repository.NewProfileRepository(db)
	vessels := repository.NewVesselRepository(db)
	deployments := repository.NewDeploymentRepository(db)
	tasks := repository.NewTaskRepository(db)
	diary := repository.NewDiaryRepository(db)

	profileSvc := service.NewProfileService(profiles, nil, log)
	deploymentSvc := service.NewDeploymentService(deployments, vessels, nil, log)
	taskSvc := service.NewTaskService(tasks, nil, log)
	diarySvc := service.NewDiaryService(diary, nil, log)
	exportSvc := service.NewExportService(deploymentSvc, taskSvc, log)

	return &App{
		Profiles:    profileSvc,
		Deployments: deploymentSvc,
		Tasks:       taskSvc,
		Diary:       diarySvc,
		Exports:     exportSvc,
		Logger:      log,
		store:       st,
		seeder:      bootstrap.NewSeeder(tasks, vessels, deployments, log),
	}, nil
}

// Bootstrap runs the idempotent first-run seeding for the session cadet.
func (a *App) Bootstrap(ctx context.Context, session Session) error {
	return a.seeder.Run(ctx, session)
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

package main

import (
	"github.com/advisorhub/backend/internal/config"
	"github.com/advisorhub/backend/internal/handlers"
	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/internal/utils"
	"github.com/advisorhub/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	notificationService *services.NotificationService
	reminderService     *services.ReminderService
	taskQueue           services.TaskQueue
	worker              *services.Worker
	authHandler         *handlers.AuthHandler
	appointmentHandler  *handlers.AppointmentHandler
	projectHandler      *handlers.ProjectHandler
	scheduleHandler     *handlers.ScheduleHandler
	notificationHandler *handlers.NotificationHandler
	dashboardHandler    *handlers.DashboardHandler
	systemLogHandler    *handlers.SystemLogHandler
	healthHandler       *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	services.InitSystemLogger(models.GetDB())
	services.StartLogCleanupScheduler(models.GetDB())

	// Task queue (Redis-backed when enabled, in-process otherwise)
	taskQueue := services.InitTaskQueue(cfg)
	notificationService := services.NewNotificationService(models.GetDB(), taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Deliver)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Deliver)
			worker.Start()
		}
	}

	reminderService := services.NewReminderService(models.GetDB(), notificationService)
	reminderService.StartScheduler()

	return &appServices{
		notificationService: notificationService,
		reminderService:     reminderService,
		taskQueue:           taskQueue,
		worker:              worker,
		authHandler:         handlers.NewAuthHandler(models.GetDB(), cfg),
		appointmentHandler:  handlers.NewAppointmentHandler(models.GetDB(), notificationService),
		projectHandler:      handlers.NewProjectHandler(models.GetDB()),
		scheduleHandler:     handlers.NewScheduleHandler(models.GetDB()),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		dashboardHandler:    handlers.NewDashboardHandler(models.GetDB()),
		systemLogHandler:    handlers.NewSystemLogHandler(models.GetDB()),
		healthHandler:       handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All services stopped")
}

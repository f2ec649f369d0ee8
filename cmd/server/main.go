package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crackthechain/internal/api"
	"crackthechain/internal/app/service"
	"crackthechain/internal/app/worker"
	"crackthechain/internal/common/security"
	"crackthechain/internal/domain/repository"
	"crackthechain/internal/platform/config"
	"crackthechain/internal/platform/database"
	"crackthechain/internal/platform/mailer"
	"crackthechain/internal/platform/queue"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// 1. Load Configuration
	config.Load()
	log.Info().Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	log.Info().Msg("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	authCodeRepo := repository.NewPgAuthCodeRepository(database.DB)
	projectRepo := repository.NewPgProjectRepository(database.DB)
	sectionRepo := repository.NewPgProjectSectionRepository(database.DB)
	reportRepo := repository.NewPgProjectReportRepository(database.DB)
	statsRepo := repository.NewPgStatsRepository(database.DB)

	// 6. Initialize Mail Outbox & Services
	outbox := mailer.NewOutbox(queue.RDB, config.AppConfig.MailQueueName)

	authService := service.NewAuthService(userRepo, authCodeRepo, outbox)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, sectionRepo)
	sectionService := service.NewSectionService(sectionRepo)
	reportService := service.NewReportService(reportRepo, projectRepo, userRepo)
	statsService := service.NewStatsService(statsRepo)

	// 7. Initialize Mail Worker (as a goroutine)
	mailWorker := worker.NewMailWorker(queue.RDB, mailer.NewSender(), config.AppConfig.MailQueueName)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go mailWorker.Start(workerCtx)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, projectService, sectionService, reportService, statsService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", config.AppConfig.APIPort).Msg("Could not start server")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server and worker stopped gracefully")
}

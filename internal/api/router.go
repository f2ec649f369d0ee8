package api

import (
	"net/http"
	"time"

	"crackthechain/internal/api/handler"
	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common/security"
	"crackthechain/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	projectService *service.ProjectService,
	sectionService *service.SectionService,
	reportService *service.ReportService,
	statsService *service.StatsService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.FrontendWebURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Email links carry the token as a query param; lift it into the
	// Authorization header before the verifier looks for it.
	r.Use(middleware.TokenFromQuery)
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/users/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService, statsService)
		v1.Route("/users/data", userHandler.RegisterRoutes)

		projectHandler := handler.NewProjectHandler(projectService)
		v1.Route("/project", projectHandler.RegisterRoutes)

		sectionHandler := handler.NewSectionHandler(sectionService)
		v1.Route("/project-section", sectionHandler.RegisterRoutes)

		reportHandler := handler.NewReportHandler(reportService)
		v1.Route("/project-report", reportHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(statsService)
		v1.Route("/admin", adminHandler.RegisterRoutes)
	})

	return r
}

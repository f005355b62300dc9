package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/core/services/evaluation"
	"gitlab.com/codeclimb-2025.net/internal/core/services/streak"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
	"gitlab.com/codeclimb-2025.net/internal/handlers/evaluations"
	"gitlab.com/codeclimb-2025.net/internal/handlers/streaks"
	"gitlab.com/codeclimb-2025.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	evalService   evaluation.IEvaluationService
	streakService streak.IStreakService
	submissions   secondary.SubmissionRepository
}

func NewServiceProvider(
	evalService evaluation.IEvaluationService,
	streakService streak.IStreakService,
	submissions secondary.SubmissionRepository,
) *ServiceProvider {
	return &ServiceProvider{
		evalService:   evalService,
		streakService: streakService,
		submissions:   submissions,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	middleware      *handlers.MiddlewareProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, middleware *handlers.MiddlewareProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		middleware:      middleware,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.middleware.Identity)
	evaluations.NewEvaluationHandler(s.ServiceProvider.evalService, s.logger).RegisterRoutes(api)
	streaks.NewStreakHandler(s.ServiceProvider.streakService, s.logger).RegisterRoutes(api)
	submissions.NewSubmissionHandler(s.ServiceProvider.submissions, s.logger).RegisterRoutes(api)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}

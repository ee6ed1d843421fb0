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

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/services/catalog"
	"gitlab.com/algoforge.net/internal/core/services/grading"
	"gitlab.com/algoforge.net/internal/handlers"
	"gitlab.com/algoforge.net/internal/handlers/problems"
	"gitlab.com/algoforge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	gradingService grading.IGradingService
	catalogService catalog.ICatalogService
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	catalogService catalog.ICatalogService,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService: gradingService,
		catalogService: catalogService,
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
	r.Use(s.middleware.JWTMiddleware)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.gradingService, s.logger).
		RegisterRoutes(r)
	problems.
		NewProblemHandler(s.ServiceProvider.catalogService, s.logger).
		RegisterRoutes(r)
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
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

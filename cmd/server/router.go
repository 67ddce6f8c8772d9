package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/n0secutiry/taskapi/internal/api"
	apiMiddleware "github.com/n0secutiry/taskapi/internal/api/middleware"
	"github.com/n0secutiry/taskapi/internal/api/shared"
	"github.com/n0secutiry/taskapi/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return newRouter(app.authService, app.taskService, app.logger)
}

// newRouter builds the HTTP surface from the two services. It takes the
// services directly so tests can mount it over in-memory stores.
func newRouter(authSvc service.AuthService, taskSvc service.TaskService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Metrics)

	authHandler := api.NewAuthHandler(authSvc)
	taskHandler := api.NewTaskHandler(taskSvc)
	authMiddleware := apiMiddleware.NewAuthMiddleware(authSvc)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, "Hello World!")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Token)
	})

	r.Get("/all_task", taskHandler.ListAll)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/task/{id}", taskHandler.Get)
		r.Post("/create", taskHandler.Create)
		r.Put("/update/{id}", taskHandler.Update)
		r.Delete("/delete/{id}", taskHandler.Delete)
	})

	return r
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/statwrap/core/cmd/api/middleware"
	"github.com/statwrap/core/internal/config"
	"github.com/statwrap/core/internal/handlers"
	"github.com/statwrap/core/internal/projectlist"
	"github.com/statwrap/core/internal/workflow"
)

func newRouter(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	builder := workflow.New(workflow.Options{RelativizeToRoot: cfg.Workflow.RelativizeToRoot})

	wf, err := handlers.NewWorkflow(builder, cfg.Cache.Size, logger)
	if err != nil {
		return nil, err
	}
	projects := handlers.NewProjects(projectlist.New(cfg.Projects.File), logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Cors(cfg.Server.CORSOrigin))

	r.Get("/health", handlers.HealthHandler)
	r.Post("/graph", wf.GraphHandler)
	r.Post("/tree", wf.TreeHandler)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projects.ListHandler)
		r.Post("/", projects.AppendHandler)
		r.Post("/{id}/favorite", projects.FavoriteHandler)
	})

	return r, nil
}

package ui

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"

	"trialsim/adapters/report"
	"trialsim/app"
	"trialsim/domain/core"
	"trialsim/domain/trial"
	"trialsim/internal"
	"trialsim/internal/errors"
)

// App is the batch HTTP surface: one stateless simulation endpoint plus a
// health check. Nothing is persisted; every request runs to completion and
// returns its summary.
type App struct {
	router   *chi.Mux
	sims     *app.SimulationService
	defaults trial.Scenario
	workers  int
	logger   *internal.Logger
}

// Config holds HTTP surface configuration
type Config struct {
	Defaults trial.Scenario
	Workers  int
}

// NewApp creates the HTTP application
func NewApp(cfg Config, sims *app.SimulationService) *App {
	a := &App{
		router:   chi.NewRouter(),
		sims:     sims,
		defaults: cfg.Defaults,
		workers:  cfg.Workers,
		logger:   internal.NewDefaultLogger(),
	}

	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(10 * time.Minute))

	a.router.Get("/healthz", a.handleHealth)
	a.router.Post("/api/simulate", a.handleSimulate)

	return a
}

// Router exposes the chi mux for serving and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port.
func (a *App) Serve(port string) error {
	a.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSimulate runs one simulation. The JSON body overrides the default
// scenario field-by-field; ?format=html renders the markdown report,
// ?format=text the labeled plain report, anything else the JSON summary.
func (a *App) handleSimulate(w http.ResponseWriter, r *http.Request) {
	scenario := a.defaults
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil && !stderrors.Is(err, io.EOF) {
		a.writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed scenario body"))
		return
	}

	summary, err := a.sims.Run(r.Context(), app.SimulationRequest{Scenario: scenario, Workers: a.workers})
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsInvalidParameterError(err) {
			status = http.StatusBadRequest
		}
		a.writeError(w, status, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(markdown.ToHTML([]byte(report.RenderMarkdown(summary)), nil, nil))
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(report.RenderText(summary)))
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.logger.Error("simulate request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

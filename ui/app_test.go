package ui

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trialsim/adapters/rng"
	"trialsim/adapters/stats"
	"trialsim/app"
	"trialsim/domain/trial"
	"trialsim/internal/config"
)

func newTestApp() *App {
	defaults := config.DefaultScenario()
	defaults.Replications = 50
	sims := app.NewSimulationService(stats.NewLogRankEngine(), rng.NewStreamSource())
	return NewApp(Config{Defaults: defaults, Workers: 2}, sims)
}

func TestHandleSimulate_JSON(t *testing.T) {
	a := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"replications":40,"seed":179}`))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status %d, body %s", rec.Code, rec.Body.String())
	}

	var summary trial.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Malformed summary: %v", err)
	}
	if summary.Replications != 40 {
		t.Errorf("Replications %d, want body override 40", summary.Replications)
	}

	total := 0.0
	for _, o := range trial.Outcomes() {
		total += summary.Probability(o)
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("Probabilities sum to %f, want 1", total)
	}
}

func TestHandleSimulate_HTMLFormat(t *testing.T) {
	a := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/simulate?format=html", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "<table>") {
		t.Error("HTML report should render the outcome table")
	}
}

func TestHandleSimulate_InvalidScenario(t *testing.T) {
	a := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"prevalence":1.7}`))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status %d, want 400", rec.Code)
	}
}

func TestHandleSimulate_MalformedBody(t *testing.T) {
	a := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"prevalence":`))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status %d, want 200", rec.Code)
	}
}

package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/internal/state"
	"github.com/viableos/viableos/pkg/models"
)

func testServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var store *state.DB
	if withStore {
		var err error
		store, err = state.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		if err := store.Migrate(); err != nil {
			t.Fatalf("migrate store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}
	settings := &config.Settings{
		Defaults: config.DefaultsSettings{Strategy: "balanced", Provider: "anthropic", MonthlyUSD: 150},
	}
	return New(engine.New(catalog.Default()), settings, store)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func validConfig() *models.Config {
	return &models.Config{
		ViableSystem: models.ViableSystem{
			Name:     "Acme",
			Identity: models.Identity{Purpose: "Sell widgets"},
			System1: []models.S1Unit{
				{Name: "Sales", Purpose: "Find customers", Autonomy: models.AutonomySupervised},
			},
			Budget: models.Budget{MonthlyUSD: 150, Strategy: models.StrategyBalanced},
		},
	}
}

func TestListTemplates(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodGet, "/api/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) == 0 || got[0].Key != "custom" {
		t.Errorf("unexpected templates: %+v", got)
	}
}

func TestGetTemplate(t *testing.T) {
	s := testServer(t, false)

	rec := doJSON(t, s, http.MethodGet, "/api/templates/saas-startup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cfg models.Config
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.ViableSystem.System1) != 3 {
		t.Errorf("got %d units, want 3", len(cfg.ViableSystem.System1))
	}
	if cfg.ViableSystem.Budget.MonthlyUSD != 150 {
		t.Errorf("budget = %v, want settings default 150", cfg.ViableSystem.Budget.MonthlyUSD)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/templates/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown template status = %d, want 404", rec.Code)
	}
}

func TestListModels(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodGet, "/api/models", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []struct {
		ID       string `json:"id"`
		Provider string `json:"provider"`
		Tier     string `json:"tier"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) < 10 {
		t.Errorf("got %d models, want full catalog", len(got))
	}
}

func TestModelsByProvider(t *testing.T) {
	s := testServer(t, false)

	rec := doJSON(t, s, http.MethodGet, "/api/models/anthropic", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var ids []string
	json.Unmarshal(rec.Body.Bytes(), &ids)
	for _, id := range ids {
		if !strings.HasPrefix(id, "anthropic/") {
			t.Errorf("unexpected model %s for provider anthropic", id)
		}
	}

	rec = doJSON(t, s, http.MethodGet, "/api/models/unknown-provider", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown provider status = %d, want 404", rec.Code)
	}
}

func TestPresets(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodGet, "/api/presets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got presetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.AutonomyLevels) != 3 {
		t.Errorf("got %d autonomy levels, want 3", len(got.AutonomyLevels))
	}
	if len(got.StrategyPresets) != 3 {
		t.Errorf("got %d strategies, want 3", len(got.StrategyPresets))
	}
}

func TestCheck(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodPost, "/api/check", validConfig())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report models.ViabilityReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Total != 6 || len(report.Checks) != 6 {
		t.Errorf("unexpected report: score %d/%d, %d checks", report.Score, report.Total, len(report.Checks))
	}
}

func TestBudget(t *testing.T) {
	s := testServer(t, false)

	rec := doJSON(t, s, http.MethodPost, "/api/budget", validConfig())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var plan models.BudgetPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sum float64
	for _, a := range plan.Allocations {
		sum += a.MonthlyUSD
	}
	if fmt.Sprintf("%.2f", sum) != "150.00" {
		t.Errorf("allocations sum to %v, want 150", sum)
	}
}

func TestBudget_Invalid(t *testing.T) {
	cfg := validConfig()
	cfg.ViableSystem.Budget.MonthlyUSD = 0

	rec := doJSON(t, testServer(t, false), http.MethodPost, "/api/budget", cfg)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestCheck_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	testServer(t, false).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRules(t *testing.T) {
	units := []models.S1Unit{
		{Name: "Website", Purpose: "Maintain the website"},
		{Name: "Marketing", Purpose: "Update website content"},
	}
	rec := doJSON(t, testServer(t, false), http.MethodPost, "/api/rules", units)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rules []models.CoordinationRule
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rules) == 0 {
		t.Error("expected generated rules for two units")
	}
}

func TestValidate(t *testing.T) {
	s := testServer(t, false)

	rec := doJSON(t, s, http.MethodPost, "/api/validate", validConfig())
	var problems []string
	json.Unmarshal(rec.Body.Bytes(), &problems)
	if len(problems) != 0 {
		t.Errorf("valid config reported problems: %v", problems)
	}

	bad := validConfig()
	bad.ViableSystem.Name = ""
	rec = doJSON(t, s, http.MethodPost, "/api/validate", bad)
	json.Unmarshal(rec.Body.Bytes(), &problems)
	if len(problems) == 0 {
		t.Error("nameless config reported no problems")
	}
}

func TestGenerate(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodPost, "/api/generate", validConfig())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"openclaw.json", "install.sh", "workspaces/s1-sales/SOUL.md"} {
		if !names[want] {
			t.Errorf("zip missing %s", want)
		}
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	bad := validConfig()
	bad.ViableSystem.Name = ""
	rec := doJSON(t, testServer(t, false), http.MethodPost, "/api/generate", bad)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestDraftEndpoints(t *testing.T) {
	s := testServer(t, true)

	rec := doJSON(t, s, http.MethodPost, "/api/drafts", saveDraftRequest{
		Name: "Acme", Template: "saas-startup", ConfigYAML: "viable_system:\n  name: Acme\n",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	json.Unmarshal(rec.Body.Bytes(), &created)
	id := created["id"]
	if id == "" {
		t.Fatal("no id returned")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/drafts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/drafts/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/drafts/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/drafts/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestDraftEndpoints_NoStore(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodGet, "/api/drafts", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, testServer(t, false), http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

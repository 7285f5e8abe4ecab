package server

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/viableos/viableos/internal/budget"
	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/coordination"
	"github.com/viableos/viableos/internal/generator"
	"github.com/viableos/viableos/internal/state"
	"github.com/viableos/viableos/internal/templates"
	"github.com/viableos/viableos/pkg/models"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templates.All())
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	cfg, ok := templates.Build(key, s.settings.Defaults.MonthlyUSD, models.Strategy(s.settings.Defaults.Strategy))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", key))
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	cat := s.engine.Catalog()
	ids := cat.AllModels()
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if m, ok := cat.Lookup(id); ok {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleModelsByProvider(w http.ResponseWriter, r *http.Request) {
	ids := s.engine.Catalog().ModelsForProvider(r.PathValue("provider"))
	if len(ids) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no models for provider %q", r.PathValue("provider")))
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

type presetsResponse struct {
	Values                []string                 `json:"values"`
	AutonomyLevels        []templates.AutonomyLevel `json:"autonomy_levels"`
	ToolCategories        []templates.ToolCategory  `json:"tool_categories"`
	ApprovalPresets       []string                 `json:"approval_presets"`
	NotificationChannels  []string                 `json:"notification_channels"`
	NeverDoPresets        []string                 `json:"never_do_presets"`
	PersistenceStrategies []string                 `json:"persistence_strategies"`
	StrategyPresets       []string                 `json:"strategy_presets"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{
		Values:                templates.ValuePresets,
		AutonomyLevels:        templates.AutonomyLevels,
		ToolCategories:        templates.ToolCategories,
		ApprovalPresets:       templates.ApprovalPresets,
		NotificationChannels:  templates.NotificationChannels,
		NeverDoPresets:        templates.NeverDoPresets,
		PersistenceStrategies: templates.PersistenceStrategies,
		StrategyPresets: []string{
			string(models.StrategyFrugal),
			string(models.StrategyBalanced),
			string(models.StrategyPerformance),
		},
	})
}

func (s *Server) decodeConfig(w http.ResponseWriter, r *http.Request) (*models.Config, bool) {
	var cfg models.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid config: %v", err))
		return nil, false
	}
	return &cfg, true
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	problems := config.ValidateOrg(cfg)
	if problems == nil {
		problems = []string{}
	}
	writeJSON(w, http.StatusOK, problems)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	report, _, _ := s.engine.Evaluate(cfg)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	plan, err := s.engine.Allocate(cfg)
	if err != nil {
		var invalid *budget.InvalidBudgetError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	var units []models.S1Unit
	if err := json.NewDecoder(r.Body).Decode(&units); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid units: %v", err))
		return
	}
	rules := coordination.NewGenerator().Generate(units)
	if rules == nil {
		rules = []models.CoordinationRule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	if problems := config.ValidateOrg(cfg); len(problems) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, problems)
		return
	}

	tmp, err := os.MkdirTemp("", "viableos-generate-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.RemoveAll(tmp)

	pkgDir := filepath.Join(tmp, "viableos-openclaw")
	if err := generator.New(s.engine).Generate(cfg, pkgDir); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="viableos-openclaw.zip"`)
	if err := zipDir(w, pkgDir); err != nil {
		// Headers already sent; nothing to do beyond logging at the caller.
		return
	}
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "draft storage not configured")
		return
	}
	drafts, err := s.store.ListDrafts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if drafts == nil {
		drafts = []*state.Draft{}
	}
	writeJSON(w, http.StatusOK, drafts)
}

type saveDraftRequest struct {
	Name       string `json:"name"`
	Template   string `json:"template"`
	ConfigYAML string `json:"config_yaml"`
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "draft storage not configured")
		return
	}
	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.SaveDraft(req.Name, req.Template, req.ConfigYAML)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "draft storage not configured")
		return
	}
	draft, err := s.store.GetDraft(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "draft storage not configured")
		return
	}
	if err := s.store.DeleteDraft(r.PathValue("id")); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// zipDir streams dir as a zip archive with paths relative to dir.
func zipDir(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		f, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(f, src)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

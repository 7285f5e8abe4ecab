// Package catalog holds the static model reference tables consumed by the
// budget allocator and the viability checker: the model catalog itself, the
// strategy preset tables, and the provider substitution tables.
//
// The tables are process-wide but read-only. They are carried by an explicit
// Catalog value injected into the engine rather than package globals, so tests
// can substitute fixtures without mutating shared state.
package catalog

import (
	"sort"
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

// Tier is a model cost/quality tier.
type Tier string

const (
	TierPremium Tier = "premium"
	TierHigh    Tier = "high"
	TierFast    Tier = "fast"
	TierBudget  Tier = "budget"
)

// TierDescriptions maps each tier to a one-line description for UI layers.
var TierDescriptions = map[Tier]string{
	TierPremium: "Premium — best quality, highest cost",
	TierHigh:    "High — strong quality, moderate cost",
	TierFast:    "Fast — good quality, low cost",
	TierBudget:  "Budget — basic quality, minimal cost",
}

// Reliability rates how dependably a model executes long agentic loops.
type Reliability string

const (
	ReliabilityExcellent Reliability = "excellent"
	ReliabilityGood      Reliability = "good"
	ReliabilityFair      Reliability = "fair"
)

// ReliabilityLabels maps ratings to human-facing labels.
var ReliabilityLabels = map[Reliability]string{
	ReliabilityExcellent: "Excellent — proven in long-running agent loops",
	ReliabilityGood:      "Good — reliable with occasional supervision",
	ReliabilityFair:      "Fair — fine for drafts, verify important output",
}

// Model is one entry of the model catalog.
type Model struct {
	// ID is the provider-qualified model identifier, e.g. "anthropic/claude-haiku-4-5".
	ID string `json:"id"`
	// Provider is the vendor family the model belongs to.
	Provider string `json:"provider"`
	// Tier is the model's cost/quality tier.
	Tier Tier `json:"tier"`
	// Note is a one-line description.
	Note string `json:"note"`
	// Reliability rates the model's agent reliability.
	Reliability Reliability `json:"agent_reliability"`
	// Warning is a known-issue note, empty when there is none.
	Warning string `json:"warning,omitempty"`
}

// Catalog bundles the static reference tables. Construct with Default() or
// build a fixture by hand in tests; never mutate after construction.
type Catalog struct {
	models            map[string]Model
	presets           map[models.Strategy]map[string]string
	providerOverrides map[string]map[string]string
	auditFallbacks    map[string]string
	fallbackChains    map[string][]string
	heartbeatModels   map[string]string

	// ViableFloorPerUnit is the minimum monthly dollars per active unit
	// below which no paid-tier model can cover every unit.
	ViableFloorPerUnit float64
}

// Default returns the built-in catalog (February 2026 model generation).
func Default() *Catalog {
	c := &Catalog{
		models:             make(map[string]Model),
		presets:            defaultPresets(),
		providerOverrides:  defaultProviderOverrides(),
		auditFallbacks:     defaultAuditFallbacks(),
		fallbackChains:     defaultFallbackChains(),
		heartbeatModels:    defaultHeartbeatModels(),
		ViableFloorPerUnit: 20,
	}
	for _, m := range defaultModels() {
		c.models[m.ID] = m
	}
	return c
}

func defaultModels() []Model {
	return []Model{
		// Anthropic
		{ID: "anthropic/claude-opus-4-6", Provider: "anthropic", Tier: TierPremium, Note: "Best reasoning + agents", Reliability: ReliabilityExcellent},
		{ID: "anthropic/claude-sonnet-4-6", Provider: "anthropic", Tier: TierHigh, Note: "Best speed/quality balance", Reliability: ReliabilityExcellent},
		{ID: "anthropic/claude-haiku-4-5", Provider: "anthropic", Tier: TierFast, Note: "Fast, cheap, near-frontier", Reliability: ReliabilityGood},
		{ID: "anthropic/claude-opus-4-5", Provider: "anthropic", Tier: TierPremium, Note: "Previous gen top", Reliability: ReliabilityExcellent},
		{ID: "anthropic/claude-sonnet-4-5", Provider: "anthropic", Tier: TierHigh, Note: "Previous gen high", Reliability: ReliabilityGood},
		// OpenAI
		{ID: "openai/gpt-5.3-codex", Provider: "openai", Tier: TierPremium, Note: "Best agentic coding model (Feb 2026)", Reliability: ReliabilityExcellent},
		{ID: "openai/gpt-5.3-codex-spark", Provider: "openai", Tier: TierHigh, Note: "Ultra-fast coding, 1000+ tok/s", Reliability: ReliabilityGood},
		{ID: "openai/gpt-5.2", Provider: "openai", Tier: TierPremium, Note: "Latest flagship", Reliability: ReliabilityExcellent},
		{ID: "openai/gpt-5.1", Provider: "openai", Tier: TierHigh, Note: "Strong all-round", Reliability: ReliabilityGood},
		{ID: "openai/gpt-5.1-codex", Provider: "openai", Tier: TierPremium, Note: "Code-focused", Reliability: ReliabilityGood},
		{ID: "openai/gpt-5-mini", Provider: "openai", Tier: TierFast, Note: "Budget flagship", Reliability: ReliabilityGood},
		{ID: "openai/gpt-5-codex-mini", Provider: "openai", Tier: TierFast, Note: "Budget code model", Reliability: ReliabilityFair,
			Warning: "Known to lose track of multi-step plans in long sessions"},
		{ID: "openai/o3", Provider: "openai", Tier: TierPremium, Note: "Specialized reasoning", Reliability: ReliabilityGood},
		// Google
		{ID: "google/gemini-3-pro", Provider: "google", Tier: TierPremium, Note: "Top-ranked overall", Reliability: ReliabilityExcellent},
		{ID: "google/gemini-3-flash", Provider: "google", Tier: TierHigh, Note: "Fast + capable", Reliability: ReliabilityGood},
		{ID: "google/gemini-2.5-pro", Provider: "google", Tier: TierHigh, Note: "Strong reasoning", Reliability: ReliabilityGood},
		{ID: "google/gemini-2.5-flash", Provider: "google", Tier: TierFast, Note: "Budget, 1M context", Reliability: ReliabilityGood},
		{ID: "google/gemini-2.5-flash-lite", Provider: "google", Tier: TierBudget, Note: "Cheapest Gemini", Reliability: ReliabilityFair,
			Warning: "Drops tool-call arguments under load; not recommended for unattended agents"},
		// DeepSeek
		{ID: "deepseek/deepseek-v3.2", Provider: "deepseek", Tier: TierHigh, Note: "Open source, competitive", Reliability: ReliabilityGood},
		// xAI
		{ID: "xai/grok-4", Provider: "xai", Tier: TierPremium, Note: "256K context, fast", Reliability: ReliabilityGood},
		// Meta
		{ID: "meta/llama-4", Provider: "meta", Tier: TierHigh, Note: "Open source, self-hostable", Reliability: ReliabilityFair,
			Warning: "Self-hosted deployments vary widely; verify tool-calling before production"},
		// Ollama (local)
		{ID: "ollama/llama-4", Provider: "ollama", Tier: TierHigh, Note: "Local Llama 4", Reliability: ReliabilityFair,
			Warning: "Local models depend on hardware; long agent loops may degrade"},
		{ID: "ollama/mistral-large", Provider: "ollama", Tier: TierHigh, Note: "Local Mistral", Reliability: ReliabilityFair},
		{ID: "ollama/deepseek-v3", Provider: "ollama", Tier: TierHigh, Note: "Local DeepSeek", Reliability: ReliabilityFair},
	}
}

func defaultPresets() map[models.Strategy]map[string]string {
	return map[models.Strategy]map[string]string{
		models.StrategyFrugal: {
			models.RouteS1Routine:      "anthropic/claude-haiku-4-5",
			models.RouteS1Complex:      "anthropic/claude-haiku-4-5",
			models.RouteS2Coordination: "anthropic/claude-haiku-4-5",
			models.RouteS3Optimization: "anthropic/claude-haiku-4-5",
			models.RouteS3StarAudit:    "openai/gpt-5-mini",
			models.RouteS4Intelligence: "anthropic/claude-sonnet-4-6",
			models.RouteS5Preparation:  "anthropic/claude-haiku-4-5",
		},
		models.StrategyBalanced: {
			models.RouteS1Routine:      "anthropic/claude-haiku-4-5",
			models.RouteS1Complex:      "anthropic/claude-sonnet-4-6",
			models.RouteS2Coordination: "anthropic/claude-haiku-4-5",
			models.RouteS3Optimization: "anthropic/claude-sonnet-4-6",
			models.RouteS3StarAudit:    "openai/gpt-5.1",
			models.RouteS4Intelligence: "anthropic/claude-opus-4-6",
			models.RouteS5Preparation:  "anthropic/claude-sonnet-4-6",
		},
		models.StrategyPerformance: {
			models.RouteS1Routine:      "anthropic/claude-sonnet-4-6",
			models.RouteS1Complex:      "anthropic/claude-opus-4-6",
			models.RouteS2Coordination: "anthropic/claude-sonnet-4-6",
			models.RouteS3Optimization: "anthropic/claude-opus-4-6",
			models.RouteS3StarAudit:    "openai/gpt-5.2",
			models.RouteS4Intelligence: "google/gemini-3-pro",
			models.RouteS5Preparation:  "anthropic/claude-opus-4-6",
		},
	}
}

func defaultProviderOverrides() map[string]map[string]string {
	return map[string]map[string]string{
		"openai": {
			"anthropic/claude-haiku-4-5":  "openai/gpt-5-mini",
			"anthropic/claude-sonnet-4-6": "openai/gpt-5.1",
			"anthropic/claude-opus-4-6":   "openai/gpt-5.2",
		},
		"google": {
			"anthropic/claude-haiku-4-5":  "google/gemini-2.5-flash",
			"anthropic/claude-sonnet-4-6": "google/gemini-3-flash",
			"anthropic/claude-opus-4-6":   "google/gemini-3-pro",
			"openai/gpt-5-mini":           "google/gemini-2.5-flash",
			"openai/gpt-5.1":              "google/gemini-3-flash",
			"openai/gpt-5.2":              "google/gemini-3-pro",
		},
		"deepseek": {
			"anthropic/claude-haiku-4-5":  "deepseek/deepseek-v3.2",
			"anthropic/claude-sonnet-4-6": "deepseek/deepseek-v3.2",
			"anthropic/claude-opus-4-6":   "deepseek/deepseek-v3.2",
		},
		"xai": {
			"anthropic/claude-haiku-4-5":  "xai/grok-4",
			"anthropic/claude-sonnet-4-6": "xai/grok-4",
			"anthropic/claude-opus-4-6":   "xai/grok-4",
		},
		"meta": {
			"anthropic/claude-haiku-4-5":  "meta/llama-4",
			"anthropic/claude-sonnet-4-6": "meta/llama-4",
			"anthropic/claude-opus-4-6":   "meta/llama-4",
		},
		"ollama": {
			"anthropic/claude-haiku-4-5":  "ollama/llama-4",
			"anthropic/claude-sonnet-4-6": "ollama/llama-4",
			"anthropic/claude-opus-4-6":   "ollama/llama-4",
			"openai/gpt-5-mini":           "ollama/llama-4",
			"openai/gpt-5.1":              "ollama/mistral-large",
			"openai/gpt-5.2":              "ollama/deepseek-v3",
		},
	}
}

// defaultAuditFallbacks maps the default S1 provider to the auditor model
// substituted when the strategy table's auditor would share that provider.
func defaultAuditFallbacks() map[string]string {
	return map[string]string{
		"anthropic": "openai/gpt-5.1",
		"openai":    "anthropic/claude-sonnet-4-6",
		"google":    "anthropic/claude-sonnet-4-6",
	}
}

func defaultFallbackChains() map[string][]string {
	return map[string][]string{
		"anthropic/claude-opus-4-6":   {"anthropic/claude-sonnet-4-6", "anthropic/claude-haiku-4-5"},
		"anthropic/claude-sonnet-4-6": {"anthropic/claude-haiku-4-5"},
		"openai/gpt-5.2":              {"openai/gpt-5.1", "openai/gpt-5-mini"},
		"openai/gpt-5.1":              {"openai/gpt-5-mini"},
		"google/gemini-3-pro":         {"google/gemini-3-flash", "google/gemini-2.5-flash"},
		"google/gemini-3-flash":       {"google/gemini-2.5-flash"},
	}
}

func defaultHeartbeatModels() map[string]string {
	return map[string]string{
		"anthropic": "anthropic/claude-haiku-4-5",
		"openai":    "openai/gpt-5-mini",
		"google":    "google/gemini-2.5-flash",
	}
}

// Lookup returns the catalog entry for a model id.
func (c *Catalog) Lookup(id string) (Model, bool) {
	m, ok := c.models[id]
	return m, ok
}

// Provider returns the provider family encoded in a model id. Ids without a
// provider prefix return the id itself.
func (c *Catalog) Provider(id string) string {
	if m, ok := c.models[id]; ok {
		return m.Provider
	}
	if i := strings.IndexByte(id, '/'); i > 0 {
		return id[:i]
	}
	return id
}

// AllModels returns every catalog model id, sorted.
func (c *Catalog) AllModels() []string {
	ids := make([]string, 0, len(c.models))
	for id := range c.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ModelsForProvider returns the sorted model ids for one provider family.
// The pseudo-provider "mixed" returns everything.
func (c *Catalog) ModelsForProvider(provider string) []string {
	if provider == "mixed" {
		return c.AllModels()
	}
	var ids []string
	for id, m := range c.models {
		if m.Provider == provider {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Preset returns the strategy's routing slot table. Unknown strategies fall
// back to balanced.
func (c *Catalog) Preset(strategy models.Strategy) map[string]string {
	if p, ok := c.presets[strategy]; ok {
		return p
	}
	return c.presets[models.StrategyBalanced]
}

// ApplyProviderPreference swaps a default model id for the preferred
// provider's equivalent, when the substitution table has one.
func (c *Catalog) ApplyProviderPreference(model, provider string) string {
	if table, ok := c.providerOverrides[provider]; ok {
		if swapped, ok := table[model]; ok {
			return swapped
		}
	}
	return model
}

// AuditFallback returns the auditor model to substitute when the default
// auditor would share the given S1 provider.
func (c *Catalog) AuditFallback(s1Provider string) string {
	if m, ok := c.auditFallbacks[s1Provider]; ok {
		return m
	}
	return "openai/gpt-5.1"
}

// FallbackChain returns the ordered degradation chain for a model, or nil.
func (c *Catalog) FallbackChain(model string) []string {
	chain := c.fallbackChains[model]
	if len(chain) == 0 {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}

// HeartbeatModel returns the cheap model used for heartbeat polling by agents
// running the given model. Falls back to the model itself when the provider
// has no designated heartbeat model.
func (c *Catalog) HeartbeatModel(model string) string {
	if hb, ok := c.heartbeatModels[c.Provider(model)]; ok {
		return hb
	}
	return model
}

// ViableFloor returns the minimum monthly budget for the given number of
// active units.
func (c *Catalog) ViableFloor(unitCount int) float64 {
	if unitCount < 1 {
		unitCount = 1
	}
	return c.ViableFloorPerUnit * float64(unitCount)
}

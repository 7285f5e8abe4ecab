package templates

// Preset lists backing pick-lists in the wizard and the HTTP API. Presets are
// suggestions only; nothing in the engine requires a value to come from here.

// ValuePresets are common organization values for the identity block.
var ValuePresets = []string{
	"quality over speed",
	"customer trust first",
	"transparency by default",
	"sustainable pace",
	"ship small, ship often",
	"privacy matters",
	"measure before optimizing",
}

// NeverDoPresets are common hard boundaries for the identity block.
var NeverDoPresets = []string{
	"spend money without approval",
	"delete data without approval",
	"contact customers without review",
	"publish publicly without review",
	"commit secrets or credentials",
	"make legal or medical claims",
}

// AutonomyLevel describes one autonomy level for display.
type AutonomyLevel struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AutonomyLevels lists the three levels from most to least restricted.
var AutonomyLevels = []AutonomyLevel{
	{Key: "suggest", Name: "Suggest Only", Description: "Drafts proposals; a human approves every action"},
	{Key: "supervised", Name: "Supervised", Description: "Acts on routine work; destructive steps need approval"},
	{Key: "full", Name: "Full Autonomy", Description: "Acts without per-action approval; pair with audit checks"},
}

// ToolCategory groups tool scopes for the unit editor.
type ToolCategory struct {
	Name  string   `json:"name"`
	Tools []string `json:"tools"`
}

// ToolCategories lists common tool scopes by area.
var ToolCategories = []ToolCategory{
	{Name: "Communication", Tools: []string{"email", "social", "forum", "support-inbox"}},
	{Name: "Development", Tools: []string{"github", "ci", "deployment", "docker"}},
	{Name: "Business", Tools: []string{"crm", "billing", "orders", "inventory", "ads"}},
	{Name: "Research & Docs", Tools: []string{"web-research", "docs", "notes", "spreadsheets", "analytics"}},
	{Name: "Operations", Tools: []string{"monitoring", "calendar", "database", "ssh"}},
}

// ApprovalPresets are actions commonly gated behind human approval.
var ApprovalPresets = []string{
	"spending above threshold",
	"external communication",
	"production deployment",
	"data deletion",
	"new tool access",
}

// NotificationChannels lists supported human-in-the-loop channels.
var NotificationChannels = []string{"email", "slack", "discord", "sms", "webhook"}

// PersistenceStrategies lists supported agent state persistence modes.
var PersistenceStrategies = []string{"none", "files", "sqlite", "git"}

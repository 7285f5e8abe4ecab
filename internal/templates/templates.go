// Package templates holds the static organization template catalog and the
// wizard preset lists. Templates produce complete starter Configs; presets
// feed pick-lists in the wizard and dashboard.
package templates

import (
	"sort"

	"github.com/viableos/viableos/pkg/models"
)

// Template describes one organization template.
type Template struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Units       int    `json:"units"`
}

type templateDef struct {
	info    Template
	purpose string
	neverDo []string
	units   []models.S1Unit
}

var defs = map[string]templateDef{
	"custom": {
		info: Template{
			Key: "custom", Name: "Start from Scratch",
			Tagline:     "Build your own organization from zero",
			Description: "Define your own units, values, and structure",
		},
		purpose: "",
	},
	"saas-startup": {
		info: Template{
			Key: "saas-startup", Name: "SaaS Startup",
			Tagline:     "Build, ship, and sell software",
			Description: "Product Development, Operations, Go-to-Market",
			Units:       3,
		},
		purpose: "Build and grow a software product customers love",
		neverDo: []string{"deploy to production without approval", "delete customer data", "commit secrets"},
		units: []models.S1Unit{
			{Name: "Product Development", Purpose: "Build and improve the product", Autonomy: models.AutonomySupervised, Tools: []string{"github", "ci", "docs"}},
			{Name: "Operations", Purpose: "Keep the service running and customers supported", Autonomy: models.AutonomySupervised, Tools: []string{"monitoring", "support-inbox"}},
			{Name: "Go-to-Market", Purpose: "Find, convert, and retain customers", Autonomy: models.AutonomySuggest, Tools: []string{"email", "social", "analytics"}},
		},
	},
	"ecommerce": {
		info: Template{
			Key: "ecommerce", Name: "E-Commerce",
			Tagline:     "Source, sell, ship, support",
			Description: "Sourcing, Store, Fulfillment, Customer Service",
			Units:       4,
		},
		purpose: "Run a profitable online store with happy customers",
		neverDo: []string{"change prices without approval", "contact suppliers without review", "refund above limit"},
		units: []models.S1Unit{
			{Name: "Sourcing", Purpose: "Find and evaluate products and suppliers", Autonomy: models.AutonomySuggest, Tools: []string{"web-research", "spreadsheets"}},
			{Name: "Store", Purpose: "Maintain listings, pricing, and website content", Autonomy: models.AutonomySupervised, Tools: []string{"website", "catalog"}},
			{Name: "Fulfillment", Purpose: "Track orders, shipping, and inventory", Autonomy: models.AutonomySupervised, Tools: []string{"orders", "inventory"}},
			{Name: "Customer Service", Purpose: "Answer customer questions and resolve issues", Autonomy: models.AutonomySupervised, Tools: []string{"support-inbox", "faq"}},
		},
	},
	"freelance-agency": {
		info: Template{
			Key: "freelance-agency", Name: "Freelance / Agency",
			Tagline:     "Find clients, deliver, grow",
			Description: "Client Acquisition, Project Delivery, Knowledge",
			Units:       3,
		},
		purpose: "Win good clients and deliver work that brings them back",
		neverDo: []string{"send proposals without review", "share client work publicly"},
		units: []models.S1Unit{
			{Name: "Client Acquisition", Purpose: "Find leads and draft proposals", Autonomy: models.AutonomySuggest, Tools: []string{"email", "crm", "web-research"}},
			{Name: "Project Delivery", Purpose: "Execute client projects to spec", Autonomy: models.AutonomySupervised, Tools: []string{"github", "docs"}},
			{Name: "Knowledge", Purpose: "Capture reusable assets and lessons", Autonomy: models.AutonomyFull, Tools: []string{"docs", "notes"}},
		},
	},
	"content-creator": {
		info: Template{
			Key: "content-creator", Name: "Content Creator",
			Tagline:     "Create, distribute, monetize",
			Description: "Content Production, Community, Monetization",
			Units:       3,
		},
		purpose: "Publish content people seek out and build a durable audience",
		neverDo: []string{"publish without review", "reply to controversy without approval"},
		units: []models.S1Unit{
			{Name: "Content Production", Purpose: "Draft, edit, and schedule content", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "media"}},
			{Name: "Community", Purpose: "Engage the audience across social channels", Autonomy: models.AutonomySuggest, Tools: []string{"social", "email"}},
			{Name: "Monetization", Purpose: "Manage sponsorships and product sales", Autonomy: models.AutonomySuggest, Tools: []string{"email", "billing"}},
		},
	},
	"personal-productivity": {
		info: Template{
			Key: "personal-productivity", Name: "Personal Productivity",
			Tagline:     "Focus on what matters",
			Description: "Deep Work, Admin, Learning",
			Units:       3,
		},
		purpose: "Protect focus time and keep life admin from piling up",
		neverDo: []string{"send messages on my behalf without approval", "book anything that costs money"},
		units: []models.S1Unit{
			{Name: "Deep Work", Purpose: "Prepare materials and research for focused sessions", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "web-research"}},
			{Name: "Admin", Purpose: "Triage email, calendar, and paperwork", Autonomy: models.AutonomySuggest, Tools: []string{"email", "calendar"}},
			{Name: "Learning", Purpose: "Summarize and organize learning material", Autonomy: models.AutonomyFull, Tools: []string{"notes", "web-research"}},
		},
	},
	"marketing-agency": {
		info: Template{
			Key: "marketing-agency", Name: "Marketing Agency",
			Tagline:     "Strategy, campaigns, results",
			Description: "Strategy, Creative, Performance, Client Relations",
			Units:       4,
		},
		purpose: "Run campaigns that measurably grow client businesses",
		neverDo: []string{"launch campaigns without approval", "spend ad budget without sign-off"},
		units: []models.S1Unit{
			{Name: "Strategy", Purpose: "Research markets and plan campaigns", Autonomy: models.AutonomySuggest, Tools: []string{"web-research", "analytics"}},
			{Name: "Creative", Purpose: "Produce ad copy and creative assets", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "media"}},
			{Name: "Performance", Purpose: "Monitor and optimize running campaigns", Autonomy: models.AutonomySupervised, Tools: []string{"analytics", "ads"}},
			{Name: "Client Relations", Purpose: "Report results and manage client communication", Autonomy: models.AutonomySuggest, Tools: []string{"email", "docs"}},
		},
	},
	"consulting": {
		info: Template{
			Key: "consulting", Name: "Consulting Firm",
			Tagline:     "Advise, deliver, scale",
			Description: "Business Development, Engagement Delivery, Knowledge & IP",
			Units:       3,
		},
		purpose: "Deliver advice clients act on and come back for",
		neverDo: []string{"share client data across engagements", "quote prices without approval"},
		units: []models.S1Unit{
			{Name: "Business Development", Purpose: "Find and qualify engagement opportunities", Autonomy: models.AutonomySuggest, Tools: []string{"crm", "email"}},
			{Name: "Engagement Delivery", Purpose: "Research, analyze, and draft deliverables", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "data", "spreadsheets"}},
			{Name: "Knowledge & IP", Purpose: "Turn engagement output into reusable IP", Autonomy: models.AutonomyFull, Tools: []string{"docs", "notes"}},
		},
	},
	"law-firm": {
		info: Template{
			Key: "law-firm", Name: "Law Firm",
			Tagline:     "Research, advise, represent",
			Description: "Case Management, Legal Research, Client Relations",
			Units:       3,
		},
		purpose: "Give clients timely, well-researched legal support",
		neverDo: []string{"give legal advice without attorney review", "file anything with a court", "share privileged material"},
		units: []models.S1Unit{
			{Name: "Case Management", Purpose: "Track deadlines, documents, and case status", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "calendar"}},
			{Name: "Legal Research", Purpose: "Research precedent and draft memos", Autonomy: models.AutonomySuggest, Tools: []string{"legal-research", "docs"}},
			{Name: "Client Relations", Purpose: "Handle intake and client communication", Autonomy: models.AutonomySuggest, Tools: []string{"email", "crm"}},
		},
	},
	"accounting": {
		info: Template{
			Key: "accounting", Name: "Accounting Firm",
			Tagline:     "Count, comply, advise",
			Description: "Bookkeeping, Tax & Compliance, Advisory",
			Units:       3,
		},
		purpose: "Keep clients' books clean and their filings on time",
		neverDo: []string{"file returns without review", "move client money", "guess at tax positions"},
		units: []models.S1Unit{
			{Name: "Bookkeeping", Purpose: "Categorize transactions and reconcile accounts", Autonomy: models.AutonomySupervised, Tools: []string{"ledger", "spreadsheets"}},
			{Name: "Tax & Compliance", Purpose: "Prepare filings and track deadlines", Autonomy: models.AutonomySuggest, Tools: []string{"tax-software", "calendar"}},
			{Name: "Advisory", Purpose: "Draft financial analysis and recommendations", Autonomy: models.AutonomySuggest, Tools: []string{"spreadsheets", "docs"}},
		},
	},
	"education": {
		info: Template{
			Key: "education", Name: "Online Education",
			Tagline:     "Teach, support, grow",
			Description: "Course Development, Student Success, Growth",
			Units:       3,
		},
		purpose: "Teach courses students finish and recommend",
		neverDo: []string{"change grades", "message students without review"},
		units: []models.S1Unit{
			{Name: "Course Development", Purpose: "Draft lessons, exercises, and updates", Autonomy: models.AutonomySupervised, Tools: []string{"docs", "media"}},
			{Name: "Student Success", Purpose: "Answer questions and track progress", Autonomy: models.AutonomySupervised, Tools: []string{"forum", "email"}},
			{Name: "Growth", Purpose: "Market courses and analyze funnels", Autonomy: models.AutonomySuggest, Tools: []string{"social", "analytics", "email"}},
		},
	},
	"restaurant": {
		info: Template{
			Key: "restaurant", Name: "Restaurant / Hospitality",
			Tagline:     "Cook, serve, grow",
			Description: "Kitchen, Front-of-House, Marketing & Reservations",
			Units:       3,
		},
		purpose: "Fill tables and send every guest home happy",
		neverDo: []string{"change menu prices without approval", "respond to reviews without review"},
		units: []models.S1Unit{
			{Name: "Kitchen", Purpose: "Plan menus, prep lists, and inventory orders", Autonomy: models.AutonomySupervised, Tools: []string{"inventory", "suppliers"}},
			{Name: "Front-of-House", Purpose: "Manage reservations and guest communication", Autonomy: models.AutonomySupervised, Tools: []string{"reservations", "email"}},
			{Name: "Marketing & Reservations", Purpose: "Promote the restaurant and fill slow nights", Autonomy: models.AutonomySuggest, Tools: []string{"social", "email", "website"}},
		},
	},
}

// All returns every template descriptor sorted by key, "custom" first.
func All() []Template {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		if k != "custom" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]Template, 0, len(defs))
	out = append(out, defs["custom"].info)
	for _, k := range keys {
		out = append(out, defs[k].info)
	}
	return out
}

// Get returns the descriptor for a template key.
func Get(key string) (Template, bool) {
	def, ok := defs[key]
	return def.info, ok
}

// Build constructs a complete starter Config for a template key. The monthly
// budget and strategy come from the caller (typically tool settings).
func Build(key string, monthlyUSD float64, strategy models.Strategy) (*models.Config, bool) {
	def, ok := defs[key]
	if !ok {
		return nil, false
	}

	units := make([]models.S1Unit, len(def.units))
	copy(units, def.units)

	// The "custom" descriptor's name is a UI label, not an organization name.
	name := def.info.Name
	if key == "custom" {
		name = ""
	}

	return &models.Config{
		ViableSystem: models.ViableSystem{
			Name: name,
			Identity: models.Identity{
				Purpose: def.purpose,
				NeverDo: append([]string{}, def.neverDo...),
			},
			System1: units,
			System3: &models.System3{ReportingRhythm: "weekly"},
			System3Star: &models.System3Star{
				Schedule: "weekly",
				Checks: []models.AuditCheck{
					{Name: "Output spot-check", Target: "all units", Method: "sample recent work against the unit purpose", OnFailure: "notify"},
				},
			},
			Budget: models.Budget{
				MonthlyUSD: monthlyUSD,
				Strategy:   strategy,
				Alerts:     &models.BudgetAlerts{WarnAtPercent: 80, AutoDowngradeAtPercent: 95},
			},
		},
	}, true
}

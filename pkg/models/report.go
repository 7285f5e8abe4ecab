package models

// Severity classifies a pathology warning.
type Severity string

const (
	// SeverityInfo flags a gap worth knowing about.
	SeverityInfo Severity = "info"
	// SeverityWarning flags a likely operational problem.
	SeverityWarning Severity = "warning"
	// SeverityCritical flags a blocker-style risk that must surface even
	// when the viability score is high.
	SeverityCritical Severity = "critical"
)

// Valid returns true if the severity is a known value.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

// CheckResult is the outcome of one VSM presence check.
type CheckResult struct {
	// System is the VSM system key ("S1" .. "S5", "S3*").
	System string `json:"system"`
	// Name is the system's friendly name ("Operations", "Audit", ...).
	Name string `json:"name"`
	// Present reports whether the system is configured.
	Present bool `json:"present"`
	// Details describes what was (or wasn't) found.
	Details string `json:"details"`
	// Suggestions lists remediation hints; empty when present.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Warning is an independent pathology signal. Warnings and the numeric score
// are never conflated into one combined verdict.
type Warning struct {
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ViabilityReport scores a Config against the six-function viable system
// model and lists pathology warnings.
type ViabilityReport struct {
	// Score is the count of present systems, 0..Total.
	Score int `json:"score"`
	// Total is always 6.
	Total int `json:"total"`
	// Checks has exactly 6 entries in the fixed order S1,S2,S3,S3*,S4,S5.
	Checks []CheckResult `json:"checks"`
	// Warnings lists pathology signals, independent of the checks.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Critical returns the report's critical warnings.
func (r *ViabilityReport) Critical() []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Severity == SeverityCritical {
			out = append(out, w)
		}
	}
	return out
}

// Package coordination derives default System 2 rules from the operational
// unit list: anti-looping bounds, workspace isolation, and cross-unit
// validation for units whose domains plausibly overlap.
package coordination

import (
	"fmt"
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

// repeatLimit is how many identical actions a unit may take without new
// input before it must escalate.
const repeatLimit = 3

// Generator derives coordination rules from S1 units. It is deterministic:
// the same unit list always yields the same rules in the same order.
type Generator struct {
	matcher Matcher
}

// NewGenerator creates a Generator with the default keyword matcher.
func NewGenerator() *Generator {
	return &Generator{matcher: NewKeywordMatcher()}
}

// NewGeneratorWithMatcher creates a Generator using a custom overlap matcher.
func NewGeneratorWithMatcher(m Matcher) *Generator {
	return &Generator{matcher: m}
}

// Generate derives the default rule set from the unit list alone. Rules come
// out in a fixed order: global baseline rules, one anti-looping and one
// workspace isolation rule per unit, then cross-unit validation rules for
// overlapping domains (ordered by unit declaration).
//
// Callers append these after any user-authored rules; generated rules are
// never deduplicated against them.
func (g *Generator) Generate(units []models.S1Unit) []models.CoordinationRule {
	if len(units) == 0 {
		return nil
	}

	var rules []models.CoordinationRule

	rules = append(rules,
		models.CoordinationRule{
			Trigger: "Agent-to-agent communication needed",
			Action:  "Route through the Coordinator using structured JSON — no direct free-text conversation between agents",
		},
		models.CoordinationRule{
			Trigger: "Agent conversation exceeds 7 turns without resolution",
			Action:  "Summarize context, refresh identity from SOUL.md, start a new session",
		},
		models.CoordinationRule{
			Trigger: "Agent session history exceeds 10k tokens",
			Action:  "Summarize and compact history — do not let context grow unbounded",
		},
	)

	for _, unit := range units {
		rules = append(rules, models.CoordinationRule{
			Trigger: fmt.Sprintf("%s repeats the same action more than %d times without new input", unit.Name, repeatLimit),
			Action:  "Stop execution, log the loop, and escalate to the Coordinator",
			Scope:   unit.Name,
		})
	}

	for _, unit := range units {
		rules = append(rules, models.CoordinationRule{
			Trigger: fmt.Sprintf("%s attempts to write inside another unit's tool scope or workspace", unit.Name),
			Action:  "Block the action and request access via the Coordinator — direct cross-workspace writes are forbidden",
			Scope:   unit.Name,
		})
	}

	for i, first := range units {
		for j, second := range units {
			if i == j {
				continue
			}
			keyword, ok := g.matcher.Overlap(first, second)
			if !ok {
				continue
			}
			rules = append(rules, models.CoordinationRule{
				Trigger: fmt.Sprintf("%s produces work touching %q, which overlaps %s's domain", first.Name, keyword, second.Name),
				Action:  fmt.Sprintf("%s validates with %s before publishing or committing", first.Name, second.Name),
				Scope:   first.Name,
			})
		}
	}

	return rules
}

// Merge combines generated rules with user-authored rules: user rules keep
// precedence and come first, and a generated rule whose trigger is covered by
// a user rule's trigger is dropped. Used by the package generator; the engine
// path concatenates without deduplication.
func Merge(generated, manual []models.CoordinationRule) []models.CoordinationRule {
	merged := make([]models.CoordinationRule, len(manual))
	copy(merged, manual)

	for _, rule := range generated {
		trigger := strings.ToLower(rule.Trigger)
		covered := false
		for _, m := range manual {
			mt := strings.ToLower(m.Trigger)
			if mt != "" && (strings.Contains(trigger, mt) || strings.Contains(mt, trigger)) {
				covered = true
				break
			}
		}
		if !covered {
			merged = append(merged, rule)
		}
	}

	return merged
}

package coordination

import (
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

// Matcher decides whether two units' domains plausibly overlap. It exists as
// an interface so the matching strategy can be swapped without touching the
// rule-assembly logic; the default is a keyword table and is best-effort, not
// a correctness guarantee.
type Matcher interface {
	// Overlap reports whether first's work plausibly touches second's
	// domain, returning the shared keyword when it does.
	Overlap(first, second models.S1Unit) (keyword string, ok bool)
}

// defaultOverlapKeywords are domain nouns that commonly span unit boundaries.
var defaultOverlapKeywords = []string{
	"website",
	"billing",
	"customer",
	"deploy",
	"content",
	"data",
	"email",
	"social",
	"marketing",
	"sales",
}

// KeywordMatcher matches units whose purpose or tool text share a keyword.
type KeywordMatcher struct {
	keywords []string
}

// NewKeywordMatcher creates a KeywordMatcher with the default keyword table.
func NewKeywordMatcher(keywords ...string) *KeywordMatcher {
	if len(keywords) == 0 {
		keywords = defaultOverlapKeywords
	}
	return &KeywordMatcher{keywords: append([]string{}, keywords...)}
}

// Overlap returns the first keyword (in table order) present in both units'
// text, matching case-insensitively against purpose and declared tools.
func (m *KeywordMatcher) Overlap(first, second models.S1Unit) (string, bool) {
	a := unitText(first)
	b := unitText(second)
	for _, kw := range m.keywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			return kw, true
		}
	}
	return "", false
}

func unitText(u models.S1Unit) string {
	parts := append([]string{u.Purpose}, u.Tools...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Package classify implements the individual field-extraction phases of the
// classification engine: document-type scoring, issuer detection, date
// extraction, and account identifier extraction. Every function here is a
// pure function of the document text and the compiled rule set.
package classify

import (
	"strings"

	"github.com/markma27/pdfsaver/internal/rules"
)

// Score tiers for document-type matching. A full must-keyword match is a
// strong signal; partial must matches and hint-only matches sit in lower
// tiers, and each hint adds a small boost on top.
const (
	scoreAllMust  = 80
	scoreSomeMust = 50
	scoreHintOnly = 30
	scorePerHint  = 5
)

// ScoreTypes scores every document type in the rule set against the text
// and returns the winning type name with its confidence. Types are scored
// in rule order and ties keep the earliest entry, so rule order is the
// tie-break order. An empty text or a text matching nothing returns
// ("", 0).
func ScoreTypes(text string, rs *rules.Compiled) (string, int) {
	if strings.TrimSpace(text) == "" || rs == nil {
		return "", 0
	}

	upper := strings.ToUpper(text)
	present := rs.Keywords.Scan(upper)

	bestType := ""
	bestScore := 0
	for _, tr := range rs.Types {
		score := scoreType(tr, present)
		if score > bestScore {
			bestType = tr.Type
			bestScore = score
		}
	}
	return bestType, bestScore
}

// scoreType computes one type's score from the set of keywords present in
// the document.
func scoreType(tr rules.CompiledTypeRule, present map[string]bool) int {
	for _, kw := range tr.Exclude {
		if present[kw] {
			return 0
		}
	}

	if len(tr.RequireAny) > 0 && countMatches(tr.RequireAny, present) == 0 {
		return 0
	}

	mustMatches := countMatches(tr.Must, present)
	hintMatches := countMatches(tr.Hints, present)

	switch {
	case len(tr.Must) > 0 && mustMatches == len(tr.Must):
		return scoreAllMust + scorePerHint*hintMatches
	case mustMatches > 0:
		return scoreSomeMust + scorePerHint*hintMatches
	case hintMatches > 0:
		return scoreHintOnly + scorePerHint*hintMatches
	default:
		return 0
	}
}

func countMatches(keywords []string, present map[string]bool) int {
	n := 0
	for _, kw := range keywords {
		if present[kw] {
			n++
		}
	}
	return n
}

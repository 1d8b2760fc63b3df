package classify

import (
	"regexp"
	"strings"
	"time"

	"github.com/markma27/pdfsaver/internal/rules"
)

// isoDate is the canonical output layout for every extracted date.
const isoDate = "2006-01-02"

// dateShapes are the three recognized date shapes, in precedence order:
// numeric day-first, numeric year-first, then textual day-month-year.
// Two-digit years match the first shape but no parse format accepts them,
// so they are always discarded.
var dateShapes = []string{
	`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`,
	`\d{4}[/-]\d{1,2}[/-]\d{1,2}`,
	`\d{1,2}\s+[A-Za-z]+\s+\d{4}`,
}

// genericShapes are the dateShapes anchored on word boundaries for
// free-scanning the whole text, compiled once.
var genericShapes = func() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(dateShapes))
	for i, shape := range dateShapes {
		compiled[i] = regexp.MustCompile(`\b(` + shape + `)\b`)
	}
	return compiled
}()

// dateFormats is the fixed parse-format list, tried in order against each
// candidate substring. Ambiguous numeric dates such as 03/04/2025 resolve
// by this order, not by locale inference; that is a documented heuristic.
var dateFormats = []string{
	"2006-1-2",        // ISO
	"2-1-2006",        // DD-MM-YYYY
	"1/2/2006",        // MM/DD/YYYY
	"2/1/2006",        // DD/MM/YYYY
	"2 January 2006",  // D MMMM YYYY
	"02 January 2006", // DD MMMM YYYY
	"2 Jan 2006",      // D MMM YYYY
	"02 Jan 2006",     // DD MMM YYYY
}

// genericPriorities is the labeled-phase fallback when no rule set is
// available; it matches PrioritiesFor's fallback for an unlisted type.
var genericPriorities = []string{"Date"}

// ExtractDate finds the most contextually relevant date in the text and
// returns it in YYYY-MM-DD form, or "" when nothing parses.
//
// When the document type is known, its configured date-label priority list
// drives a labeled search first ("Payment Date: 15 March 2025" style); the
// first label whose following substring parses as a date wins. When no
// label yields a date, or the type is unknown, the whole text is scanned
// with the same date shapes and the first parseable match wins.
func ExtractDate(text, docType string, rs *rules.Compiled) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if docType != "" {
		priorities := genericPriorities
		if rs != nil {
			priorities = rs.PrioritiesFor(docType)
		}
		for _, label := range priorities {
			if date := extractLabeledDate(text, label); date != "" {
				return date
			}
		}
	}

	return extractGenericDate(text)
}

// extractLabeledDate searches for label immediately followed by a date
// shape, trying the shapes in precedence order. Candidates that match a
// shape but fail to parse are discarded.
func extractLabeledDate(text, label string) string {
	for _, shape := range dateShapes {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `[:\s]+(` + shape + `)`)
		if err != nil {
			continue
		}
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if date := parseDate(match[1]); date != "" {
				return date
			}
		}
	}
	return ""
}

// extractGenericDate scans the whole text for anything date-shaped and
// returns the first candidate that parses.
func extractGenericDate(text string) string {
	for _, re := range genericShapes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if date := parseDate(match[1]); date != "" {
				return date
			}
		}
	}
	return ""
}

// parseDate parses a candidate substring against the fixed format list and
// normalizes the result to YYYY-MM-DD. Parsing is strict: an invalid
// calendar date (31/02/2025) fails every format and returns "".
func parseDate(candidate string) string {
	candidate = strings.Join(strings.Fields(candidate), " ")
	if candidate == "" {
		return ""
	}
	for _, format := range dateFormats {
		t, err := time.Parse(format, candidate)
		if err == nil {
			return t.Format(isoDate)
		}
	}
	return ""
}

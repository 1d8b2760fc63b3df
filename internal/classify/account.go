package classify

import (
	"regexp"
	"strings"

	"github.com/markma27/pdfsaver/internal/rules"
)

// nonAlphanumeric strips separator characters out of captured identifiers.
var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// ExtractAccountLast4 finds an account-like identifier in the text and
// returns its last four characters, uppercased. The rule set's account
// patterns are tried in order; the first capture that still has at least
// four characters after stripping separators wins. No match returns "".
func ExtractAccountLast4(text string, rs *rules.Compiled) string {
	if text == "" || rs == nil {
		return ""
	}

	for _, re := range rs.AccountPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil || len(match) < 2 || match[1] == "" {
			continue
		}
		cleaned := nonAlphanumeric.ReplaceAllString(match[1], "")
		if len(cleaned) >= 4 {
			return strings.ToUpper(cleaned[len(cleaned)-4:])
		}
	}
	return ""
}

// asxCodePattern matches a labeled ASX ticker code.
var asxCodePattern = regexp.MustCompile(`(?i)\b(?:ASX\s+Code|Code)[:\s]+([A-Z]{3,6})\b`)

// ExtractASXCode finds a labeled ASX ticker code in the text, uppercased,
// or "" when none is present.
func ExtractASXCode(text string) string {
	match := asxCodePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.ToUpper(match[1])
}

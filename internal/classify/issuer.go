package classify

import (
	"regexp"
	"strings"

	"github.com/markma27/pdfsaver/internal/rules"
)

// DetectIssuer returns the canonical issuer named in the text, or "" when
// no configured issuer matches. Aliases are checked before the canonical
// list so a suffixed variant like "Computershare Limited" always resolves
// to its normalized form; matching is case-insensitive substring
// containment, first match wins.
func DetectIssuer(text string, rs *rules.Compiled) string {
	if text == "" || rs == nil {
		return ""
	}

	upper := strings.ToUpper(text)
	for _, alias := range rs.Aliases {
		if strings.Contains(upper, strings.ToUpper(alias.Alias)) {
			return alias.Canonical
		}
	}
	for _, issuer := range rs.Issuers {
		if strings.Contains(upper, strings.ToUpper(issuer)) {
			return issuer
		}
	}
	return ""
}

// securityNamePatterns match the traded security's name on contract notes,
// where the document rarely names a registry the issuer list would catch.
// Tried in order, first match wins.
var securityNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Security\s+Description|Investment|Security|Code)[:\s]+([A-Z][A-Za-z0-9\s&.,()-]+?)(?:\n|$|Security|Investment|Code|Consideration|Brokerage|Trade)`),
	regexp.MustCompile(`(?i)(?:We\s+have\s+(?:bought|sold))[:\s]+([A-Z][A-Za-z0-9\s&.,()-]+?)(?:\n|$|Security|Investment|Code|Consideration|Brokerage)`),
	regexp.MustCompile(`(?i)(?:Description|Name)[:\s]+([A-Z][A-Za-z0-9\s&.,()-]{5,}?)(?:\n|$|Security|Investment|Code|Consideration|Brokerage|Trade)`),
	regexp.MustCompile(`(?i)\b([A-Z][A-Za-z0-9\s&.,()-]{10,}?(?:Ltd|Limited|Trust|Group|Corporation|Corp|Company|Co|Holdings|Pty\s+Ltd))(?:\s+FRN|\s+Callable|\s+Matures|$|\n)`),
}

var (
	securityTrailingClause = regexp.MustCompile(`(?i)\s+(?:FRN|Callable|Matures|on|at)\b.*$`)
	securityParenthetical  = regexp.MustCompile(`\s+\([^)]*\)`)
	securityLeadingLabel   = regexp.MustCompile(`(?i)^(?:Security\s+Description|Investment|Security|Code)[:\s]+`)
)

// ExtractSecurityName finds the traded security name in a contract note.
// It is an issuer-like fallback used only when merging with an external
// field source; the core classification flow never calls it.
func ExtractSecurityName(text string) string {
	for _, re := range securityNamePatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		name = securityTrailingClause.ReplaceAllString(name, "")
		name = securityParenthetical.ReplaceAllString(name, "")
		name = securityLeadingLabel.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)
		if len(name) <= 5 {
			continue
		}
		switch strings.ToUpper(name) {
		case "UNKNOWN", "N/A", "NONE":
			continue
		}
		return name
	}
	return ""
}

// Package filename turns detected document fields into a canonical
// filename. Synthesis is deterministic and total: the same fields always
// produce the same name, and missing fields render as placeholders rather
// than errors.
package filename

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/model"
)

// Policy selects a filename convention.
type Policy string

const (
	// PolicyTitleCase is the current convention: TitleCase segments with
	// no separators inside them, account identifier omitted.
	PolicyTitleCase Policy = "titlecase"
	// PolicySlug is the legacy convention: lowercase kebab-case segments
	// with the account last-4 appended when present.
	PolicySlug Policy = "slug"
)

// datePlaceholder stands in for a missing document date.
const datePlaceholder = "YYYY-MM-DD"

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyTitleCase, "":
		return PolicyTitleCase, nil
	case PolicySlug:
		return PolicySlug, nil
	default:
		return "", fmt.Errorf("%w: unknown filename policy %q", common.ErrInvalidConfig, s)
	}
}

// Builder renders filenames under a fixed policy.
type Builder struct {
	Policy Policy
}

// Build synthesizes the filename for the given fields under the default
// TitleCase policy. All-null fields yield "YYYY-MM-DD_Unknown_Unknown.pdf".
func Build(fields model.DetectedFields) string {
	return Builder{Policy: PolicyTitleCase}.Build(fields)
}

// Build synthesizes the filename for the given fields.
func (b Builder) Build(fields model.DetectedFields) string {
	if b.Policy == PolicySlug {
		return b.buildSlug(fields)
	}

	date := fields.DateISO
	if date == "" {
		date = datePlaceholder
	}

	parts := []string{date, TitleCase(fields.Issuer), displaySegment(fields.DocType)}
	return strings.Join(parts, "_") + ".pdf"
}

func (b Builder) buildSlug(fields model.DetectedFields) string {
	date := fields.DateISO
	if date == "" {
		date = datePlaceholder
	}

	parts := []string{date, Slugify(fields.Issuer), slugSegment(fields.DocType)}
	if fields.AccountLast4 != "" {
		parts = append(parts, strings.ToUpper(fields.AccountLast4))
	}
	return strings.Join(parts, "_") + ".pdf"
}

// displaySegment maps a document type to its filename segment. Known types
// use the exhaustive display table on the enum; free-form type names from
// custom rule sets drop a trailing Statement/Contract suffix and are
// TitleCased.
func displaySegment(docType string) string {
	if docType == "" {
		return "Unknown"
	}
	if dt, ok := model.ParseDocType(docType); ok {
		return dt.Display()
	}

	trimmed := strings.TrimSuffix(strings.TrimSuffix(docType, "Statement"), "Contract")
	return TitleCase(trimmed)
}

// slugSegment is the kebab-case form of the document type segment.
func slugSegment(docType string) string {
	if docType == "" {
		return "unknown"
	}
	if dt, ok := model.ParseDocType(docType); ok {
		return camelToSlug(dt.Display())
	}
	return Slugify(docType)
}

// companySuffixes matches common company suffixes anywhere in an issuer
// name so "Computershare Limited" and "Anacacia Pty Ltd" reduce to their
// trading names before casing.
var companySuffixes = regexp.MustCompile(`(?i)\b(?:Pty\.?\s*Ltd\.?|Pty\.?\s*Limited|Limited|Ltd\.?)\b`)

var (
	disallowedRunes = regexp.MustCompile(`[^\pL\pN\s-]`)
	tokenSplit      = regexp.MustCompile(`[\s-]+`)
	nonSlugRunes    = regexp.MustCompile(`[^a-z0-9]+`)
)

// TitleCase normalizes an issuer-like string to a no-separator TitleCase
// token: company suffixes stripped, punctuation removed, each remaining
// word capitalized and concatenated. Empty input (or input that is nothing
// but suffixes and punctuation) returns "Unknown".
func TitleCase(text string) string {
	if text == "" {
		return "Unknown"
	}

	text = companySuffixes.ReplaceAllString(text, "")
	text = disallowedRunes.ReplaceAllString(text, "")

	var sb strings.Builder
	for _, word := range tokenSplit.Split(text, -1) {
		if word == "" {
			continue
		}
		runes := []rune(word)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(strings.ToLower(string(runes[1:])))
	}

	if sb.Len() == 0 {
		return "Unknown"
	}
	return sb.String()
}

// Slugify converts a string to a lowercase kebab-case slug. Empty input
// returns "unknown".
func Slugify(text string) string {
	if text == "" {
		return "unknown"
	}

	text = companySuffixes.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	text = nonSlugRunes.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")

	if text == "" {
		return "unknown"
	}
	return text
}

// camelToSlug converts a CamelCase display name to kebab-case.
func camelToSlug(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			sb.WriteRune('-')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

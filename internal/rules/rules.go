// Package rules defines the declarative keyword rule sets that drive
// document classification and field extraction.
package rules

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// TypeRule is one document type's detection rule. Keywords match as
// case-insensitive substrings of the document text. All must keywords
// present gives a strong match; hints each add a small boost; any exclude
// keyword disqualifies the type; when requireAny is set at least one of its
// members has to be present.
type TypeRule struct {
	Type       string   `yaml:"type"`
	Must       []string `yaml:"must,omitempty"`
	Hints      []string `yaml:"hints,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`
	RequireAny []string `yaml:"requireAny,omitempty"`
}

// IssuerAlias maps a variant issuer string found in documents to its
// canonical display name.
type IssuerAlias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

// Set is the raw, serializable classification configuration. Types are
// ordered: earlier entries win score ties, so the sequence order of a rules
// file is significant.
type Set struct {
	DatePriorities  map[string][]string `yaml:"datePriorities,omitempty"`
	Types           []TypeRule          `yaml:"types"`
	Issuers         []string            `yaml:"issuers,omitempty"`
	Aliases         []IssuerAlias       `yaml:"aliases,omitempty"`
	AccountPatterns []string            `yaml:"accountPatterns,omitempty"`
}

// CompiledTypeRule mirrors a TypeRule with its keyword lists uppercased and
// de-duplicated for matching against uppercased document text.
type CompiledTypeRule struct {
	Type       string
	Must       []string
	Hints      []string
	Exclude    []string
	RequireAny []string
}

// Compiled is a Set with derived matching state ready for classification.
// It is immutable after construction and safe for concurrent use.
type Compiled struct {
	DatePriorities  map[string][]string
	Keywords        *KeywordIndex
	Types           []CompiledTypeRule
	Issuers         []string
	Aliases         []IssuerAlias
	AccountPatterns []*regexp.Regexp
}

// Compile derives the matching state for a rule set. Construction is
// tolerant: a malformed account pattern or an empty keyword is skipped with
// a warning rather than failing the load, since rule data may come from
// editable configuration.
func Compile(set Set) *Compiled {
	c := &Compiled{
		Types:          make([]CompiledTypeRule, 0, len(set.Types)),
		Issuers:        append([]string(nil), set.Issuers...),
		Aliases:        append([]IssuerAlias(nil), set.Aliases...),
		DatePriorities: make(map[string][]string, len(set.DatePriorities)),
	}

	for docType, labels := range set.DatePriorities {
		c.DatePriorities[docType] = append([]string(nil), labels...)
	}

	var keywords []string
	for _, tr := range set.Types {
		if strings.TrimSpace(tr.Type) == "" {
			slog.Warn("skipping rule with empty type name")
			continue
		}
		ct := CompiledTypeRule{
			Type:       tr.Type,
			Must:       upperUnique(tr.Must),
			Hints:      upperUnique(tr.Hints),
			Exclude:    upperUnique(tr.Exclude),
			RequireAny: upperUnique(tr.RequireAny),
		}
		keywords = append(keywords, ct.Must...)
		keywords = append(keywords, ct.Hints...)
		keywords = append(keywords, ct.Exclude...)
		keywords = append(keywords, ct.RequireAny...)
		c.Types = append(c.Types, ct)
	}
	c.Keywords = NewKeywordIndex(keywords)

	for _, pattern := range set.AccountPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("skipping malformed account pattern", "pattern", pattern, "error", err)
			continue
		}
		c.AccountPatterns = append(c.AccountPatterns, re)
	}

	return c
}

// PrioritiesFor returns the date-label priority list for a document type.
// A type without an entry falls back to the generic "Date" label.
func (c *Compiled) PrioritiesFor(docType string) []string {
	if labels, ok := c.DatePriorities[docType]; ok {
		return labels
	}
	return []string{"Date"}
}

// Validate checks a rule set for suspect configuration and returns
// human-readable warnings. It never fails: everything it flags is tolerated
// by Compile, just probably not what the author intended.
func Validate(set Set) []string {
	var warnings []string

	seen := make(map[string]bool, len(set.Types))
	for i, tr := range set.Types {
		name := strings.TrimSpace(tr.Type)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("types[%d]: empty type name", i))
			continue
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("types[%d]: duplicate type %q (only the first can win ties)", i, name))
		}
		seen[name] = true
		if len(tr.Must)+len(tr.Hints)+len(tr.RequireAny) == 0 {
			warnings = append(warnings, fmt.Sprintf("type %q has no must, hint, or requireAny keywords and can never score", name))
		}
	}

	for docType := range set.DatePriorities {
		if !seen[docType] {
			warnings = append(warnings, fmt.Sprintf("datePriorities key %q has no matching type entry", docType))
		}
	}

	for i, alias := range set.Aliases {
		if strings.TrimSpace(alias.Alias) == "" || strings.TrimSpace(alias.Canonical) == "" {
			warnings = append(warnings, fmt.Sprintf("aliases[%d]: alias and canonical must both be set", i))
		}
	}

	for _, pattern := range set.AccountPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			warnings = append(warnings, fmt.Sprintf("account pattern %q does not compile: %v", pattern, err))
		}
	}

	return warnings
}

// upperUnique uppercases and de-duplicates a keyword list, preserving
// order. Case variants of the same keyword collapse to one entry, which
// leaves case-insensitive matching semantics unchanged.
func upperUnique(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		upper := strings.ToUpper(strings.TrimSpace(kw))
		if upper == "" {
			continue
		}
		if _, ok := seen[upper]; ok {
			continue
		}
		seen[upper] = struct{}{}
		out = append(out, upper)
	}
	return out
}

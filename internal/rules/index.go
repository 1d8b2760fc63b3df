package rules

import (
	"github.com/cloudflare/ahocorasick"
)

// KeywordIndex reports which members of a fixed keyword set occur in a
// document in a single pass over the text, using an Aho-Corasick automaton.
// Scanning once and sharing the hit set across every type rule is much
// cheaper than substring-searching each keyword separately.
type KeywordIndex struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordIndex builds an index over the given keywords, which are
// expected to be uppercased already. Duplicates collapse to one entry; an
// empty keyword list yields an index that matches nothing.
func NewKeywordIndex(keywords []string) *KeywordIndex {
	seen := make(map[string]struct{}, len(keywords))
	uniq := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		uniq = append(uniq, kw)
	}
	if len(uniq) == 0 {
		return &KeywordIndex{}
	}

	patterns := make([][]byte, len(uniq))
	for i, kw := range uniq {
		patterns[i] = []byte(kw)
	}
	return &KeywordIndex{
		matcher:  ahocorasick.NewMatcher(patterns),
		keywords: uniq,
	}
}

// Scan returns the set of indexed keywords present in upperText. The
// returned map is nil when nothing matches; lookups on it still behave.
// Scan is safe for concurrent use: Matcher.Match mutates shared generation
// counters, so scanning goes through MatchThreadSafe.
func (ix *KeywordIndex) Scan(upperText string) map[string]bool {
	if ix == nil || ix.matcher == nil || upperText == "" {
		return nil
	}
	hits := ix.matcher.MatchThreadSafe([]byte(upperText))
	if len(hits) == 0 {
		return nil
	}
	present := make(map[string]bool, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(ix.keywords) {
			present[ix.keywords[idx]] = true
		}
	}
	return present
}

// Size returns the number of distinct indexed keywords.
func (ix *KeywordIndex) Size() int {
	if ix == nil {
		return 0
	}
	return len(ix.keywords)
}

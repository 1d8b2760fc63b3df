package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/markma27/pdfsaver/internal/common"
)

// LoadFile reads a rule set from a YAML file. The file must define at least
// one document type; everything else (issuers, aliases, date priorities,
// account patterns) is optional and defaults to empty.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("%w: %s", common.ErrRulesInvalid, err)
	}
	if len(set.Types) == 0 {
		return Set{}, fmt.Errorf("%w: no document types defined", common.ErrRulesInvalid)
	}
	return set, nil
}

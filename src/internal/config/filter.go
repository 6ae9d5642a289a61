// FILE: logship/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"
)

// FilterType represents the filter type
type FilterType string

const (
	FilterTypeInclude FilterType = "include" // Whitelist - only matching logs pass
	FilterTypeExclude FilterType = "exclude" // Blacklist - matching logs are dropped
)

// FilterLogic represents how multiple patterns are combined
type FilterLogic string

const (
	FilterLogicOr  FilterLogic = "or"  // Match any pattern
	FilterLogicAnd FilterLogic = "and" // Match all patterns
)

// FilterConfig represents filter configuration
type FilterConfig struct {
	Type     FilterType  `toml:"type"`
	Logic    FilterLogic `toml:"logic"`
	Patterns []string    `toml:"patterns"`
}

func validateFilter(destName string, filterIndex int, cfg *FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
	default:
		return fmt.Errorf("destination '%s' filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			destName, filterIndex, cfg.Type)
	}

	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
	default:
		return fmt.Errorf("destination '%s' filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			destName, filterIndex, cfg.Logic)
	}

	// Empty patterns is valid - passes everything
	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("destination '%s' filter[%d] pattern[%d] '%s': invalid regex: %w",
				destName, filterIndex, i, pattern, err)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/matsim-io/simnorm/internal/logging"
)

// ProgramOverrides holds per-program normalization settings, keyed by program name.
type ProgramOverrides map[string]NormalizerConfig

// Parse reads a YAML configuration document on top of Default. Unknown keys are ignored.
func Parse(data []byte) (NormalizerConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return NormalizerConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return NormalizerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseProgramOverrides parses per-program overrides. Each value is a YAML document
// with a program field naming the program it applies to.
// Entries that fail to parse or validate are logged and skipped; when two entries name
// the same program the first key in sorted order wins.
func ParseProgramOverrides(data map[string]string, logger logr.Logger) ProgramOverrides {
	out := make(ProgramOverrides)
	if len(data) == 0 {
		return out
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	programToKey := make(map[string]string)
	for _, key := range keys {
		var entry NormalizerConfig
		if err := yaml.Unmarshal([]byte(data[key]), &entry); err != nil {
			logger.Info("Failed to parse program override, skipping",
				"key", key,
				"error", err.Error())
			continue
		}

		if err := entry.Validate(); err != nil {
			logger.Info("Invalid program override, skipping",
				"key", key,
				"error", err.Error())
			continue
		}

		if entry.Program == "" {
			logger.Info("Skipping program override without program field",
				"key", key)
			continue
		}

		if winner, exists := programToKey[entry.Program]; exists {
			logger.Info("Duplicate program in overrides - first key wins",
				"program", entry.Program,
				"winningKey", winner,
				"duplicateKey", key)
			continue
		}
		programToKey[entry.Program] = key
		out[entry.Program] = entry
	}

	logger.V(logging.DEBUG).Info("Parsed program overrides",
		"programCount", len(out))

	return out
}

// Merge returns base with the resolver settings of the override for program applied.
// Run-wide settings (workers, log level, metrics file) are never overridden.
func (o ProgramOverrides) Merge(base NormalizerConfig, program string) NormalizerConfig {
	result := base
	result.Overrides = nil
	override, ok := o[program]
	if !ok {
		return result
	}
	result.Program = program
	if override.HubbardParametrization != "" {
		result.HubbardParametrization = override.HubbardParametrization
	}
	if override.JCouplingRule != "" {
		result.JCouplingRule = override.JCouplingRule
	}
	if override.Tolerance != 0 {
		result.Tolerance = override.Tolerance
	}
	return result
}

// internal/config/normalize.go
package config

import (
	"sort"
	"strings"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Controller.Variant = strings.ToLower(strings.TrimSpace(cfg.Controller.Variant))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	// Groups are broadcast in group-number order.
	sort.SliceStable(cfg.Controller.Groups, func(i, j int) bool {
		return cfg.Controller.Groups[i].No < cfg.Controller.Groups[j].No
	})
}

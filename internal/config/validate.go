// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
	"github.com/tamzrod/motoman-stateserver/internal/status"
)

// maxStateClients is the capacity of the state server slot table.
const maxStateClients = 4

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	type span struct {
		start int
		end   int
		group int
	}

	// ------------------------------------------------------------
	// SERVER
	// ------------------------------------------------------------

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.MaxClients < 1 || cfg.Server.MaxClients > maxStateClients {
		return fmt.Errorf("server.max_clients must be in 1..%d, got %d", maxStateClients, cfg.Server.MaxClients)
	}
	if cfg.Server.SendTimeoutMs <= 0 {
		return fmt.Errorf("server.send_timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// CONTROLLER
	// ------------------------------------------------------------

	variant, err := status.LookupVariant(cfg.Controller.Variant)
	if err != nil {
		return err
	}

	period := cfg.Controller.InterpolationPeriodMs
	if period < 1 || period > 100 {
		return fmt.Errorf("controller.interpolation_period_ms must be in 1..100, got %d", period)
	}
	if cfg.Controller.StatusPollMs <= 0 {
		return fmt.Errorf("controller.status_poll_ms must be > 0")
	}

	groups := cfg.Controller.Groups
	if len(groups) == 0 {
		return fmt.Errorf("controller.groups: at least one control group required")
	}
	if len(groups) > variant.MaxGroups {
		return fmt.Errorf(
			"controller.groups: %d groups exceed the %s limit of %d",
			len(groups),
			variant.Name,
			variant.MaxGroups,
		)
	}

	// ------------------------------------------------------------
	// GROUP FEEDBACK GEOMETRY
	// ------------------------------------------------------------

	seen := make(map[int]bool)
	var spans []span

	for _, g := range groups {
		if g.No < 0 {
			return fmt.Errorf("group %d: no must be >= 0", g.No)
		}
		if seen[g.No] {
			return fmt.Errorf("group %d: duplicate group number", g.No)
		}
		seen[g.No] = true

		if g.Axes < 1 || g.Axes > simplemsg.MaxJoints {
			return fmt.Errorf("group %d: axes must be in 1..%d, got %d", g.No, simplemsg.MaxJoints, g.Axes)
		}

		// positions + velocities, 2 registers each
		start := int(g.FeedbackBase)
		end := start + g.Axes*4 - 1
		if end > 0xFFFF {
			return fmt.Errorf("group %d: feedback registers %d-%d exceed address space", g.No, start, end)
		}

		for _, s := range spans {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"feedback overlap: group %d range=%d-%d overlaps with group %d range=%d-%d",
					g.No,
					start,
					end,
					s.group,
					s.start,
					s.end,
				)
			}
		}

		spans = append(spans, span{start: start, end: end, group: g.No})
	}

	// ------------------------------------------------------------
	// IO LINK
	// ------------------------------------------------------------

	if cfg.IO.Endpoint == "" {
		return fmt.Errorf("io.endpoint is required")
	}
	if cfg.IO.TimeoutMs <= 0 {
		return fmt.Errorf("io.timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}

	return nil
}

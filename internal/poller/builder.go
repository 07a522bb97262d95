// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/jonboulle/clockwork"

	cfg "github.com/tamzrod/motoman-stateserver/internal/config"
	"github.com/tamzrod/motoman-stateserver/internal/status"
)

// Build constructs the status poller over an already-connected I/O link.
// The link is shared and owned by the caller.
// No retries, no loops, no semantics.
func Build(c cfg.ControllerConfig, client Client, clock clockwork.Clock) (*Poller, error) {
	variant, err := status.LookupVariant(c.Variant)
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			Variant:  variant,
			Interval: time.Duration(c.StatusPollMs) * time.Millisecond,
			Geometry: StatusGeometry{
				StatusBase: c.StatusBase,
				AlarmBase:  c.AlarmBase,
			},
		},
		client,
		clock,
	)
}

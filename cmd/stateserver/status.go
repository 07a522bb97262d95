// cmd/stateserver/status.go
package main

import (
	"context"
	"log/slog"

	"github.com/tamzrod/motoman-stateserver/internal/controller"
	"github.com/tamzrod/motoman-stateserver/internal/metrics"
	"github.com/tamzrod/motoman-stateserver/internal/poller"
)

// applyStatus commits successful polls to the controller snapshot.
// A failed poll keeps the previous snapshot. Health changes are logged once.
func applyStatus(ctx context.Context, in <-chan poller.PollResult, ctrl *controller.Controller, logger *slog.Logger) {
	healthy := true
	prevSubcode := -1

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			if res.Err != nil {
				metrics.StatusPollsTotal.WithLabelValues("error").Inc()
				if healthy {
					healthy = false
					logger.Warn("controller status poll failing", "err", res.Err)
				}
				continue
			}

			metrics.StatusPollsTotal.WithLabelValues("ok").Inc()
			if !healthy {
				healthy = true
				logger.Info("controller status poll recovered")
			}

			ctrl.UpdateStatus(res.Snapshot)

			if sub := int(res.Snapshot.NotReadySubcode()); sub != prevSubcode {
				prevSubcode = sub
				logger.Info("controller readiness changed",
					"subcode", sub,
					"reason", res.Snapshot.NotReadySubcode().String(),
					"alarm_code", res.Snapshot.AlarmCode,
				)
			}
		}
	}
}

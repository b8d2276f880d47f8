package workouts

import (
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
)

// Service is the workout session engine as used by the API surface.
type Service struct {
	*Lifecycle
	*Attachments
	*Sequencer

	Sweeper *ExpirySweeper
}

// NewService wires the engine components on one store and clock.
// A nil now defaults to time.Now.
func NewService(store Store, metricsManager *metrics.Manager, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		Lifecycle:   NewLifecycle(store, metricsManager, now),
		Attachments: NewAttachments(store, now),
		Sequencer:   NewSequencer(store, metricsManager, now),
		Sweeper:     NewExpirySweeper(store, metricsManager, now),
	}
}

package workouts

import (
	"context"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

func expireStale(ctx context.Context, tx Tx, now time.Time, userID *int) ([]int, error) {
	return tx.ExpireWorkouts(ctx, ExpireParams{
		UserID: userID,
		Cutoff: now.Add(-MaxWorkoutDuration),
	})
}

// ExpirySweeper force-completes ACTIVE workouts of all users that ran past
// MaxWorkoutDuration. Reads of a single user's workout apply the same rule,
// the sweeper makes sure abandoned workouts do not stay ACTIVE forever.
type ExpirySweeper struct {
	store          Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewExpirySweeper(store Store, metricsManager *metrics.Manager, now func() time.Time) *ExpirySweeper {
	if now == nil {
		now = time.Now
	}
	return &ExpirySweeper{
		store:          store,
		metricsManager: metricsManager,
		now:            now,
	}
}

func (s *ExpirySweeper) Sweep(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.expiry.sweep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		s.metricsManager.HistExpirySweepDuration.Observe(time.Since(start).Seconds())
	}()

	var expired []int
	if err := s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		expired, err = expireStale(ctx, tx, s.now(), nil)
		return err
	}); err != nil {
		return 0, Classify("workouts.expiry.sweep", log.Fields{}, err)
	}

	if len(expired) > 0 {
		s.metricsManager.CounterWorkoutsExpired.Add(float64(len(expired)))
		log.Infof("expiry sweep: force-completed %d workouts: %v", len(expired), expired)
	}

	return len(expired), nil
}

// Run sweeps every interval until ctx is done.
func (s *ExpirySweeper) Run(ctx context.Context, interval time.Duration) {
	log.Debugf("expiry sweeper started, interval: %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("expiry sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				log.Errorf("expiry sweep: %s", err)
			}
		}
	}
}

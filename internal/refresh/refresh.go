// Package refresh schedules the periodic KP-index pulls. Forecast data
// changes a few times a day; historical values settle once per day, so
// both run on fixed cron schedules rather than on request.
package refresh

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/astrelina/helia/internal/services"
)

const (
	forecastSchedule   = "0 */6 * * *"
	historicalSchedule = "30 3 * * *"
	historicalLookback = 30 // days
)

// CachePruner drops persisted KP rows older than the given day key.
type CachePruner interface {
	PruneBefore(date string) error
}

type Scheduler struct {
	kp       *services.KpService
	pruner   CachePruner
	location *time.Location
	cron     *cron.Cron
	failures prometheus.Counter
}

func NewScheduler(kp *services.KpService, pruner CachePruner, location *time.Location, failures prometheus.Counter) *Scheduler {
	return &Scheduler{
		kp:       kp,
		pruner:   pruner,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
		failures: failures,
	}
}

// Start performs an initial pull, then keeps the series fresh until the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.runForecast(ctx)
	s.runHistorical(ctx)

	if _, err := s.cron.AddFunc(forecastSchedule, func() { s.runForecast(ctx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(historicalSchedule, func() { s.runHistorical(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}

func (s *Scheduler) runForecast(ctx context.Context) {
	if err := s.kp.RefreshForecast(ctx); err != nil {
		s.failures.Inc()
		log.Printf("kp forecast refresh failed: %v", err)
	}
}

func (s *Scheduler) runHistorical(ctx context.Context) {
	end := time.Now().In(s.location)
	start := end.AddDate(0, 0, -historicalLookback)
	if err := s.kp.RefreshHistorical(ctx, start, end); err != nil {
		s.failures.Inc()
		log.Printf("kp historical refresh failed: %v", err)
		return
	}
	if err := s.pruner.PruneBefore(services.DayKey(start)); err != nil {
		log.Printf("kp cache prune failed: %v", err)
	}
}

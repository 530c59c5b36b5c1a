package jobs

import (
	"fmt"
	"time"

	"redlink/logger"
	appointmentService "redlink/services/appointment"
)

// StatusSweeper periodically advances elapsed pending appointments to
// completed. The sweep is idempotent and stateless across ticks, so no
// cursor, lock or recovery logic is needed; overlapping runs at worst do
// duplicate no-op work.
type StatusSweeper struct {
	ledger   *appointmentService.Service
	interval time.Duration
	stop     chan struct{}
}

func NewStatusSweeper(ledger *appointmentService.Service, interval time.Duration) *StatusSweeper {
	return &StatusSweeper{
		ledger:   ledger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine. The first sweep runs
// immediately so a restarted process catches up without waiting a full
// interval.
func (s *StatusSweeper) Start() {
	logger.Info(fmt.Sprintf("Starting appointment status sweeper (every %s)", s.interval))

	go func() {
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop. Safe to call once.
func (s *StatusSweeper) Stop() {
	close(s.stop)
	logger.Info("Appointment status sweeper stopped")
}

func (s *StatusSweeper) sweep() {
	count, err := s.ledger.SweepElapsed(time.Now())
	if err != nil {
		logger.Error("Appointment status sweep failed", err)
		return
	}
	if count > 0 {
		logger.Success(fmt.Sprintf("Marked %d elapsed appointments as completed", count))
	}
}

package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// BillingScheduler runs bulk receipt generation in the background. On
// every tick it bills the previous month, so receipts appear shortly
// after a period closes without an administrator driving it.
type BillingScheduler struct {
	receipts *ReceiptService
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewBillingScheduler(receipts *ReceiptService, interval time.Duration) *BillingScheduler {
	return &BillingScheduler{
		receipts: receipts,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduling loop. Stop terminates it.
func (s *BillingScheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(time.Now())
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *BillingScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runOnce bills the month before now. Users already billed or without
// readings are skipped, so repeated runs within the same month are
// harmless.
func (s *BillingScheduler) runOnce(now time.Time) {
	period := NormalizePeriod(now).AddDate(0, -1, 0)

	generated, skipped, err := s.receipts.GenerateForAll(period)
	if err != nil {
		zap.L().Error("scheduled receipt generation failed",
			zap.Time("period", period),
			zap.Error(err))
		return
	}

	if generated > 0 {
		zap.L().Info("scheduled receipt generation finished",
			zap.Time("period", period),
			zap.Int("generated", generated),
			zap.Int("skipped", skipped))
	}
}

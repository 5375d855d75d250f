package services

import (
	"testing"
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBillingSchedulerRunOnce(t *testing.T) {
	env := setupBillingEnv()
	user := env.createUser("alice", "0")

	now := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	previousMonth := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := env.readings.SubmitReading(user.ID, env.electricity.ID,
		decimal.NewFromInt(10), previousMonth)
	assert.NoError(t, err)

	scheduler := NewBillingScheduler(env.receipts, time.Hour)
	scheduler.runOnce(now)

	receipts, err := env.receipts.UserReceipts(user.ID)
	assert.NoError(t, err)
	assert.Len(t, receipts, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), receipts[0].Period)
	assert.Equal(t, models.ReceiptStatusGenerated, receipts[0].Status)

	// A second pass over the same month changes nothing.
	scheduler.runOnce(now)
	receipts, _ = env.receipts.UserReceipts(user.ID)
	assert.Len(t, receipts, 1)
}

func TestBillingSchedulerStartStop(t *testing.T) {
	env := setupBillingEnv()

	scheduler := NewBillingScheduler(env.receipts, 10*time.Millisecond)
	scheduler.Start()
	time.Sleep(30 * time.Millisecond)
	scheduler.Stop()

	// Stop is idempotent.
	scheduler.Stop()
}

package services

import "time"

// NormalizePeriod truncates a timestamp to the first day of its month in
// UTC. Readings, receipts and payments for the same billing month must
// land on the same period value so equality comparisons work.
func NormalizePeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

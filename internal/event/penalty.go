package event

import "time"

const (
	// cancellationWindow is how close to the start a cancellation stops
	// being free.
	cancellationWindow = 7 * 24 * time.Hour

	penaltyRate = 0.10
)

// CancellationPenalty returns the fee for cancelling an event at time now.
// Cancelling up to and including exactly seven days before the start is free;
// any later and the fee is 10% of the retail price.
func CancellationPenalty(retailPrice float64, startTime, now time.Time) float64 {
	deadline := startTime.Add(-cancellationWindow)
	if now.After(deadline) {
		return retailPrice * penaltyRate
	}
	return 0
}

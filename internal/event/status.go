package event

import (
	"github.com/planora/event-management-backend/internal/booking"
)

// DeriveStatus computes an event's status from the statuses of its booking
// requests:
//
//   - cancelled is terminal and never leaves
//   - with no requests the status is left as is
//   - any rejected request puts the event back in planning
//   - all requests confirmed means the event is confirmed
//   - otherwise some request is still pending and the event stays in planning
func DeriveStatus(current Status, statuses []booking.Status) Status {
	if current == StatusCancelled {
		return StatusCancelled
	}
	if len(statuses) == 0 {
		return current
	}

	allConfirmed := true
	for _, s := range statuses {
		switch s {
		case booking.StatusConfirmed:
		case booking.StatusRejected:
			return StatusPlanning
		case booking.StatusPending:
			allConfirmed = false
		default:
			allConfirmed = false
		}
	}

	if allConfirmed {
		return StatusConfirmed
	}
	return StatusPlanning
}

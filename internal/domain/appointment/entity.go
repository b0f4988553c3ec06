package appointment

import (
	"time"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StartService moves a checked-in walk-in to the chair. The member is
// pinned to the head of the queue with no wait.
func StartService(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusInSalon); err != nil {
		return err
	}

	ap.Status = string(StatusInSalon)
	ap.InSalonTime = &now
	ap.QueuePosition = 1
	ap.EstimatedWaitTime = 0
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompleteTime = &now
	clearQueueFields(ap)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelTime = &now
	clearQueueFields(ap)
	return nil
}

// queue_position and estimated_wait_time are meaningful only for
// active statuses; terminal transitions zero them.
func clearQueueFields(ap *models.Appointment) {
	ap.QueuePosition = 0
	ap.EstimatedWaitTime = 0
}

// ElapsedInSalonMinutes returns whole minutes since service started.
func ElapsedInSalonMinutes(ap *models.Appointment, now time.Time) int {
	if ap.InSalonTime == nil {
		return 0
	}
	elapsed := int(now.Sub(*ap.InSalonTime).Minutes())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// RemainingServiceMinutes is the in-salon member's unserved time,
// zero-floored.
func RemainingServiceMinutes(ap *models.Appointment, now time.Time) int {
	remaining := ap.TotalServiceMinutes() - ElapsedInSalonMinutes(ap, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

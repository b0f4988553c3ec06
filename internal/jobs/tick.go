package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/notify"
)

// TickQueues advances every walk-in queue whose chair is occupied by
// one minute: waiting members count down toward zero, and when the
// queue catches up with the chair occupant that occupant is
// completed. One barber failing never stops the pass.
func (r *Runner) TickQueues(ctx context.Context) {
	barberIDs, err := r.repo.ListBarbersWithActiveQueues(ctx)
	if err != nil {
		r.log.Error("queue tick: listing barbers failed", zap.Error(err))
		return
	}

	for _, barberID := range barberIDs {
		if err := r.tickBarber(ctx, barberID); err != nil {
			r.log.Error("queue tick failed",
				zap.Uint("barber_id", barberID),
				zap.Error(err),
			)
		}
	}
}

func (r *Runner) tickBarber(ctx context.Context, barberID uint) error {
	queue, err := r.repo.ListActiveQueue(ctx, barberID)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return nil
	}

	// Nothing is being served while the chair is empty; waits hold
	// until someone moves in_salon.
	if domain.Status(queue[0].Status) != domain.StatusInSalon {
		return nil
	}

	changed := false
	for i := range queue {
		ap := &queue[i]
		if domain.Status(ap.Status) != domain.StatusCheckedIn || ap.EstimatedWaitTime <= 0 {
			continue
		}

		wait := ap.EstimatedWaitTime - 1
		if err := r.repo.UpdateQueueFields(ctx, ap.ID, ap.QueuePosition, wait); err != nil {
			return err
		}
		ap.EstimatedWaitTime = wait
		changed = true

		r.hub.SendToUser(ap.UserID, "wait_update", map[string]interface{}{
			"appointment_id":      ap.ID,
			"queue_position":      ap.QueuePosition,
			"estimated_wait_time": wait,
		})
		r.maybeNotifyLowWait(ctx, ap)
	}

	// The successor's countdown reaching zero means the occupant's
	// estimated service time is up: complete it and let the status use
	// case rebuild and broadcast the board.
	if domain.Status(queue[0].Status) == domain.StatusInSalon &&
		len(queue) > 1 &&
		queue[1].EstimatedWaitTime == 0 {
		if _, err := r.status.Execute(ctx, queue[0].ID, domain.StatusCompleted); err != nil {
			return err
		}
		return nil
	}

	if changed {
		r.events.BoardChanged(barberID, queue)
	}
	return nil
}

// maybeNotifyLowWait pushes the "almost your turn" message exactly
// once, gated by the cache flag.
func (r *Runner) maybeNotifyLowWait(ctx context.Context, ap *models.Appointment) {
	if ap.EstimatedWaitTime <= 0 || ap.EstimatedWaitTime > LowWaitThresholdMinutes {
		return
	}
	if ap.User.DeviceToken == "" {
		return
	}

	first, err := r.cache.MarkLowWaitNotified(ctx, ap.ID)
	if err != nil {
		r.log.Warn("low-wait flag failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		return
	}
	if !first {
		return
	}

	r.notifier.Dispatch(notify.Message{
		Channel: notify.ChannelPush,
		UserID:  ap.UserID,
		Token:   ap.User.DeviceToken,
		Title:   "Almost your turn",
		Body:    fmt.Sprintf("You are up in about %d minutes. Please be ready.", ap.EstimatedWaitTime),
	})
}

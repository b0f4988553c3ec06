package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/notify"
	"github.com/trimsalon/salon-queue-api/internal/timezone"
)

// SendDailyReminders notifies every customer with a slot booking today.
func (r *Runner) SendDailyReminders(ctx context.Context) {
	today := timezone.Date(r.now())

	apps, err := r.repo.ListScheduledForDate(ctx, today)
	if err != nil {
		r.log.Error("daily reminders: listing appointments failed", zap.Error(err))
		return
	}

	for i := range apps {
		ap := &apps[i]
		body := fmt.Sprintf("Reminder: your appointment at %s is today at %s.",
			ap.Salon.Name, ap.StartTime)

		if ap.User.DeviceToken != "" {
			r.notifier.Dispatch(notify.Message{
				Channel: notify.ChannelPush,
				UserID:  ap.UserID,
				Token:   ap.User.DeviceToken,
				Title:   "Appointment today",
				Body:    body,
			})
		}
		if ap.User.Email != "" {
			r.notifier.Dispatch(notify.Message{
				Channel:  notify.ChannelEmail,
				UserID:   ap.UserID,
				Email:    ap.User.Email,
				Title:    "Appointment today",
				Body:     body,
				Template: notify.TemplateAppointmentReminder,
				Data: map[string]string{
					"salon": ap.Salon.Name,
					"date":  today.Format("2006-01-02"),
					"time":  ap.StartTime,
				},
			})
		}
	}

	r.log.Info("daily reminders sent", zap.Int("count", len(apps)))
}

// SweepStaleCheckIns clears queue members left over from earlier
// days, e.g. after a crash or a salon that never closed. Waiting
// members are canceled; a leftover chair occupant has no cancel
// transition, so it is completed instead, which also frees the chair.
func (r *Runner) SweepStaleCheckIns(ctx context.Context) {
	startOfDay := timezone.Date(r.now())

	stale, err := r.repo.ListStaleActive(ctx, startOfDay)
	if err != nil {
		r.log.Error("stale sweep: listing failed", zap.Error(err))
		return
	}

	for _, ap := range stale {
		var err error
		if domain.Status(ap.Status) == domain.StatusInSalon {
			_, err = r.status.Execute(ctx, ap.ID, domain.StatusCompleted)
		} else {
			_, err = r.cancel.Execute(ctx, ap.ID,
				"Your check-in expired at the end of the day and was canceled.")
		}
		if err != nil {
			r.log.Error("stale sweep: close-out failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
	}

	if len(stale) > 0 {
		r.log.Info("stale check-ins swept", zap.Int("count", len(stale)))
	}
}

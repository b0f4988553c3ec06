package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimsalon/salon-queue-api/internal/metrics"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/queuecache"
	"github.com/trimsalon/salon-queue-api/internal/realtime"
)

// Fanout routes domain events to the notification channels, the
// realtime hub and the board cache. It implements the event sinks of
// the lifecycle and the session generator. Everything here is
// best-effort: failures are logged and swallowed.
type Fanout struct {
	notifier *Notifier
	hub      *realtime.Hub
	cache    *queuecache.Cache
	metrics  *metrics.Metrics
	db       *gorm.DB
	log      *zap.Logger
}

func NewFanout(
	notifier *Notifier,
	hub *realtime.Hub,
	cache *queuecache.Cache,
	m *metrics.Metrics,
	db *gorm.DB,
	log *zap.Logger,
) *Fanout {
	return &Fanout{
		notifier: notifier,
		hub:      hub,
		cache:    cache,
		metrics:  m,
		db:       db,
		log:      log,
	}
}

// --------------------------------------------------
// Appointment lifecycle events
// --------------------------------------------------

func (f *Fanout) AppointmentCreated(ap *models.Appointment) {
	kind := "walkin"
	body := fmt.Sprintf("You are number %d in the queue. Estimated wait: %d minutes.",
		ap.QueuePosition, ap.EstimatedWaitTime)
	if ap.SlotID != nil {
		kind = "scheduled"
		body = fmt.Sprintf("Your appointment is booked for %s at %s.",
			ap.AppointmentDate.Format("2006-01-02"), ap.StartTime)
	}
	f.metrics.AppointmentsCreated.WithLabelValues(kind).Inc()

	f.sendAll(ap, "Booking confirmed", body, TemplateAppointmentCreated)
	f.hub.SendToUser(ap.UserID, "appointment_created", ap)
}

func (f *Fanout) AppointmentCompleted(ap *models.Appointment) {
	f.metrics.AppointmentsCompleted.Inc()
	f.sendAll(ap, "Thanks for coming in", "Your service is complete. See you next time!", TemplateAppointmentCompleted)
	f.hub.SendToUser(ap.UserID, "appointment_completed", ap)
}

func (f *Fanout) AppointmentCancelled(ap *models.Appointment, message string) {
	f.metrics.AppointmentsCancelled.Inc()
	f.sendAll(ap, "Booking canceled", message, TemplateAppointmentCancelled)
	f.hub.SendToUser(ap.UserID, "appointment_cancelled", ap)
}

func (f *Fanout) AppointmentTransferred(ap *models.Appointment) {
	f.metrics.Transfers.WithLabelValues("success").Inc()
	body := fmt.Sprintf("Your appointment was moved to another barber. Same time: %s at %s.",
		ap.AppointmentDate.Format("2006-01-02"), ap.StartTime)
	f.sendAll(ap, "Appointment transferred", body, TemplateAppointmentCreated)
	f.hub.SendToUser(ap.UserID, "appointment_transferred", ap)
}

func (f *Fanout) BoardChanged(barberID uint, board []models.Appointment) {
	f.metrics.QueueRecalcs.Inc()

	salonID := uint(0)
	if len(board) > 0 {
		salonID = board[0].SalonID
	}
	f.hub.BroadcastBoard(barberID, salonID, board)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.cache.StoreBoard(ctx, barberID, board); err != nil {
		f.log.Warn("board cache write failed",
			zap.Uint("barber_id", barberID),
			zap.Error(err),
		)
	}
}

// --------------------------------------------------
// Session generator events
// --------------------------------------------------

func (f *Fanout) BarberUnavailable(barberID uint, date time.Time, reason string) {
	var barber models.Barber
	if err := f.db.First(&barber, barberID).Error; err != nil {
		return
	}

	f.hub.BroadcastInSalonUpdate(barber.SalonID, nil)
	f.hub.SendToUser(barber.UserID, "barber_unavailable", map[string]interface{}{
		"barber_id": barberID,
		"date":      date.Format("2006-01-02"),
		"reason":    reason,
	})
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (f *Fanout) sendAll(ap *models.Appointment, title, body, template string) {
	user := ap.User
	if user.ID == 0 {
		if err := f.db.First(&user, ap.UserID).Error; err != nil {
			f.log.Warn("notification user lookup failed",
				zap.Uint("user_id", ap.UserID),
				zap.Error(err),
			)
			return
		}
	}

	data := map[string]string{
		"position": fmt.Sprintf("%d", ap.QueuePosition),
		"wait":     fmt.Sprintf("%d", ap.EstimatedWaitTime),
	}
	if ap.AppointmentDate != nil {
		data["date"] = ap.AppointmentDate.Format("2006-01-02")
		data["time"] = ap.StartTime
	}

	if user.DeviceToken != "" {
		f.notifier.Dispatch(Message{
			Channel: ChannelPush,
			UserID:  user.ID,
			Token:   user.DeviceToken,
			Title:   title,
			Body:    body,
			Data:    data,
		})
	}
	if user.Phone != "" {
		f.notifier.Dispatch(Message{
			Channel: ChannelSMS,
			UserID:  user.ID,
			Phone:   user.Phone,
			Title:   title,
			Body:    body,
		})
	}
	if user.Email != "" {
		f.notifier.Dispatch(Message{
			Channel:  ChannelEmail,
			UserID:   user.ID,
			Email:    user.Email,
			Title:    title,
			Body:     body,
			Template: template,
			Data:     data,
		})
	}
}

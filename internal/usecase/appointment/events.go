package appointment

import "github.com/trimsalon/salon-queue-api/internal/models"

// Events is the outward edge of the lifecycle: notification sends and
// realtime board broadcasts. All calls are best-effort and
// fire-and-forget; they never affect the transactional outcome of the
// operation that raised them.
type Events interface {
	AppointmentCreated(ap *models.Appointment)
	AppointmentCompleted(ap *models.Appointment)
	AppointmentCancelled(ap *models.Appointment, message string)
	AppointmentTransferred(ap *models.Appointment)
	BoardChanged(barberID uint, board []models.Appointment)
}

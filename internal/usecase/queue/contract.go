package queue

import (
	"context"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// Repository is the slice of persistence the queue engine needs.
type Repository interface {
	// ListActiveQueue returns checked_in/in_salon appointments for a
	// barber ordered by queue_position, services preloaded.
	ListActiveQueue(ctx context.Context, barberID uint) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateQueueFields(ctx context.Context, id uint, position, wait int) error
}

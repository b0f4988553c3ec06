package jobs

import (
	"context"
	"time"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// Repository is the read/write surface the background jobs need
// directly. Lifecycle changes (completion, cancellation) go through
// the appointment use cases so their side effects stay in one place.
type Repository interface {
	ListBarbersWithActiveQueues(ctx context.Context) ([]uint, error)
	ListActiveQueue(ctx context.Context, barberID uint) ([]models.Appointment, error)
	UpdateQueueFields(ctx context.Context, id uint, position, wait int) error
	ListScheduledForDate(ctx context.Context, date time.Time) ([]models.Appointment, error)
	ListStaleActive(ctx context.Context, before time.Time) ([]models.Appointment, error)
}

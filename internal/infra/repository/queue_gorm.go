package repository

import (
	"context"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// --------------------------------------------------
// Queue fields (used by the walk-in queue engine)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateQueueFields(
	ctx context.Context,
	id uint,
	position int,
	wait int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"queue_position":      position,
			"estimated_wait_time": wait,
		}).Error
}

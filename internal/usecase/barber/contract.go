package barber

import (
	"context"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

type Repository interface {
	// GetBarber loads the barber with its weekly schedule rows.
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	SaveBarber(ctx context.Context, barber *models.Barber) error

	// ReplaceScheduleDays swaps the barber's seven weekday rows.
	ReplaceScheduleDays(ctx context.Context, barberID uint, days []models.BarberScheduleDay) error

	GetLeave(ctx context.Context, id uint) (*models.BarberLeave, error)

	CreateLeave(ctx context.Context, leave *models.BarberLeave) error

	UpdateLeave(ctx context.Context, leave *models.BarberLeave) error
}

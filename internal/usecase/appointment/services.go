package appointment

import (
	"context"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// resolveServices turns the requested service ids into join rows,
// keeping duplicates and their selection order, and returns the summed
// duration. Zero ids resolve to zero rows and zero minutes; callers
// fall back to the default charge.
func resolveServices(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	ids []uint,
) ([]models.AppointmentService, int, error) {

	if len(ids) == 0 {
		return nil, 0, nil
	}

	byID, err := repo.GetServicesByID(ctx, salonID, ids)
	if err != nil {
		return nil, 0, err
	}

	var rows []models.AppointmentService
	total := 0
	for i, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, 0, httperr.Validation("service_not_found")
		}
		rows = append(rows, models.AppointmentService{
			ServiceID: svc.ID,
			Position:  i + 1,
		})
		total += svc.DurationMin
	}
	return rows, total, nil
}

// requiredMinutes applies the default charge and party-size scaling.
func requiredMinutes(serviceTotal, people int) int {
	if serviceTotal == 0 {
		serviceTotal = models.DefaultServiceMinutes
	}
	if people < 1 {
		people = 1
	}
	return serviceTotal * people
}

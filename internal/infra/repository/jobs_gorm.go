package repository

import (
	"context"
	"time"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// --------------------------------------------------
// Background job queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBarbersWithActiveQueues(
	ctx context.Context,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("barber_id").
		Where("status IN ?", []string{
			string(domain.StatusCheckedIn),
			string(domain.StatusInSalon),
		}).
		Pluck("barber_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *AppointmentGormRepository) ListScheduledForDate(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Barber").
		Preload("Salon").
		Where(
			"status = ? AND appointment_date = ?",
			string(domain.StatusAppointment), date.Format("2006-01-02"),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListStaleActive(
	ctx context.Context,
	before time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND check_in_time < ?",
			[]string{string(domain.StatusCheckedIn), string(domain.StatusInSalon)},
			before,
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

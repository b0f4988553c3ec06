package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("ScheduleDays").
		First(&barber, id).Error; err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	return &barber, nil
}

func (r *BarberGormRepository) SaveBarber(
	ctx context.Context,
	barber *models.Barber,
) error {
	return r.db.WithContext(ctx).
		Omit("ScheduleDays", "Salon", "User").
		Save(barber).Error
}

func (r *BarberGormRepository) ReplaceScheduleDays(
	ctx context.Context,
	barberID uint,
	days []models.BarberScheduleDay,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).
			Delete(&models.BarberScheduleDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

// --------------------------------------------------
// Leaves
// --------------------------------------------------

func (r *BarberGormRepository) GetLeave(
	ctx context.Context,
	id uint,
) (*models.BarberLeave, error) {

	var leave models.BarberLeave
	if err := r.db.WithContext(ctx).First(&leave, id).Error; err != nil {
		return nil, notFoundAs(err, "leave_not_found")
	}
	return &leave, nil
}

func (r *BarberGormRepository) CreateLeave(
	ctx context.Context,
	leave *models.BarberLeave,
) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *BarberGormRepository) UpdateLeave(
	ctx context.Context,
	leave *models.BarberLeave,
) error {
	return r.db.WithContext(ctx).Omit("Barber").Save(leave).Error
}

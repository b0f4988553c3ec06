package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

type AppointmentGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx, inTx: true})
	})
}

// hot rows are read FOR UPDATE inside a transaction
func (r *AppointmentGormRepository) locked(q *gorm.DB) *gorm.DB {
	if r.inTx {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// --------------------------------------------------
// Salon / Barber / User
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalon(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, notFoundAs(err, "salon_not_found")
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) UpdateSalon(
	ctx context.Context,
	salon *models.Salon,
) error {
	return r.db.WithContext(ctx).Save(salon).Error
}

func (r *AppointmentGormRepository) HasApprovedLeave(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BarberLeave{}).
		Where(
			"barber_id = ? AND status = ? AND availability_status = ? AND start_date <= ? AND end_date >= ?",
			barberID, models.LeaveApproved, models.BarberUnavailable,
			date.Format("2006-01-02"), date.Format("2006-01-02"),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) GetBarber(
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

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundAs(err, "user_not_found")
	}
	return &user, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServicesByID(
	ctx context.Context,
	salonID uint,
	ids []uint,
) (map[uint]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ? AND active = true", salonID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	return byID, nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSessionForDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (*models.BarberSession, error) {

	var session models.BarberSession
	if err := r.locked(r.db.WithContext(ctx)).
		Where("barber_id = ? AND session_date = ?", barberID, date.Format("2006-01-02")).
		First(&session).Error; err != nil {
		return nil, notFoundAs(err, "session_not_found")
	}
	return &session, nil
}

func (r *AppointmentGormRepository) SaveSession(
	ctx context.Context,
	session *models.BarberSession,
) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.locked(r.db.WithContext(ctx)).First(&slot, id).Error; err != nil {
		return nil, notFoundAs(err, "slot_not_found")
	}
	return &slot, nil
}

func (r *AppointmentGormRepository) ListFreeSlotsFrom(
	ctx context.Context,
	sessionID uint,
	fromHM string,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.locked(r.db.WithContext(ctx)).
		Where(
			"barber_session_id = ? AND is_booked = false AND start_time >= ?",
			sessionID, fromHM,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentGormRepository) ListSlotsInWindow(
	ctx context.Context,
	sessionID uint,
	fromHM string,
	toHM string,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.locked(r.db.WithContext(ctx)).
		Where(
			"barber_session_id = ? AND start_time >= ? AND start_time < ?",
			sessionID, fromHM, toHM,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentGormRepository) SetSlotsBooked(
	ctx context.Context,
	slotIDs []uint,
	booked bool,
) error {
	if len(slotIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id IN ?", slotIDs).
		Update("is_booked", booked).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Preload("User").
		Preload("Barber").
		Preload("Salon").
		First(&ap, id).Error; err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "User", "Barber", "Salon").
		Save(ap).Error
}

func (r *AppointmentGormRepository) HasActiveAppointment(
	ctx context.Context,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"user_id = ? AND status IN ?",
			userID,
			[]string{string(domain.StatusCheckedIn), string(domain.StatusInSalon)},
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) GetInSalon(
	ctx context.Context,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where("barber_id = ? AND status = ?", barberID, string(domain.StatusInSalon)).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListActiveQueue(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Preload("User").
		Where(
			"barber_id = ? AND status IN ?",
			barberID,
			[]string{string(domain.StatusCheckedIn), string(domain.StatusInSalon)},
		).
		Order("queue_position ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListCheckedInBySalon(
	ctx context.Context,
	salonID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where("salon_id = ? AND status = ?", salonID, string(domain.StatusCheckedIn)).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

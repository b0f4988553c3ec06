package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// ScheduleGormRepository backs the session generator. Missing rows are
// reported as nil results, not errors: the generator treats absence as
// a normal state.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

const dateLayout = "2006-01-02"

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("ScheduleDays").
		First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) ListAvailableBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Preload("ScheduleDays").
		Where("availability_status = ?", models.BarberAvailable).
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *ScheduleGormRepository) LastSessionDate(
	ctx context.Context,
	barberID uint,
) (*time.Time, error) {

	var session models.BarberSession
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("session_date DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session.SessionDate, nil
}

func (r *ScheduleGormRepository) SessionExists(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BarberSession{}).
		Where("barber_id = ? AND session_date = ?", barberID, date.Format(dateLayout)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) GetSessionForDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (*models.BarberSession, error) {

	var session models.BarberSession
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND session_date = ?", barberID, date.Format(dateLayout)).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ScheduleGormRepository) CreateSession(
	ctx context.Context,
	session *models.BarberSession,
) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *ScheduleGormRepository) UpdateSession(
	ctx context.Context,
	session *models.BarberSession,
) error {
	return r.db.WithContext(ctx).Omit("Slots", "Barber").Save(session).Error
}

func (r *ScheduleGormRepository) DeleteSession(
	ctx context.Context,
	sessionID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_session_id = ?", sessionID).
			Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BarberSession{}, sessionID).Error
	})
}

func (r *ScheduleGormRepository) DeleteSessionsBefore(
	ctx context.Context,
	barberID uint,
	date time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"barber_id = ? AND slot_date < ?",
			barberID, date.Format(dateLayout),
		).Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		return tx.Where(
			"barber_id = ? AND session_date < ?",
			barberID, date.Format(dateLayout),
		).Delete(&models.BarberSession{}).Error
	})
}

func (r *ScheduleGormRepository) ListSessionsBetween(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.BarberSession, error) {

	var sessions []models.BarberSession
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND session_date >= ? AND session_date <= ?",
			barberID, from.Format(dateLayout), to.Format(dateLayout),
		).
		Order("session_date ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.Slot,
) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *ScheduleGormRepository) CountSlots(
	ctx context.Context,
	sessionID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("barber_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *ScheduleGormRepository) CountBookedSlots(
	ctx context.Context,
	sessionID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("barber_session_id = ? AND is_booked = true", sessionID).
		Count(&count).Error
	return count, err
}

func (r *ScheduleGormRepository) DeleteSlotsForSession(
	ctx context.Context,
	sessionID uint,
) error {
	return r.db.WithContext(ctx).
		Where("barber_session_id = ?", sessionID).
		Delete(&models.Slot{}).Error
}

func (r *ScheduleGormRepository) DeleteFutureSlots(
	ctx context.Context,
	barberID uint,
	from time.Time,
) error {
	return r.db.WithContext(ctx).
		Where("barber_id = ? AND slot_date >= ?", barberID, from.Format(dateLayout)).
		Delete(&models.Slot{}).Error
}

// --------------------------------------------------
// Leaves / Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListApprovedLeaves(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.BarberLeave, error) {

	var leaves []models.BarberLeave
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			barberID, models.LeaveApproved,
			to.Format(dateLayout), from.Format(dateLayout),
		).
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *ScheduleGormRepository) ListFutureScheduled(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where(
			"barber_id = ? AND status = ? AND appointment_date >= ?",
			barberID, string(domain.StatusAppointment), from.Format(dateLayout),
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "User", "Barber", "Salon").
		Save(ap).Error
}

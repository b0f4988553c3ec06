package appointment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// MockRepository is a mock implementation of the lifecycle Repository.
// WithTx runs the closure against the same mock, so expectations cover
// transactional calls too.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockRepository) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Salon), args.Error(1)
}

func (m *MockRepository) UpdateSalon(ctx context.Context, salon *models.Salon) error {
	return m.Called(ctx, salon).Error(0)
}

func (m *MockRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barber), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) HasApprovedLeave(ctx context.Context, barberID uint, date time.Time) (bool, error) {
	args := m.Called(ctx, barberID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetServicesByID(ctx context.Context, salonID uint, ids []uint) (map[uint]models.Service, error) {
	args := m.Called(ctx, salonID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]models.Service), args.Error(1)
}

func (m *MockRepository) GetSessionForDate(ctx context.Context, barberID uint, date time.Time) (*models.BarberSession, error) {
	args := m.Called(ctx, barberID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarberSession), args.Error(1)
}

func (m *MockRepository) SaveSession(ctx context.Context, session *models.BarberSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockRepository) GetSlot(ctx context.Context, id uint) (*models.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockRepository) ListFreeSlotsFrom(ctx context.Context, sessionID uint, fromHM string) ([]models.Slot, error) {
	args := m.Called(ctx, sessionID, fromHM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Slot), args.Error(1)
}

func (m *MockRepository) ListSlotsInWindow(ctx context.Context, sessionID uint, fromHM, toHM string) ([]models.Slot, error) {
	args := m.Called(ctx, sessionID, fromHM, toHM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Slot), args.Error(1)
}

func (m *MockRepository) SetSlotsBooked(ctx context.Context, slotIDs []uint, booked bool) error {
	return m.Called(ctx, slotIDs, booked).Error(0)
}

func (m *MockRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *MockRepository) HasActiveAppointment(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetInSalon(ctx context.Context, barberID uint) (*models.Appointment, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) ListActiveQueue(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateQueueFields(ctx context.Context, id uint, position, wait int) error {
	return m.Called(ctx, id, position, wait).Error(0)
}

func (m *MockRepository) ListCheckedInBySalon(ctx context.Context, salonID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

// MockEvents records lifecycle event emissions.
type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) AppointmentCreated(ap *models.Appointment)     { m.Called(ap) }
func (m *MockEvents) AppointmentCompleted(ap *models.Appointment)   { m.Called(ap) }
func (m *MockEvents) AppointmentTransferred(ap *models.Appointment) { m.Called(ap) }

func (m *MockEvents) AppointmentCancelled(ap *models.Appointment, message string) {
	m.Called(ap, message)
}

func (m *MockEvents) BoardChanged(barberID uint, board []models.Appointment) {
	m.Called(barberID, board)
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

func appointmentBarber() *models.Barber {
	return &models.Barber{
		ID:                 6,
		SalonID:            1,
		Category:           models.CategoryAppointment,
		AvailabilityStatus: models.BarberAvailable,
	}
}

func sessionSlot(id uint, start, end string) models.Slot {
	return models.Slot{
		ID:              id,
		BarberSessionID: 9,
		BarberID:        6,
		SlotDate:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		EndTime:         end,
	}
}

func TestCreateScheduled_BooksConsecutiveRun(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEvents)

	first := sessionSlot(31, "09:00", "09:15")
	free := []models.Slot{
		first,
		sessionSlot(32, "09:15", "09:30"),
		sessionSlot(33, "09:30", "09:45"),
	}

	repo.On("GetSalon", mock.Anything, uint(1)).Return(openSalon(), nil)
	repo.On("GetBarber", mock.Anything, uint(6)).Return(appointmentBarber(), nil)
	repo.On("GetServicesByID", mock.Anything, uint(1), []uint{4}).Return(map[uint]models.Service{
		4: {ID: 4, DurationMin: 30},
	}, nil)
	repo.On("WithTx", mock.Anything).Return(nil)
	repo.On("GetSlot", mock.Anything, uint(31)).Return(&first, nil)
	repo.On("ListFreeSlotsFrom", mock.Anything, uint(9), "09:00").Return(free, nil)
	repo.On("SetSlotsBooked", mock.Anything, []uint{31, 32}, true).Return(nil)
	repo.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Appointment).ID = 88
	})

	full := &models.Appointment{ID: 88, BarberID: 6, StartTime: "09:00", EndTime: "09:30"}
	repo.On("GetAppointment", mock.Anything, uint(88)).Return(full, nil)
	events.On("AppointmentCreated", full).Return()

	ap, err := NewCreateScheduled(repo, events, 15).Execute(context.Background(), CreateScheduledInput{
		UserID:     2,
		SalonID:    1,
		BarberID:   6,
		SlotID:     31,
		ServiceIDs: []uint{4},
	})

	assert.NoError(t, err)
	assert.Equal(t, "09:30", ap.EndTime, "30-minute service books exactly two slots")
	repo.AssertCalled(t, "SetSlotsBooked", mock.Anything, []uint{31, 32}, true)
}

func TestCreateScheduled_SlotAlreadyBooked(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEvents)

	booked := sessionSlot(31, "09:00", "09:15")
	booked.IsBooked = true

	repo.On("GetSalon", mock.Anything, uint(1)).Return(openSalon(), nil)
	repo.On("GetBarber", mock.Anything, uint(6)).Return(appointmentBarber(), nil)
	repo.On("WithTx", mock.Anything).Return(nil)
	repo.On("GetSlot", mock.Anything, uint(31)).Return(&booked, nil)

	_, err := NewCreateScheduled(repo, events, 15).Execute(context.Background(), CreateScheduledInput{
		UserID:   2,
		SalonID:  1,
		BarberID: 6,
		SlotID:   31,
	})

	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
	repo.AssertNotCalled(t, "SetSlotsBooked", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateScheduled_GapBlocksRun(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEvents)

	first := sessionSlot(31, "09:00", "09:15")
	free := []models.Slot{
		first,
		sessionSlot(33, "09:30", "09:45"), // 09:15 already booked
	}

	repo.On("GetSalon", mock.Anything, uint(1)).Return(openSalon(), nil)
	repo.On("GetBarber", mock.Anything, uint(6)).Return(appointmentBarber(), nil)
	repo.On("GetServicesByID", mock.Anything, uint(1), []uint{4}).Return(map[uint]models.Service{
		4: {ID: 4, DurationMin: 30},
	}, nil)
	repo.On("WithTx", mock.Anything).Return(nil)
	repo.On("GetSlot", mock.Anything, uint(31)).Return(&first, nil)
	repo.On("ListFreeSlotsFrom", mock.Anything, uint(9), "09:00").Return(free, nil)

	_, err := NewCreateScheduled(repo, events, 15).Execute(context.Background(), CreateScheduledInput{
		UserID:     2,
		SalonID:    1,
		BarberID:   6,
		SlotID:     31,
		ServiceIDs: []uint{4},
	})

	assert.True(t, httperr.IsBusiness(err, "insufficient_consecutive_slots"))
	repo.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

package barber

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

func leaveDates() (time.Time, time.Time) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 2)
}

func TestRequestLeave_DefaultsToUnavailable(t *testing.T) {
	repo := new(MockRepository)

	start, end := leaveDates()
	repo.On("GetBarber", mock.Anything, uint(5)).Return(weekBarber(), nil)
	repo.On("CreateLeave", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BarberLeave).ID = 3
	})

	got, err := NewRequestLeave(repo).Execute(context.Background(), RequestLeaveInput{
		BarberID:  5,
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, models.LeavePending, got.Status)
	assert.Equal(t, models.BarberUnavailable, got.AvailabilityStatus)
}

func TestRequestLeave_Rejections(t *testing.T) {
	start, end := leaveDates()

	tests := []struct {
		name     string
		in       RequestLeaveInput
		wantCode string
	}{
		{
			name:     "end before start",
			in:       RequestLeaveInput{BarberID: 5, StartDate: end, EndDate: start},
			wantCode: "leave_end_before_start",
		},
		{
			name: "unknown availability status",
			in: RequestLeaveInput{
				BarberID:           5,
				StartDate:          start,
				EndDate:            end,
				AvailabilityStatus: "half-day",
			},
			wantCode: "invalid_availability_status",
		},
		{
			name: "available without override window",
			in: RequestLeaveInput{
				BarberID:           5,
				StartDate:          start,
				EndDate:            end,
				AvailabilityStatus: models.BarberAvailable,
			},
			wantCode: "leave_override_required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)

			_, err := NewRequestLeave(repo).Execute(context.Background(), tt.in)

			assert.True(t, httperr.IsBusiness(err, tt.wantCode))
			repo.AssertNotCalled(t, "CreateLeave", mock.Anything, mock.Anything)
		})
	}
}

func TestDecideLeave_Deny(t *testing.T) {
	repo := new(MockRepository)

	start, end := leaveDates()
	leave := &models.BarberLeave{ID: 3, BarberID: 5, Status: models.LeavePending, StartDate: start, EndDate: end}

	repo.On("GetLeave", mock.Anything, uint(3)).Return(leave, nil)
	repo.On("UpdateLeave", mock.Anything, leave).Return(nil)

	got, err := NewDecideLeave(repo, nil).Execute(context.Background(), 3, false)

	assert.NoError(t, err)
	assert.Equal(t, models.LeaveDenied, got.Status)
}

func TestDecideLeave_ApproveAppliesToSessions(t *testing.T) {
	repo := new(MockRepository)

	start, end := leaveDates()
	leave := &models.BarberLeave{
		ID:                 3,
		BarberID:           5,
		Status:             models.LeavePending,
		AvailabilityStatus: models.BarberUnavailable,
		StartDate:          start,
		EndDate:            end,
	}

	repo.On("GetLeave", mock.Anything, uint(3)).Return(leave, nil)
	repo.On("UpdateLeave", mock.Anything, leave).Return(nil)

	got, err := NewDecideLeave(repo, newStubGenerator(&stubScheduleRepo{})).
		Execute(context.Background(), 3, true)

	assert.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, got.Status)
}

func TestDecideLeave_AlreadyDecided(t *testing.T) {
	repo := new(MockRepository)

	leave := &models.BarberLeave{ID: 3, Status: models.LeaveApproved}
	repo.On("GetLeave", mock.Anything, uint(3)).Return(leave, nil)

	_, err := NewDecideLeave(repo, nil).Execute(context.Background(), 3, true)

	assert.True(t, httperr.IsBusiness(err, "leave_already_decided"))
	repo.AssertNotCalled(t, "UpdateLeave", mock.Anything, mock.Anything)
}

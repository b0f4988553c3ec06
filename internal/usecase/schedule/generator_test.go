package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// ------------------------------
// Mocks
// ------------------------------

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barber), args.Error(1)
}

func (m *MockRepository) ListAvailableBarbers(ctx context.Context) ([]models.Barber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Barber), args.Error(1)
}

func (m *MockRepository) LastSessionDate(ctx context.Context, barberID uint) (*time.Time, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRepository) SessionExists(ctx context.Context, barberID uint, date time.Time) (bool, error) {
	args := m.Called(ctx, barberID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetSessionForDate(ctx context.Context, barberID uint, date time.Time) (*models.BarberSession, error) {
	args := m.Called(ctx, barberID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarberSession), args.Error(1)
}

func (m *MockRepository) CreateSession(ctx context.Context, session *models.BarberSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockRepository) UpdateSession(ctx context.Context, session *models.BarberSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockRepository) DeleteSession(ctx context.Context, sessionID uint) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockRepository) DeleteSessionsBefore(ctx context.Context, barberID uint, date time.Time) error {
	return m.Called(ctx, barberID, date).Error(0)
}

func (m *MockRepository) ListSessionsBetween(ctx context.Context, barberID uint, from, to time.Time) ([]models.BarberSession, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarberSession), args.Error(1)
}

func (m *MockRepository) CreateSlots(ctx context.Context, slots []models.Slot) error {
	return m.Called(ctx, slots).Error(0)
}

func (m *MockRepository) CountSlots(ctx context.Context, sessionID uint) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountBookedSlots(ctx context.Context, sessionID uint) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteSlotsForSession(ctx context.Context, sessionID uint) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockRepository) DeleteFutureSlots(ctx context.Context, barberID uint, from time.Time) error {
	return m.Called(ctx, barberID, from).Error(0)
}

func (m *MockRepository) ListApprovedLeaves(ctx context.Context, barberID uint, from, to time.Time) ([]models.BarberLeave, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarberLeave), args.Error(1)
}

func (m *MockRepository) ListFutureScheduled(ctx context.Context, barberID uint, from time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) BarberUnavailable(barberID uint, date time.Time, reason string) {
	m.Called(barberID, date, reason)
}

func (m *MockEventSink) AppointmentCancelled(ap *models.Appointment, message string) {
	m.Called(ap, message)
}

// ------------------------------
// Fixtures
// ------------------------------

// Monday
var genNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func everyDayBarber() *models.Barber {
	b := &models.Barber{
		ID:             5,
		SalonID:        1,
		Category:       models.CategoryWalkIn,
		NonWorkingDays: "6,7",
	}
	for wd := 1; wd <= 7; wd++ {
		b.ScheduleDays = append(b.ScheduleDays, models.BarberScheduleDay{
			Weekday:   wd,
			StartTime: strPtr("09:00"),
			EndTime:   strPtr("10:00"),
		})
	}
	return b
}

func newTestGenerator(repo *MockRepository, events *MockEventSink) *Generator {
	g := NewGenerator(repo, events, zap.NewNop(), 15, 1)
	g.now = func() time.Time { return genNow }
	return g
}

// ------------------------------
// GenerateForBarber
// ------------------------------

func TestGenerateForBarber_OneWeekHorizon(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()

	repo.On("GetBarber", mock.Anything, uint(5)).Return(barber, nil)
	repo.On("LastSessionDate", mock.Anything, uint(5)).Return(nil, nil)
	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("SessionExists", mock.Anything, uint(5), mock.Anything).Return(false, nil)
	repo.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, ReasonNonWorkingDay).Return()

	err := newTestGenerator(repo, events).GenerateForBarber(context.Background(), 5)

	assert.NoError(t, err)
	// Mon..Fri get sessions, Sat+Sun emit unavailability
	repo.AssertNumberOfCalls(t, "CreateSession", 5)
	events.AssertNumberOfCalls(t, "BarberUnavailable", 2)
	// walk-in barber: no slot grids
	repo.AssertNotCalled(t, "CreateSlots", mock.Anything, mock.Anything)
	repo.AssertCalled(t, "DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything)
}

func TestGenerateForBarber_SessionCapacityFromWindow(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	barber.Category = models.CategoryAppointment

	var created []*models.BarberSession
	repo.On("GetBarber", mock.Anything, uint(5)).Return(barber, nil)
	repo.On("LastSessionDate", mock.Anything, uint(5)).Return(nil, nil)
	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("SessionExists", mock.Anything, uint(5), mock.Anything).Return(false, nil)
	repo.On("CreateSession", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*models.BarberSession))
	})
	repo.On("CreateSlots", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, mock.Anything).Return()

	err := newTestGenerator(repo, events).GenerateForBarber(context.Background(), 5)

	assert.NoError(t, err)
	assert.NotEmpty(t, created)
	for _, s := range created {
		assert.Equal(t, 60, s.TotalTime)
		assert.Equal(t, 60, s.RemainingTime)
		assert.Equal(t, models.CategoryAppointment, s.Category)
	}
	// each 09:00-10:00 appointment session gets its four-slot grid
	repo.AssertNumberOfCalls(t, "CreateSlots", len(created))
}

func TestGenerateForBarber_ContinuesAfterLastSession(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	last := genNow.AddDate(0, 0, 3) // Thursday

	repo.On("GetBarber", mock.Anything, uint(5)).Return(barber, nil)
	repo.On("LastSessionDate", mock.Anything, uint(5)).Return(&last, nil)
	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("SessionExists", mock.Anything, uint(5), mock.Anything).Return(false, nil)
	repo.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, mock.Anything).Return()

	err := newTestGenerator(repo, events).GenerateForBarber(context.Background(), 5)

	assert.NoError(t, err)
	// only Friday remains workable between Thursday and the Sunday horizon
	repo.AssertNumberOfCalls(t, "CreateSession", 1)
}

func TestGenerateForBarber_ExistingSessionsUntouched(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	repo.On("GetBarber", mock.Anything, uint(5)).Return(everyDayBarber(), nil)
	repo.On("LastSessionDate", mock.Anything, uint(5)).Return(nil, nil)
	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("SessionExists", mock.Anything, uint(5), mock.Anything).Return(true, nil)
	repo.On("DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, mock.Anything).Return()

	err := newTestGenerator(repo, events).GenerateForBarber(context.Background(), 5)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestGenerateForBarber_LeaveBlocksDates(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	leave := models.BarberLeave{
		BarberID:           5,
		Status:             models.LeaveApproved,
		AvailabilityStatus: models.BarberUnavailable,
		StartDate:          genNow,                  // Monday
		EndDate:            genNow.AddDate(0, 0, 1), // Tuesday
	}

	repo.On("GetBarber", mock.Anything, uint(5)).Return(barber, nil)
	repo.On("LastSessionDate", mock.Anything, uint(5)).Return(nil, nil)
	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{leave}, nil)
	repo.On("SessionExists", mock.Anything, uint(5), mock.Anything).Return(false, nil)
	repo.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteSessionsBefore", mock.Anything, uint(5), mock.Anything).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, mock.Anything).Return()

	err := newTestGenerator(repo, events).GenerateForBarber(context.Background(), 5)

	assert.NoError(t, err)
	// Wed, Thu, Fri only
	repo.AssertNumberOfCalls(t, "CreateSession", 3)
	// Mon+Tue on leave, Sat+Sun non-working
	events.AssertNumberOfCalls(t, "BarberUnavailable", 4)
}

// ------------------------------
// Non-working-day diff
// ------------------------------

func TestApplyNonWorkingDiff_DropsNewlyForbiddenDay(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	session := &models.BarberSession{ID: 9, BarberID: 5}

	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("GetSessionForDate", mock.Anything, uint(5), wednesday).Return(session, nil)
	repo.On("DeleteSession", mock.Anything, uint(9)).Return(nil)
	events.On("BarberUnavailable", uint(5), wednesday, ReasonNonWorkingDay).Return()

	err := newTestGenerator(repo, events).ApplyNonWorkingDiff(context.Background(), barber,
		map[int]bool{}, map[int]bool{3: true})

	assert.NoError(t, err)
	// only the flipped weekday is touched
	repo.AssertNumberOfCalls(t, "GetSessionForDate", 1)
	repo.AssertCalled(t, "DeleteSession", mock.Anything, uint(9))
	events.AssertCalled(t, "BarberUnavailable", uint(5), wednesday, ReasonNonWorkingDay)
}

func TestApplyNonWorkingDiff_LookupFailureContinues(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	repo.On("ListApprovedLeaves", mock.Anything, uint(5), mock.Anything, mock.Anything).
		Return([]models.BarberLeave{}, nil)
	repo.On("GetSessionForDate", mock.Anything, uint(5), wednesday).
		Return(nil, errors.New("connection reset"))

	err := newTestGenerator(repo, events).ApplyNonWorkingDiff(context.Background(), barber,
		map[int]bool{}, map[int]bool{3: true})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
}

// ------------------------------
// Category switch
// ------------------------------

func TestSwitchToWalkIn_CancelsFutureScheduled(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	barber := everyDayBarber()
	barber.Category = models.CategoryWalkIn

	future := []models.Appointment{
		{ID: 1, BarberID: 5, Status: string(domain.StatusAppointment)},
		{ID: 2, BarberID: 5, Status: string(domain.StatusAppointment)},
	}
	sessions := []models.BarberSession{
		{ID: 9, BarberID: 5, Category: models.CategoryAppointment},
	}

	repo.On("ListFutureScheduled", mock.Anything, uint(5), mock.Anything).Return(future, nil)
	repo.On("UpdateAppointment", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteFutureSlots", mock.Anything, uint(5), mock.Anything).Return(nil)
	repo.On("ListSessionsBetween", mock.Anything, uint(5), mock.Anything, mock.Anything).Return(sessions, nil)
	repo.On("UpdateSession", mock.Anything, mock.Anything).Return(nil)
	events.On("AppointmentCancelled", mock.Anything, mock.Anything).Return()

	err := newTestGenerator(repo, events).SwitchToWalkIn(context.Background(), barber)

	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "UpdateAppointment", 2)
	events.AssertNumberOfCalls(t, "AppointmentCancelled", 2)
	repo.AssertCalled(t, "DeleteFutureSlots", mock.Anything, uint(5), mock.Anything)
}

// ------------------------------
// Leave approval
// ------------------------------

func TestApplyApprovedLeave_UnavailableRemovesSessions(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	leave := &models.BarberLeave{
		BarberID:           5,
		Status:             models.LeaveApproved,
		AvailabilityStatus: models.BarberUnavailable,
		StartDate:          genNow.AddDate(0, 0, 1),
		EndDate:            genNow.AddDate(0, 0, 2),
	}
	session := &models.BarberSession{ID: 9, BarberID: 5}

	repo.On("GetSessionForDate", mock.Anything, uint(5), mock.Anything).Return(session, nil)
	repo.On("DeleteSession", mock.Anything, uint(9)).Return(nil)
	events.On("BarberUnavailable", uint(5), mock.Anything, ReasonLeave).Return()

	err := newTestGenerator(repo, events).ApplyApprovedLeave(context.Background(), leave)

	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "DeleteSession", 2)
	events.AssertNumberOfCalls(t, "BarberUnavailable", 2)
}

func TestApplyApprovedLeave_LookupFailureSkipsDateOnly(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	leave := &models.BarberLeave{
		BarberID:           5,
		Status:             models.LeaveApproved,
		AvailabilityStatus: models.BarberUnavailable,
		StartDate:          genNow.AddDate(0, 0, 1),
		EndDate:            genNow.AddDate(0, 0, 2),
	}
	day1 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	session := &models.BarberSession{ID: 9, BarberID: 5}

	repo.On("GetSessionForDate", mock.Anything, uint(5), day1).
		Return(nil, errors.New("connection reset"))
	repo.On("GetSessionForDate", mock.Anything, uint(5), day2).Return(session, nil)
	repo.On("DeleteSession", mock.Anything, uint(9)).Return(nil)
	events.On("BarberUnavailable", uint(5), day2, ReasonLeave).Return()

	err := newTestGenerator(repo, events).ApplyApprovedLeave(context.Background(), leave)

	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "DeleteSession", 1)
	events.AssertNumberOfCalls(t, "BarberUnavailable", 1)
}

func TestApplyApprovedLeave_OverrideShortensWindow(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	leave := &models.BarberLeave{
		BarberID:           5,
		Status:             models.LeaveApproved,
		AvailabilityStatus: models.BarberAvailable,
		OverrideStart:      strPtr("13:00"),
		OverrideEnd:        strPtr("16:00"),
		StartDate:          genNow.AddDate(0, 0, 1),
		EndDate:            genNow.AddDate(0, 0, 1),
	}
	session := &models.BarberSession{
		ID:        9,
		BarberID:  5,
		StartTime: "09:00",
		EndTime:   "18:00",
		Category:  models.CategoryAppointment,
	}

	repo.On("GetSessionForDate", mock.Anything, uint(5), mock.Anything).Return(session, nil)
	repo.On("UpdateSession", mock.Anything, session).Return(nil)
	repo.On("CountBookedSlots", mock.Anything, uint(9)).Return(int64(0), nil)
	repo.On("DeleteSlotsForSession", mock.Anything, uint(9)).Return(nil)
	repo.On("CreateSlots", mock.Anything, mock.Anything).Return(nil)

	err := newTestGenerator(repo, events).ApplyApprovedLeave(context.Background(), leave)

	assert.NoError(t, err)
	assert.Equal(t, "13:00", session.StartTime)
	assert.Equal(t, 180, session.TotalTime)
	assert.Equal(t, 180, session.RemainingTime)
	repo.AssertCalled(t, "DeleteSlotsForSession", mock.Anything, uint(9))
}

func TestApplyApprovedLeave_BookedGridIsKept(t *testing.T) {
	repo := new(MockRepository)
	events := new(MockEventSink)

	leave := &models.BarberLeave{
		BarberID:           5,
		Status:             models.LeaveApproved,
		AvailabilityStatus: models.BarberAvailable,
		OverrideStart:      strPtr("13:00"),
		OverrideEnd:        strPtr("16:00"),
		StartDate:          genNow.AddDate(0, 0, 1),
		EndDate:            genNow.AddDate(0, 0, 1),
	}
	session := &models.BarberSession{ID: 9, BarberID: 5, StartTime: "09:00", EndTime: "18:00", Category: models.CategoryAppointment}

	repo.On("GetSessionForDate", mock.Anything, uint(5), mock.Anything).Return(session, nil)
	repo.On("UpdateSession", mock.Anything, session).Return(nil)
	repo.On("CountBookedSlots", mock.Anything, uint(9)).Return(int64(2), nil)

	err := newTestGenerator(repo, events).ApplyApprovedLeave(context.Background(), leave)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "DeleteSlotsForSession", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateSlots", mock.Anything, mock.Anything)
}

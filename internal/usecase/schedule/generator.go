package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainap "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	domain "github.com/trimsalon/salon-queue-api/internal/domain/schedule"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/timezone"
)

// Unavailability reasons attached to barber-unavailable events.
const (
	ReasonLeave              = "leave"
	ReasonNonWorkingDay      = "non_working_day"
	ReasonLeaveAndNonWorking = "leave_and_non_working_day"
)

// Generator maintains the rolling multi-week calendar of barber
// sessions and their slot grids.
type Generator struct {
	repo         Repository
	events       EventSink
	log          *zap.Logger
	slotMinutes  int
	horizonWeeks int
	now          func() time.Time
}

func NewGenerator(
	repo Repository,
	events EventSink,
	log *zap.Logger,
	slotMinutes int,
	horizonWeeks int,
) *Generator {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}
	if horizonWeeks <= 0 {
		horizonWeeks = 4
	}
	return &Generator{
		repo:         repo,
		events:       events,
		log:          log,
		slotMinutes:  slotMinutes,
		horizonWeeks: horizonWeeks,
		now:          timezone.Now,
	}
}

func (g *Generator) today() time.Time {
	return timezone.Date(g.now())
}

func (g *Generator) horizonEnd(today time.Time) time.Time {
	return today.AddDate(0, 0, g.horizonWeeks*7-1)
}

// --------------------------------------------------
// Continuation + horizon
// --------------------------------------------------

// GenerateForBarber resumes session generation from the day after the
// most recently generated session (or today when none exists) up to
// the horizon, then purges sessions older than today. Re-running is
// idempotent: it never duplicates and never gaps.
func (g *Generator) GenerateForBarber(ctx context.Context, barberID uint) error {
	barber, err := g.repo.GetBarber(ctx, barberID)
	if err != nil {
		return err
	}

	today := g.today()
	from := today
	if last, err := g.repo.LastSessionDate(ctx, barberID); err != nil {
		return err
	} else if last != nil {
		next := timezone.Date(*last).AddDate(0, 0, 1)
		if next.After(from) {
			from = next
		}
	}

	end := g.horizonEnd(today)
	if from.After(end) {
		return g.cleanupPast(ctx, barberID, today)
	}

	if err := g.generateRange(ctx, barber, from, end); err != nil {
		return err
	}

	// Cleanup runs after generation so dependent reads never race
	// with deletion of current data.
	return g.cleanupPast(ctx, barberID, today)
}

// RunHorizon is the nightly maintenance entry: continuation plus
// cleanup for every available barber. Per-barber failures are logged
// and do not abort the batch.
func (g *Generator) RunHorizon(ctx context.Context) {
	barbers, err := g.repo.ListAvailableBarbers(ctx)
	if err != nil {
		g.log.Error("horizon run: listing barbers failed", zap.Error(err))
		return
	}

	for _, b := range barbers {
		if err := g.GenerateForBarber(ctx, b.ID); err != nil {
			g.log.Error("horizon run: barber failed",
				zap.Uint("barber_id", b.ID),
				zap.Error(err),
			)
		}
	}
}

func (g *Generator) cleanupPast(ctx context.Context, barberID uint, today time.Time) error {
	return g.repo.DeleteSessionsBefore(ctx, barberID, today)
}

// --------------------------------------------------
// Range generation
// --------------------------------------------------

func (g *Generator) generateRange(
	ctx context.Context,
	barber *models.Barber,
	from time.Time,
	to time.Time,
) error {

	weekly := domain.FromScheduleDays(barber.ScheduleDays)
	nonWorking := barber.NonWorkingSet()

	leaves, err := g.repo.ListApprovedLeaves(ctx, barber.ID, from, to)
	if err != nil {
		return err
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if err := g.generateDate(ctx, barber, weekly, nonWorking, leaves, date); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateDate(
	ctx context.Context,
	barber *models.Barber,
	weekly domain.WeeklySchedule,
	nonWorking map[int]bool,
	leaves []models.BarberLeave,
	date time.Time,
) error {

	weekday := domain.ISOWeekday(date)
	window := weekly.Window(weekday)

	offLeave, override := leaveForDate(leaves, date)
	offDay := nonWorking[weekday] || !window.IsWorking()

	if offLeave || offDay {
		g.events.BarberUnavailable(barber.ID, date, unavailableReason(offLeave, offDay))
		return nil
	}

	exists, err := g.repo.SessionExists(ctx, barber.ID, date)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	start, end := *window.Start, *window.End
	if override != nil {
		start, end = *override.OverrideStart, *override.OverrideEnd
	}

	return g.createSession(ctx, barber, date, start, end)
}

func (g *Generator) createSession(
	ctx context.Context,
	barber *models.Barber,
	date time.Time,
	startHM string,
	endHM string,
) error {

	total := domain.MinutesBetween(startHM, endHM)
	session := &models.BarberSession{
		BarberID:      barber.ID,
		SessionDate:   date,
		StartTime:     startHM,
		EndTime:       endHM,
		TotalTime:     total,
		RemainingTime: total,
		Category:      barber.Category,
		Position:      barber.Position,
	}

	if err := g.repo.CreateSession(ctx, session); err != nil {
		return err
	}

	if slots := domain.BuildSlots(session, g.slotMinutes); len(slots) > 0 {
		if err := g.repo.CreateSlots(ctx, slots); err != nil {
			return err
		}
	}
	return nil
}

// leaveForDate reports whether an approved leave blocks the date, and
// the leave whose override window replaces the session times (if any).
func leaveForDate(leaves []models.BarberLeave, date time.Time) (blocked bool, override *models.BarberLeave) {
	for i := range leaves {
		l := &leaves[i]
		if l.Status != models.LeaveApproved || !l.Covers(date) {
			continue
		}
		if l.AvailabilityStatus == models.BarberUnavailable {
			return true, nil
		}
		if l.OverrideStart != nil && l.OverrideEnd != nil {
			override = l
		}
	}
	return false, override
}

func unavailableReason(offLeave, offDay bool) string {
	switch {
	case offLeave && offDay:
		return ReasonLeaveAndNonWorking
	case offLeave:
		return ReasonLeave
	default:
		return ReasonNonWorkingDay
	}
}

// --------------------------------------------------
// Non-working-day toggling (barber profile edit)
// --------------------------------------------------

// ApplyNonWorkingDiff reconciles the active horizon after the barber's
// non-working weekdays changed. Only dates whose weekday flipped are
// touched: a diff, not a regenerate-all, so already-booked slots on
// unchanged days survive.
func (g *Generator) ApplyNonWorkingDiff(
	ctx context.Context,
	barber *models.Barber,
	oldDays map[int]bool,
	newDays map[int]bool,
) error {

	weekly := domain.FromScheduleDays(barber.ScheduleDays)
	today := g.today()
	end := g.horizonEnd(today)

	leaves, err := g.repo.ListApprovedLeaves(ctx, barber.ID, today, end)
	if err != nil {
		return err
	}

	for date := today; !date.After(end); date = date.AddDate(0, 0, 1) {
		weekday := domain.ISOWeekday(date)
		if oldDays[weekday] == newDays[weekday] {
			continue
		}

		if newDays[weekday] {
			// now forbidden: drop the session and its slots
			session, err := g.repo.GetSessionForDate(ctx, barber.ID, date)
			if err != nil {
				g.log.Error("non-working diff: session lookup failed",
					zap.Time("date", date),
					zap.Error(err),
				)
				continue
			}
			if session == nil {
				continue
			}
			if err := g.repo.DeleteSession(ctx, session.ID); err != nil {
				return err
			}
			g.events.BarberUnavailable(barber.ID, date, ReasonNonWorkingDay)
			continue
		}

		// now allowed: create the missing session unless on leave
		blocked, override := leaveForDate(leaves, date)
		if blocked {
			continue
		}
		window := weekly.Window(weekday)
		if !window.IsWorking() {
			continue
		}
		exists, err := g.repo.SessionExists(ctx, barber.ID, date)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		start, endHM := *window.Start, *window.End
		if override != nil {
			start, endHM = *override.OverrideStart, *override.OverrideEnd
		}
		if err := g.createSession(ctx, barber, date, start, endHM); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------
// Category changes
// --------------------------------------------------

// BackfillSlots fills slot grids into the barber's existing future
// sessions after a walk-in → appointment switch. Sessions already
// exist from the walk-in era; they just carried no slots.
func (g *Generator) BackfillSlots(ctx context.Context, barber *models.Barber) error {
	today := g.today()
	sessions, err := g.repo.ListSessionsBetween(ctx, barber.ID, today, g.horizonEnd(today))
	if err != nil {
		return err
	}

	for i := range sessions {
		session := &sessions[i]
		session.Category = models.CategoryAppointment
		if err := g.repo.UpdateSession(ctx, session); err != nil {
			return err
		}

		count, err := g.repo.CountSlots(ctx, session.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if slots := domain.BuildSlots(session, g.slotMinutes); len(slots) > 0 {
			if err := g.repo.CreateSlots(ctx, slots); err != nil {
				return err
			}
		}
	}
	return nil
}

// SwitchToWalkIn handles the appointment → walk-in switch: every
// future slot-based appointment is canceled (customers are told to
// rebook) and all future slots disappear.
func (g *Generator) SwitchToWalkIn(ctx context.Context, barber *models.Barber) error {
	today := g.today()

	future, err := g.repo.ListFutureScheduled(ctx, barber.ID, today)
	if err != nil {
		return err
	}

	now := g.now()
	for i := range future {
		ap := &future[i]
		if err := domainap.Cancel(ap, now); err != nil {
			g.log.Warn("category switch: cancel skipped",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}
		if err := g.repo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		g.events.AppointmentCancelled(ap, "Your barber no longer takes scheduled bookings. Please check in instead.")
	}

	if err := g.repo.DeleteFutureSlots(ctx, barber.ID, today); err != nil {
		return err
	}

	sessions, err := g.repo.ListSessionsBetween(ctx, barber.ID, today, g.horizonEnd(today))
	if err != nil {
		return err
	}
	for i := range sessions {
		sessions[i].Category = models.CategoryWalkIn
		if err := g.repo.UpdateSession(ctx, &sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Leave approval
// --------------------------------------------------

// ApplyApprovedLeave mutates the sessions in the leave's date range:
// unavailable removes them, available with override replaces the
// window. Slot grids are rebuilt only when nothing is booked yet.
func (g *Generator) ApplyApprovedLeave(ctx context.Context, leave *models.BarberLeave) error {
	today := g.today()
	from := timezone.Date(leave.StartDate)
	if from.Before(today) {
		from = today
	}
	to := timezone.Date(leave.EndDate)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		session, err := g.repo.GetSessionForDate(ctx, leave.BarberID, date)
		if err != nil {
			g.log.Error("leave apply: session lookup failed",
				zap.Time("date", date),
				zap.Error(err),
			)
			continue
		}
		if session == nil {
			continue
		}

		if leave.AvailabilityStatus == models.BarberUnavailable {
			if err := g.repo.DeleteSession(ctx, session.ID); err != nil {
				return err
			}
			g.events.BarberUnavailable(leave.BarberID, date, ReasonLeave)
			continue
		}

		if leave.OverrideStart == nil || leave.OverrideEnd == nil {
			continue
		}

		session.StartTime = *leave.OverrideStart
		session.EndTime = *leave.OverrideEnd
		total := domain.MinutesBetween(session.StartTime, session.EndTime)
		session.TotalTime = total
		session.RemainingTime = total
		if err := g.repo.UpdateSession(ctx, session); err != nil {
			return err
		}

		if session.Category != models.CategoryAppointment {
			continue
		}
		booked, err := g.repo.CountBookedSlots(ctx, session.ID)
		if err != nil {
			return err
		}
		if booked > 0 {
			// keep the existing grid rather than destroy sold slots
			g.log.Warn("leave override kept old slot grid",
				zap.Uint("session_id", session.ID),
			)
			continue
		}
		if err := g.repo.DeleteSlotsForSession(ctx, session.ID); err != nil {
			return err
		}
		if slots := domain.BuildSlots(session, g.slotMinutes); len(slots) > 0 {
			if err := g.repo.CreateSlots(ctx, slots); err != nil {
				return err
			}
		}
	}
	return nil
}

package queue

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// Engine computes wait times and queue positions for the walk-in
// customers sharing one barber's timeline.
type Engine struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewEngine(repo Repository, log *zap.Logger) *Engine {
	return &Engine{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// EstimateNewArrival returns the wait and position a new walk-in would
// receive at the back of the barber's queue.
func (e *Engine) EstimateNewArrival(
	ctx context.Context,
	barberID uint,
) (wait int, position int, err error) {

	queue, err := e.repo.ListActiveQueue(ctx, barberID)
	if err != nil {
		return 0, 0, err
	}

	n := len(queue)
	if n == 0 {
		return 0, 1, nil
	}

	// Only occupant is already in the chair: the new arrival waits
	// for whatever is left of that service.
	if n == 1 && domain.Status(queue[0].Status) == domain.StatusInSalon {
		return domain.RemainingServiceMinutes(&queue[0], e.now()), 2, nil
	}

	last := queue[n-1]
	return last.EstimatedWaitTime + last.TotalServiceMinutes(), n + 1, nil
}

// Recalculate re-derives queue_position and estimated_wait_time for
// every active member from scratch. The in_salon member (if any) is
// pinned to position 1 with wait 0 and its remaining service time is
// the pending time carried to the next member; each later member gets
// position = previous+1 and wait = previous wait + previous charge.
// Full recompute, not incremental, so repeated runs cannot drift.
func (e *Engine) Recalculate(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {

	queue, err := e.repo.ListActiveQueue(ctx, barberID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	prevWait := 0
	prevCharge := 0

	for i := range queue {
		ap := &queue[i]

		position := i + 1
		wait := 0
		if i == 0 {
			if domain.Status(ap.Status) == domain.StatusInSalon {
				prevCharge = domain.RemainingServiceMinutes(ap, now)
			} else {
				prevCharge = ap.TotalServiceMinutes()
			}
		} else {
			wait = prevWait + prevCharge
			prevCharge = ap.TotalServiceMinutes()
		}
		prevWait = wait

		if ap.QueuePosition != position || ap.EstimatedWaitTime != wait {
			if err := e.repo.UpdateQueueFields(ctx, ap.ID, position, wait); err != nil {
				return nil, err
			}
		}
		ap.QueuePosition = position
		ap.EstimatedWaitTime = wait
	}

	return queue, nil
}

// ApplyDelay adds extraMinutes to the named appointment's wait and
// propagates the same delta to every later member of the same queue.
// Positions are left unchanged.
func (e *Engine) ApplyDelay(
	ctx context.Context,
	appointmentID uint,
	extraMinutes int,
) ([]models.Appointment, error) {

	if extraMinutes <= 0 {
		return nil, httperr.Validation("invalid_delay_minutes")
	}

	target, err := e.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.IsActive(domain.Status(target.Status)) {
		return nil, httperr.Conflict("appointment_not_in_queue")
	}

	queue, err := e.repo.ListActiveQueue(ctx, target.BarberID)
	if err != nil {
		return nil, err
	}

	for i := range queue {
		ap := &queue[i]
		if ap.QueuePosition < target.QueuePosition {
			continue
		}
		wait := ap.EstimatedWaitTime + extraMinutes
		if err := e.repo.UpdateQueueFields(ctx, ap.ID, ap.QueuePosition, wait); err != nil {
			return nil, err
		}
		ap.EstimatedWaitTime = wait
	}

	e.log.Info("manual delay applied",
		zap.Uint("appointment_id", appointmentID),
		zap.Int("extra_minutes", extraMinutes),
	)

	return queue, nil
}

package appointment

import (
	"context"

	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/usecase/queue"
)

// AddDelay lets staff push a member's wait back by a few minutes; the
// delta cascades to everyone behind them in the queue.
type AddDelay struct {
	engine *queue.Engine
	events Events
}

func NewAddDelay(engine *queue.Engine, events Events) *AddDelay {
	return &AddDelay{
		engine: engine,
		events: events,
	}
}

func (uc *AddDelay) Execute(
	ctx context.Context,
	appointmentID uint,
	extraMinutes int,
) ([]models.Appointment, error) {

	board, err := uc.engine.ApplyDelay(ctx, appointmentID, extraMinutes)
	if err != nil {
		return nil, err
	}

	if len(board) > 0 {
		uc.events.BoardChanged(board[0].BarberID, board)
	}
	return board, nil
}

package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/trimsalon/salon-queue-api/internal/notify"
	"github.com/trimsalon/salon-queue-api/internal/queuecache"
	"github.com/trimsalon/salon-queue-api/internal/realtime"
	"github.com/trimsalon/salon-queue-api/internal/timezone"
	appointmentuc "github.com/trimsalon/salon-queue-api/internal/usecase/appointment"
	scheduleuc "github.com/trimsalon/salon-queue-api/internal/usecase/schedule"
)

// Daily job schedule, local salon time.
const (
	reminderHour = 8
	horizonHour  = 3
	sweepHour    = 23
)

// LowWaitThresholdMinutes is the band below which a waiting customer
// gets the "almost your turn" push.
const LowWaitThresholdMinutes = 10

// Runner owns the recurring jobs: the per-minute queue tick and the
// daily reminder/horizon/sweep passes. Start launches one goroutine;
// Stop blocks until it drains.
type Runner struct {
	repo      Repository
	status    *appointmentuc.UpdateStatus
	cancel    *appointmentuc.CancelAppointment
	generator *scheduleuc.Generator

	events   appointmentuc.Events
	notifier *notify.Notifier
	hub      *realtime.Hub
	cache    *queuecache.Cache

	log *zap.Logger
	now func() time.Time

	stop chan struct{}
	wg   sync.WaitGroup

	// date-stamped guards so each daily job fires once per day
	lastReminder string
	lastHorizon  string
	lastSweep    string
}

func NewRunner(
	repo Repository,
	status *appointmentuc.UpdateStatus,
	cancel *appointmentuc.CancelAppointment,
	generator *scheduleuc.Generator,
	events appointmentuc.Events,
	notifier *notify.Notifier,
	hub *realtime.Hub,
	cache *queuecache.Cache,
	log *zap.Logger,
) *Runner {
	return &Runner{
		repo:      repo,
		status:    status,
		cancel:    cancel,
		generator: generator,
		events:    events,
		notifier:  notifier,
		hub:       hub,
		cache:     cache,
		log:       log,
		now:       timezone.Now,
		stop:      make(chan struct{}),
	}
}

func (r *Runner) Start() {
	r.wg.Add(1)
	go r.loop()
	r.log.Info("background jobs started")
}

func (r *Runner) Stop() {
	close(r.stop)
	r.wg.Wait()
	r.log.Info("background jobs stopped")
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
			r.TickQueues(ctx)
			r.runDaily(ctx)
			cancel()
		case <-r.stop:
			return
		}
	}
}

func (r *Runner) runDaily(ctx context.Context) {
	now := r.now()
	today := now.Format("2006-01-02")

	if now.Hour() >= horizonHour && r.lastHorizon != today {
		r.lastHorizon = today
		r.generator.RunHorizon(ctx)
	}
	if now.Hour() >= reminderHour && r.lastReminder != today {
		r.lastReminder = today
		r.SendDailyReminders(ctx)
	}
	if now.Hour() >= sweepHour && r.lastSweep != today {
		r.lastSweep = today
		r.SweepStaleCheckIns(ctx)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trimsalon/salon-queue-api/internal/config"
	dbpkg "github.com/trimsalon/salon-queue-api/internal/db"
	infraRepo "github.com/trimsalon/salon-queue-api/internal/infra/repository"
	"github.com/trimsalon/salon-queue-api/internal/jobs"
	"github.com/trimsalon/salon-queue-api/internal/logger"
	"github.com/trimsalon/salon-queue-api/internal/metrics"
	"github.com/trimsalon/salon-queue-api/internal/notify"
	"github.com/trimsalon/salon-queue-api/internal/queuecache"
	"github.com/trimsalon/salon-queue-api/internal/realtime"
	"github.com/trimsalon/salon-queue-api/internal/routes"
	appointmentuc "github.com/trimsalon/salon-queue-api/internal/usecase/appointment"
	barberuc "github.com/trimsalon/salon-queue-api/internal/usecase/barber"
	"github.com/trimsalon/salon-queue-api/internal/usecase/queue"
	salonuc "github.com/trimsalon/salon-queue-api/internal/usecase/salon"
	scheduleuc "github.com/trimsalon/salon-queue-api/internal/usecase/schedule"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(gin.Mode() != gin.ReleaseMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg)

	cache := queuecache.New(cfg.RedisAddr, cfg.RedisPassword)
	defer cache.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(ctx); err != nil {
			zlog.Warn("redis unreachable, boards served from postgres", zap.Error(err))
		}
		cancel()
	}

	// ======================================================
	// SINGLETONS
	// ======================================================
	hub := realtime.NewHub(zlog)
	go hub.Run()

	notifier := notify.New(cfg, db, zlog)
	m := metrics.New()
	fanout := notify.NewFanout(notifier, hub, cache, m, db, zlog)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	barberRepo := infraRepo.NewBarberGormRepository(db)

	engine := queue.NewEngine(appointmentRepo, zlog)
	generator := scheduleuc.NewGenerator(scheduleRepo, fanout, zlog, cfg.SlotMinutes, cfg.HorizonWeeks)

	// ======================================================
	// USE CASES
	// ======================================================
	createWalkInUC := appointmentuc.NewCreateWalkIn(appointmentRepo, engine, fanout)
	createScheduledUC := appointmentuc.NewCreateScheduled(appointmentRepo, fanout, cfg.SlotMinutes)
	updateStatusUC := appointmentuc.NewUpdateStatus(appointmentRepo, engine, fanout)
	cancelUC := appointmentuc.NewCancelAppointment(appointmentRepo, engine, fanout)
	transferUC := appointmentuc.NewTransferAppointment(appointmentRepo, fanout, cfg.SlotMinutes)
	delayUC := appointmentuc.NewAddDelay(engine, fanout)

	updateScheduleUC := barberuc.NewUpdateWeeklySchedule(barberRepo)
	updateNonWorkingUC := barberuc.NewUpdateNonWorkingDays(barberRepo, generator)
	updateCategoryUC := barberuc.NewUpdateCategory(barberRepo, generator)
	requestLeaveUC := barberuc.NewRequestLeave(barberRepo)
	decideLeaveUC := barberuc.NewDecideLeave(barberRepo, generator)

	closeSalonUC := salonuc.NewCloseSalon(appointmentRepo, cancelUC, zlog)
	reopenSalonUC := salonuc.NewReopenSalon(appointmentRepo)

	// ======================================================
	// BACKGROUND JOBS
	// ======================================================
	runner := jobs.NewRunner(
		appointmentRepo,
		updateStatusUC,
		cancelUC,
		generator,
		fanout,
		notifier,
		hub,
		cache,
		zlog,
	)
	runner.Start()

	// sessions are generated at boot so a fresh deploy has a horizon
	go generator.RunHorizon(context.Background())

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Log:     zlog,
		Hub:     hub,
		Cache:   cache,
		Metrics: m,

		CreateWalkIn:    createWalkInUC,
		CreateScheduled: createScheduledUC,
		UpdateStatus:    updateStatusUC,
		Cancel:          cancelUC,
		Transfer:        transferUC,
		Delay:           delayUC,

		UpdateSchedule:   updateScheduleUC,
		UpdateNonWorking: updateNonWorkingUC,
		UpdateCategory:   updateCategoryUC,
		RequestLeave:     requestLeaveUC,
		DecideLeave:      decideLeaveUC,

		CloseSalon:  closeSalonUC,
		ReopenSalon: reopenSalonUC,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	runner.Stop()
	hub.Stop()
}

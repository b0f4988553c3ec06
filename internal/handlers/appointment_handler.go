package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/httpresp"
	"github.com/trimsalon/salon-queue-api/internal/metrics"
	"github.com/trimsalon/salon-queue-api/internal/middleware"
	appointmentuc "github.com/trimsalon/salon-queue-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createWalkIn    *appointmentuc.CreateWalkIn
	createScheduled *appointmentuc.CreateScheduled
	updateStatus    *appointmentuc.UpdateStatus
	cancel          *appointmentuc.CancelAppointment
	transfer        *appointmentuc.TransferAppointment
	delay           *appointmentuc.AddDelay
	metrics         *metrics.Metrics
}

func NewAppointmentHandler(
	createWalkIn *appointmentuc.CreateWalkIn,
	createScheduled *appointmentuc.CreateScheduled,
	updateStatus *appointmentuc.UpdateStatus,
	cancel *appointmentuc.CancelAppointment,
	transfer *appointmentuc.TransferAppointment,
	delay *appointmentuc.AddDelay,
	m *metrics.Metrics,
) *AppointmentHandler {
	return &AppointmentHandler{
		createWalkIn:    createWalkIn,
		createScheduled: createScheduled,
		updateStatus:    updateStatus,
		cancel:          cancel,
		transfer:        transfer,
		delay:           delay,
		metrics:         m,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWalkInRequest struct {
	BarberID       uint   `json:"barber_id" binding:"required"`
	ServiceIDs     []uint `json:"service_ids"`
	NumberOfPeople int    `json:"number_of_people"`
}

type CreateScheduledRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	SlotID     uint   `json:"slot_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelRequest struct {
	Message string `json:"message"`
}

type DelayRequest struct {
	ExtraMinutes int `json:"extra_minutes" binding:"required"`
}

type TransferRequest struct {
	TargetBarberID uint `json:"target_barber_id" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) CreateWalkIn(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start := time.Now()
	ap, err := h.createWalkIn.Execute(c.Request.Context(), appointmentuc.CreateWalkInInput{
		UserID:         userID,
		SalonID:        salonID,
		BarberID:       req.BarberID,
		ServiceIDs:     req.ServiceIDs,
		NumberOfPeople: req.NumberOfPeople,
	})
	h.metrics.BookingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) CreateScheduled(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start := time.Now()
	ap, err := h.createScheduled.Execute(c.Request.Context(), appointmentuc.CreateScheduledInput{
		UserID:     userID,
		SalonID:    salonID,
		BarberID:   req.BarberID,
		SlotID:     req.SlotID,
		ServiceIDs: req.ServiceIDs,
	})
	h.metrics.BookingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), id, domain.Status(req.Status))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(200, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req) // message is optional

	ap, err := h.cancel.Execute(c.Request.Context(), id, req.Message)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(200, ap)
}

func (h *AppointmentHandler) Delay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	board, err := h.delay.Execute(c.Request.Context(), id, req.ExtraMinutes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(200, gin.H{"queue": board})
}

func (h *AppointmentHandler) Transfer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.transfer.Execute(c.Request.Context(), id, req.TargetBarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(200, ap)
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id parameter.")
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/httpresp"
	barberuc "github.com/trimsalon/salon-queue-api/internal/usecase/barber"
)

// ======================================================
// HANDLER
// ======================================================

type LeaveHandler struct {
	request *barberuc.RequestLeave
	decide  *barberuc.DecideLeave
}

func NewLeaveHandler(request *barberuc.RequestLeave, decide *barberuc.DecideLeave) *LeaveHandler {
	return &LeaveHandler{
		request: request,
		decide:  decide,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestLeaveRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	AvailabilityStatus string  `json:"availability_status"`
	OverrideStart      *string `json:"override_start"`
	OverrideEnd        *string `json:"override_end"`
	Reason             string  `json:"reason"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required"` // approve | deny
}

// ======================================================
// HANDLERS
// ======================================================

func (h *LeaveHandler) Request(c *gin.Context) {
	var req RequestLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Expected start_date=YYYY-MM-DD.")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Expected end_date=YYYY-MM-DD.")
		return
	}

	leave, err := h.request.Execute(c.Request.Context(), barberuc.RequestLeaveInput{
		BarberID:           req.BarberID,
		StartDate:          start,
		EndDate:            end,
		AvailabilityStatus: req.AvailabilityStatus,
		OverrideStart:      req.OverrideStart,
		OverrideEnd:        req.OverrideEnd,
		Reason:             req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, leave)
}

func (h *LeaveHandler) Decide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var approve bool
	switch req.Decision {
	case "approve":
		approve = true
	case "deny":
		approve = false
	default:
		httperr.BadRequest(c, "invalid_decision", "Expected approve or deny.")
		return
	}

	leave, err := h.decide.Execute(c.Request.Context(), id, approve)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, leave)
}

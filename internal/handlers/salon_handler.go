package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/httpresp"
	"github.com/trimsalon/salon-queue-api/internal/middleware"
	salonuc "github.com/trimsalon/salon-queue-api/internal/usecase/salon"
)

type SalonHandler struct {
	close  *salonuc.CloseSalon
	reopen *salonuc.ReopenSalon
}

func NewSalonHandler(close *salonuc.CloseSalon, reopen *salonuc.ReopenSalon) *SalonHandler {
	return &SalonHandler{
		close:  close,
		reopen: reopen,
	}
}

// Close shuts the salon for the day; waiting walk-ins get canceled,
// whoever is in the chair finishes.
func (h *SalonHandler) Close(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	salon, err := h.close.Execute(c.Request.Context(), salonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, salon)
}

func (h *SalonHandler) Reopen(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	salon, err := h.reopen.Execute(c.Request.Context(), salonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, salon)
}

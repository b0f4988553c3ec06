package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trimsalon/salon-queue-api/internal/middleware"
	"github.com/trimsalon/salon-queue-api/internal/realtime"
)

type WSHandler struct {
	hub *realtime.Hub
	log *zap.Logger
}

func NewWSHandler(hub *realtime.Hub, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

// Serve upgrades the connection. An optional barber_id query narrows
// the subscription to one barber's board; otherwise the client gets
// salon-wide updates.
func (h *WSHandler) Serve(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid_barber_id"})
			return
		}
		barberID = uint(id)
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID, salonID, barberID); err != nil {
		h.log.Warn("websocket upgrade failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/httpresp"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/queuecache"
	barberuc "github.com/trimsalon/salon-queue-api/internal/usecase/barber"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db    *gorm.DB
	cache *queuecache.Cache

	updateSchedule   *barberuc.UpdateWeeklySchedule
	updateNonWorking *barberuc.UpdateNonWorkingDays
	updateCategory   *barberuc.UpdateCategory

	log *zap.Logger
}

func NewBarberHandler(
	db *gorm.DB,
	cache *queuecache.Cache,
	updateSchedule *barberuc.UpdateWeeklySchedule,
	updateNonWorking *barberuc.UpdateNonWorkingDays,
	updateCategory *barberuc.UpdateCategory,
	log *zap.Logger,
) *BarberHandler {
	return &BarberHandler{
		db:               db,
		cache:            cache,
		updateSchedule:   updateSchedule,
		updateNonWorking: updateNonWorking,
		updateCategory:   updateCategory,
		log:              log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleDayRequest struct {
	Weekday   int     `json:"weekday" binding:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type UpdateScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days" binding:"required"`
}

type UpdateNonWorkingRequest struct {
	Days []int `json:"days"`
}

type UpdateCategoryRequest struct {
	Category int `json:"category" binding:"required"`
}

// ======================================================
// QUEUE BOARD
// ======================================================

// Queue serves the barber's live board, cache first.
func (h *BarberHandler) Queue(c *gin.Context) {
	barberID, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if board, err := h.cache.Board(ctx, barberID); err == nil && board != nil {
		httpresp.List(c, board)
		return
	} else if err != nil {
		h.log.Warn("board cache read failed", zap.Uint("barber_id", barberID), zap.Error(err))
	}

	var board []models.Appointment
	if err := h.db.WithContext(ctx).
		Preload("Services.Service").
		Preload("User").
		Where(
			"barber_id = ? AND status IN ?",
			barberID,
			[]string{string(domain.StatusCheckedIn), string(domain.StatusInSalon)},
		).
		Order("queue_position ASC").
		Find(&board).Error; err != nil {
		httperr.Internal(c, "queue_read_failed", "Could not read the queue.")
		return
	}

	if err := h.cache.StoreBoard(ctx, barberID, board); err != nil {
		h.log.Warn("board cache write failed", zap.Uint("barber_id", barberID), zap.Error(err))
	}
	httpresp.List(c, board)
}

// ======================================================
// FREE SLOTS
// ======================================================

// Slots lists the barber's free slots for one date.
func (h *BarberHandler) Slots(c *gin.Context) {
	barberID, ok := pathID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Expected date=YYYY-MM-DD.")
		return
	}

	var session models.BarberSession
	err = h.db.WithContext(c.Request.Context()).
		Where("barber_id = ? AND session_date = ?", barberID, date.Format("2006-01-02")).
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		httpresp.List(c, []models.Slot{})
		return
	}
	if err != nil {
		httperr.Internal(c, "slots_read_failed", "Could not read the slots.")
		return
	}

	var slots []models.Slot
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_session_id = ? AND is_booked = false", session.ID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "slots_read_failed", "Could not read the slots.")
		return
	}
	httpresp.List(c, slots)
}

// ======================================================
// CONFIGURATION
// ======================================================

func (h *BarberHandler) UpdateSchedule(c *gin.Context) {
	barberID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	days := make([]barberuc.ScheduleDayInput, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, barberuc.ScheduleDayInput{
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	barber, err := h.updateSchedule.Execute(c.Request.Context(), barberID, days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, barber)
}

func (h *BarberHandler) UpdateNonWorkingDays(c *gin.Context) {
	barberID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateNonWorkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	barber, err := h.updateNonWorking.Execute(c.Request.Context(), barberID, req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, barber)
}

func (h *BarberHandler) UpdateCategory(c *gin.Context) {
	barberID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	barber, err := h.updateCategory.Execute(c.Request.Context(), barberID, req.Category)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, barber)
}

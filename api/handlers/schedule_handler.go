package handlers

import (
	"net/http"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScheduleHandler handles intake ticket and schedule view requests
type ScheduleHandler struct {
	service service.ScheduleService
	loc     *time.Location
	log     *logrus.Logger
}

// NewScheduleHandler creates a new ScheduleHandler instance. loc is the
// business timezone date-only query parameters are interpreted in.
func NewScheduleHandler(svc service.ScheduleService, loc *time.Location, log *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: svc,
		loc:     loc,
		log:     log,
	}
}

// CreateTicket handles intake ticket creation
func (h *ScheduleHandler) CreateTicket(c *gin.Context) {
	var req service.CreateIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid intake ticket format")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	ticket, err := h.service.CreateTicket(c, &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// UpdateTicket handles intake ticket edits
func (h *ScheduleHandler) UpdateTicket(c *gin.Context) {
	id := c.Param("id")

	var req service.UpdateIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	ticket, err := h.service.UpdateTicket(c, id, &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetTicket handles intake ticket retrieval
func (h *ScheduleHandler) GetTicket(c *gin.Context) {
	ticket, err := h.service.GetTicket(c, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ListTickets handles listing all intake tickets
func (h *ScheduleHandler) ListTickets(c *gin.Context) {
	tickets, err := h.service.ListTickets(c)
	if err != nil {
		h.log.WithError(err).Error("Failed to list intake tickets")
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Days handles the calendar view for a date range
func (h *ScheduleHandler) Days(c *gin.Context) {
	// A bare date names a business-timezone day, not a UTC one; parsing it
	// in UTC would shift the whole range across the midnight boundary
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "start must be a YYYY-MM-DD date",
			Code:    "INVALID_INPUT",
		})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "end must be a YYYY-MM-DD date",
			Code:    "INVALID_INPUT",
		})
		return
	}

	buckets, err := h.service.DayBuckets(c, start, end)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}

// Today handles the single-day view for the current business-timezone day
func (h *ScheduleHandler) Today(c *gin.Context) {
	bucket, err := h.service.Today(c, time.Now())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, bucket)
}

// Upcoming handles the list of loads scheduled after now
func (h *ScheduleHandler) Upcoming(c *gin.Context) {
	tickets, err := h.service.Upcoming(c, time.Now())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Summary handles the whole-project rollup
func (h *ScheduleHandler) Summary(c *gin.Context) {
	totals, err := h.service.Summary(c)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

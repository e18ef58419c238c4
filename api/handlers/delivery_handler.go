package handlers

import (
	"net/http"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DeliveryHandler handles delivery record requests
type DeliveryHandler struct {
	service service.DeliveryService
	log     *logrus.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler instance
func NewDeliveryHandler(svc service.DeliveryService, log *logrus.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		service: svc,
		log:     log,
	}
}

// ListRecords handles listing all delivery records
func (h *DeliveryHandler) ListRecords(c *gin.Context) {
	records, err := h.service.ListRecords(c)
	if err != nil {
		h.log.WithError(err).Error("Failed to list delivery records")
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetRecord handles delivery record retrieval by VR number
func (h *DeliveryHandler) GetRecord(c *gin.Context) {
	vr := c.Param("vr")

	record, err := h.service.GetRecord(c, vr)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// EnsureRecord handles lazy record creation for a VR number
func (h *DeliveryHandler) EnsureRecord(c *gin.Context) {
	vr := c.Param("vr")

	// Defaults are optional; an empty body means a bare ensure
	var defaults service.RecordDefaults
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&defaults); err != nil {
			h.log.WithError(err).Warn("Invalid record defaults format")
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request format",
				Code:    "INVALID_INPUT",
			})
			return
		}
	}

	record, err := h.service.EnsureRecord(c, vr, defaults)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// MarkDelivered handles the scheduled→delivered transition
func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	vr := c.Param("vr")

	var request struct {
		DeliveredBy string `json:"delivered_by" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "delivered_by is required",
			Code:    "INVALID_INPUT",
		})
		return
	}

	record, err := h.service.MarkDelivered(c, vr, request.DeliveredBy)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// UndoDelivery handles the delivered→scheduled transition
func (h *DeliveryHandler) UndoDelivery(c *gin.Context) {
	vr := c.Param("vr")

	record, err := h.service.UndoDelivery(c, vr)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateTonnage handles recording a scale weight against a record
func (h *DeliveryHandler) UpdateTonnage(c *gin.Context) {
	vr := c.Param("vr")

	var request struct {
		Pounds float64 `json:"pounds"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	record, err := h.service.UpdateTonnage(c, vr, request.Pounds)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateNotes handles replacing a record's notes
func (h *DeliveryHandler) UpdateNotes(c *gin.Context) {
	vr := c.Param("vr")

	var request struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	record, err := h.service.UpdateNotes(c, vr, request.Notes)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

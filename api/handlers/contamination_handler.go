package handlers

import (
	"net/http"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContaminationHandler handles contamination log requests
type ContaminationHandler struct {
	service service.ContaminationService
	log     *logrus.Logger
}

// NewContaminationHandler creates a new ContaminationHandler instance
func NewContaminationHandler(svc service.ContaminationService, log *logrus.Logger) *ContaminationHandler {
	return &ContaminationHandler{
		service: svc,
		log:     log,
	}
}

// LogEvent handles logging a contamination incident
func (h *ContaminationHandler) LogEvent(c *gin.Context) {
	var req service.CreateContaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	event, err := h.service.LogEvent(c, &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent handles contamination event retrieval
func (h *ContaminationHandler) GetEvent(c *gin.Context) {
	event, err := h.service.GetEvent(c, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents handles listing contamination events
func (h *ContaminationHandler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c, c.Query("vr"))
	if err != nil {
		h.log.WithError(err).Error("Failed to list contamination events")
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

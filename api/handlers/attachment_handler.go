package handlers

import (
	"io"
	"net/http"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxUploadSize bounds documentation uploads at 16 MB
const maxUploadSize = 16 << 20

// AttachmentHandler handles documentation photo and weigh ticket uploads
type AttachmentHandler struct {
	service service.AttachmentService
	log     *logrus.Logger
}

// NewAttachmentHandler creates a new AttachmentHandler instance
func NewAttachmentHandler(svc service.AttachmentService, log *logrus.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: svc,
		log:     log,
	}
}

// readUpload pulls the uploaded file bytes and content type out of the
// multipart form
func (h *AttachmentHandler) readUpload(c *gin.Context) ([]byte, string, bool) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		h.log.WithError(err).Warn("Failed to parse multipart form")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to parse form data",
			Code:    "INVALID_INPUT",
		})
		return nil, "", false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "file field is required",
			Code:    "INVALID_INPUT",
		})
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.WithError(err).Error("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to read uploaded file",
			Code:    "INTERNAL_ERROR",
		})
		return nil, "", false
	}

	return data, header.Header.Get("Content-Type"), true
}

// UploadPhoto handles a documentation photo upload for a VR number
func (h *AttachmentHandler) UploadPhoto(c *gin.Context) {
	vr := c.Param("vr")

	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	record, url, err := h.service.UploadPhoto(c, vr, data, contentType)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    url,
		"record": record,
	})
}

// DeletePhoto handles removing a documentation photo by URL
func (h *AttachmentHandler) DeletePhoto(c *gin.Context) {
	vr := c.Param("vr")

	var request struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "url is required",
			Code:    "INVALID_INPUT",
		})
		return
	}

	record, err := h.service.DeletePhoto(c, vr, request.URL)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// UploadWeightTicket handles a weigh ticket upload for a VR number
func (h *AttachmentHandler) UploadWeightTicket(c *gin.Context) {
	vr := c.Param("vr")

	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	record, url, err := h.service.UploadWeightTicket(c, vr, data, contentType)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    url,
		"record": record,
	})
}

// DeleteWeightTicket handles removing a weigh ticket by URL
func (h *AttachmentHandler) DeleteWeightTicket(c *gin.Context) {
	vr := c.Param("vr")

	var request struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "url is required",
			Code:    "INVALID_INPUT",
		})
		return
	}

	record, err := h.service.DeleteWeightTicket(c, vr, request.URL)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

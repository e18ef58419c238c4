package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles environmental-impact report requests
type ReportHandler struct {
	service service.ReportService
	loc     *time.Location
	log     *logrus.Logger
}

// NewReportHandler creates a new ReportHandler instance. loc is the
// business timezone date-only query parameters are interpreted in.
func NewReportHandler(svc service.ReportService, loc *time.Location, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		loc:     loc,
		log:     log,
	}
}

// parseRange pulls the start/end date query parameters. Bare dates name
// business-timezone days, so both bounds are resolved in that location.
func (h *ReportHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "start must be a YYYY-MM-DD date",
			Code:    "INVALID_INPUT",
		})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "end must be a YYYY-MM-DD date",
			Code:    "INVALID_INPUT",
		})
		return time.Time{}, time.Time{}, false
	}

	// Make the range inclusive of the whole end day in business time.
	// AddDate keeps this correct on DST-transition days.
	return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond), true
}

// ImpactSummary handles the diversion impact summary for a date range
func (h *ReportHandler) ImpactSummary(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	summary, err := h.service.ImpactSummary(c, start, end)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportImpact streams the impact summary as a spreadsheet download
func (h *ReportHandler) ExportImpact(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	summary, err := h.service.ImpactSummary(c, start, end)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	file, err := h.service.ExportImpactXLSX(summary)
	if err != nil {
		h.log.WithError(err).Error("Failed to generate impact spreadsheet")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to generate spreadsheet",
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		h.log.WithError(err).Error("Failed to write impact spreadsheet")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to write spreadsheet",
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	filename := fmt.Sprintf("impact_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

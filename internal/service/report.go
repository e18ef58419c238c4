package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/schedule"
)

// DayImpact is the per-day breakdown inside an impact summary
type DayImpact struct {
	Date           string  `json:"date"`
	Loads          int     `json:"loads"`
	DeliveredLoads int     `json:"delivered_loads"`
	Tons           float64 `json:"tons"`
}

// ImpactSummary aggregates the diversion outcome over a date range, built
// from recorded delivery outcomes rather than per-load estimates
type ImpactSummary struct {
	Start              time.Time   `json:"start"`
	End                time.Time   `json:"end"`
	TotalLoads         int         `json:"total_loads"`
	DeliveredLoads     int         `json:"delivered_loads"`
	DivertedTons       float64     `json:"diverted_tons"`
	ContaminationCount int64       `json:"contamination_count"`
	Days               []DayImpact `json:"days"`
}

// ReportService builds environmental-impact summaries and exports
type ReportService interface {
	ImpactSummary(ctx context.Context, start, end time.Time) (*ImpactSummary, error)
	ExportImpactXLSX(summary *ImpactSummary) (*excelize.File, error)
}

// reportService implements ReportService
type reportService struct {
	deliveryRepo      repository.DeliveryRepository
	contaminationRepo repository.ContaminationRepository
	loc               *time.Location
	log               *logrus.Logger
}

// NewReportService creates a new report service
func NewReportService(
	deliveryRepo repository.DeliveryRepository,
	contaminationRepo repository.ContaminationRepository,
	loc *time.Location,
	log *logrus.Logger,
) ReportService {
	return &reportService{
		deliveryRepo:      deliveryRepo,
		contaminationRepo: contaminationRepo,
		loc:               loc,
		log:               log,
	}
}

// ImpactSummary aggregates recorded delivery outcomes over [start, end]
func (s *reportService) ImpactSummary(ctx context.Context, start, end time.Time) (*ImpactSummary, error) {
	if end.Before(start) {
		return nil, ErrInvalidInput
	}

	records, err := s.deliveryRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	contaminationCount, err := s.contaminationRepo.CountRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &ImpactSummary{
		Start:              start,
		End:                end,
		ContaminationCount: contaminationCount,
	}

	byDay := make(map[string]*DayImpact)
	var dayOrder []string
	for _, record := range records {
		summary.TotalLoads++

		key := schedule.DayKey(record.ScheduledDate, s.loc)
		day, ok := byDay[key]
		if !ok {
			day = &DayImpact{Date: key}
			byDay[key] = day
			dayOrder = append(dayOrder, key)
		}

		day.Loads++
		if record.Delivered() {
			day.DeliveredLoads++
			day.Tons += record.Tonnage
			summary.DeliveredLoads++
			summary.DivertedTons += record.Tonnage
		}
	}

	// ListRange returns records in schedule order, so dayOrder is sorted
	for _, key := range dayOrder {
		summary.Days = append(summary.Days, *byDay[key])
	}

	return summary, nil
}

// ExportImpactXLSX renders an impact summary as a spreadsheet
func (s *reportService) ExportImpactXLSX(summary *ImpactSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Date", "Loads", "Delivered", "Tons Diverted"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, day := range summary.Days {
		values := []interface{}{day.Date, day.Loads, day.DeliveredLoads, day.Tons}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
		row++
	}

	totals := []interface{}{"Total", summary.TotalLoads, summary.DeliveredLoads, summary.DivertedTons}
	for i, value := range totals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, err
		}
	}

	contaminationCell := fmt.Sprintf("A%d", row+2)
	if err := f.SetCellValue(sheet, contaminationCell, fmt.Sprintf("Contamination incidents: %d", summary.ContaminationCount)); err != nil {
		return nil, err
	}

	return f, nil
}

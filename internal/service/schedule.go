package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/schedule"
)

// CreateIntakeRequest defines the request to create an intake ticket
type CreateIntakeRequest struct {
	VRNumber        string    `json:"vr_number"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	ScheduledWindow string    `json:"scheduled_window"`
	StatusTag       string    `json:"status_tag"`
	Note            string    `json:"note"`
	ETA             string    `json:"eta"`
	ContractID      string    `json:"contract_id"`
}

// UpdateIntakeRequest defines the request to edit an intake ticket. Moved
// loads are edited in place, never deleted and recreated.
type UpdateIntakeRequest struct {
	ScheduledDate   *time.Time `json:"scheduled_date"`
	ScheduledWindow *string    `json:"scheduled_window"`
	StatusTag       *string    `json:"status_tag"`
	Note            *string    `json:"note"`
	ETA             *string    `json:"eta"`
}

// ScheduleService exposes the schedule source plus the day/week views built
// over it
type ScheduleService interface {
	CreateTicket(ctx context.Context, req *CreateIntakeRequest) (*models.IntakeTicket, error)
	UpdateTicket(ctx context.Context, id string, req *UpdateIntakeRequest) (*models.IntakeTicket, error)
	GetTicket(ctx context.Context, id string) (*models.IntakeTicket, error)
	ListTickets(ctx context.Context) ([]models.IntakeTicket, error)
	DayBuckets(ctx context.Context, start, end time.Time) ([]schedule.DayBucket, error)
	Today(ctx context.Context, now time.Time) (*schedule.DayBucket, error)
	Upcoming(ctx context.Context, now time.Time) ([]models.IntakeTicket, error)
	Summary(ctx context.Context) (schedule.Totals, error)
}

// scheduleService implements ScheduleService
type scheduleService struct {
	repo        repository.IntakeRepository
	loc         *time.Location
	tonsPerLoad float64
	log         *logrus.Logger
}

// NewScheduleService creates a new schedule service. loc is the business
// timezone every day boundary is computed in.
func NewScheduleService(repo repository.IntakeRepository, loc *time.Location, tonsPerLoad float64, log *logrus.Logger) ScheduleService {
	return &scheduleService{
		repo:        repo,
		loc:         loc,
		tonsPerLoad: tonsPerLoad,
		log:         log,
	}
}

// validStatusTag checks a planning annotation value
func validStatusTag(tag models.StatusTag) bool {
	switch tag {
	case models.TagScheduled, models.TagDelayed, models.TagMoved, models.TagArrived:
		return true
	}
	return false
}

// CreateTicket creates an intake ticket. An empty VR number is allowed and
// means the load is expected but not yet assigned a reference.
func (s *scheduleService) CreateTicket(ctx context.Context, req *CreateIntakeRequest) (*models.IntakeTicket, error) {
	tag := models.StatusTag(req.StatusTag)
	if req.StatusTag == "" {
		tag = models.TagScheduled
	}
	if !validStatusTag(tag) {
		return nil, ErrInvalidInput
	}

	ticket := &models.IntakeTicket{
		Base:            models.Base{UUID: uuid.NewString()},
		ScheduledDate:   req.ScheduledDate,
		ScheduledWindow: req.ScheduledWindow,
		StatusTag:       tag,
		Note:            req.Note,
		ETA:             req.ETA,
	}

	if vr := strings.TrimSpace(req.VRNumber); vr != "" {
		ticket.VRNumber = &vr
	}
	if req.ContractID != "" {
		contractID := req.ContractID
		ticket.ContractID = &contractID
	}

	return s.repo.Create(ctx, ticket)
}

// UpdateTicket applies a partial edit to an intake ticket
func (s *scheduleService) UpdateTicket(ctx context.Context, id string, req *UpdateIntakeRequest) (*models.IntakeTicket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.ScheduledDate != nil {
		ticket.ScheduledDate = *req.ScheduledDate
	}
	if req.ScheduledWindow != nil {
		ticket.ScheduledWindow = *req.ScheduledWindow
	}
	if req.StatusTag != nil {
		tag := models.StatusTag(*req.StatusTag)
		if !validStatusTag(tag) {
			return nil, ErrInvalidInput
		}
		ticket.StatusTag = tag
	}
	if req.Note != nil {
		ticket.Note = *req.Note
	}
	if req.ETA != nil {
		ticket.ETA = *req.ETA
	}

	return s.repo.Update(ctx, ticket)
}

// GetTicket gets an intake ticket by ID
func (s *scheduleService) GetTicket(ctx context.Context, id string) (*models.IntakeTicket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return ticket, nil
}

// ListTickets lists all intake tickets in schedule order
func (s *scheduleService) ListTickets(ctx context.Context) ([]models.IntakeTicket, error) {
	return s.repo.List(ctx)
}

// DayBuckets returns the calendar view for [start, end]. The bounds are
// instants in the business timezone; the query fetches the covering span
// and the day-key filter settles membership at the boundaries.
func (s *scheduleService) DayBuckets(ctx context.Context, start, end time.Time) ([]schedule.DayBucket, error) {
	rangeEnd := end.In(s.loc).AddDate(0, 0, 1)
	tickets, err := s.repo.ListRange(ctx, start, rangeEnd)
	if err != nil {
		return nil, err
	}

	inRange := schedule.FilterRange(tickets, start, end, s.loc)
	return schedule.BuildDayBuckets(inRange, s.loc, s.tonsPerLoad), nil
}

// Today returns the single-day view for the business-timezone day now falls
// on
func (s *scheduleService) Today(ctx context.Context, now time.Time) (*schedule.DayBucket, error) {
	tickets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := schedule.TodayEntries(tickets, now, s.loc)
	return &schedule.DayBucket{
		Date:    schedule.DayKey(now, s.loc),
		Entries: entries,
		Class:   schedule.ClassifyDay(entries),
		Totals:  schedule.Rollup(entries, s.tonsPerLoad),
	}, nil
}

// Upcoming returns the tickets scheduled strictly after now, soonest first
func (s *scheduleService) Upcoming(ctx context.Context, now time.Time) ([]models.IntakeTicket, error) {
	tickets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.UpcomingEntries(tickets, now), nil
}

// Summary returns the whole-project rollup
func (s *scheduleService) Summary(ctx context.Context) (schedule.Totals, error) {
	tickets, err := s.repo.List(ctx)
	if err != nil {
		return schedule.Totals{}, err
	}
	return schedule.Rollup(tickets, s.tonsPerLoad), nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
)

// CreateContaminationRequest defines the request to log a contamination event
type CreateContaminationRequest struct {
	VRNumber    string    `json:"vr_number"`
	OccurredAt  time.Time `json:"occurred_at"`
	Material    string    `json:"material" binding:"required"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
}

// ContaminationService defines contamination log operations
type ContaminationService interface {
	LogEvent(ctx context.Context, req *CreateContaminationRequest) (*models.ContaminationEvent, error)
	GetEvent(ctx context.Context, id string) (*models.ContaminationEvent, error)
	ListEvents(ctx context.Context, vr string) ([]models.ContaminationEvent, error)
}

// contaminationService implements ContaminationService
type contaminationService struct {
	repo repository.ContaminationRepository
}

// NewContaminationService creates a new contamination service
func NewContaminationService(repo repository.ContaminationRepository) ContaminationService {
	return &contaminationService{repo: repo}
}

// validSeverity checks a severity grade
func validSeverity(sev models.Severity) bool {
	switch sev {
	case models.SeverityLow, models.SeverityModerate, models.SeveritySevere:
		return true
	}
	return false
}

// LogEvent records a contamination incident
func (s *contaminationService) LogEvent(ctx context.Context, req *CreateContaminationRequest) (*models.ContaminationEvent, error) {
	if strings.TrimSpace(req.Material) == "" {
		return nil, ErrInvalidInput
	}

	sev := models.Severity(req.Severity)
	if req.Severity == "" {
		sev = models.SeverityLow
	}
	if !validSeverity(sev) {
		return nil, ErrInvalidInput
	}

	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	event := &models.ContaminationEvent{
		Base:        models.Base{UUID: uuid.NewString()},
		VRNumber:    strings.TrimSpace(req.VRNumber),
		OccurredAt:  occurredAt,
		Material:    req.Material,
		Severity:    sev,
		Description: req.Description,
		PhotoURLs:   models.StringList{},
	}
	return s.repo.Create(ctx, event)
}

// GetEvent gets a contamination event by ID
func (s *contaminationService) GetEvent(ctx context.Context, id string) (*models.ContaminationEvent, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return event, nil
}

// ListEvents lists contamination events, optionally filtered by VR number
func (s *contaminationService) ListEvents(ctx context.Context, vr string) ([]models.ContaminationEvent, error) {
	return s.repo.List(ctx, vr)
}

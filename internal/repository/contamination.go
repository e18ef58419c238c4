package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/database"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
)

// ContaminationRepository defines the interface for contamination event persistence
type ContaminationRepository interface {
	Create(ctx context.Context, event *models.ContaminationEvent) (*models.ContaminationEvent, error)
	GetByID(ctx context.Context, id string) (*models.ContaminationEvent, error)
	List(ctx context.Context, vr string) ([]models.ContaminationEvent, error)
	CountRange(ctx context.Context, start, end time.Time) (int64, error)
}

// contaminationRepository implements ContaminationRepository
type contaminationRepository struct {
	db *gorm.DB
}

// NewContaminationRepository creates a new contamination repository
func NewContaminationRepository(db *gorm.DB) ContaminationRepository {
	return &contaminationRepository{db: db}
}

// Create creates a new contamination event
func (r *contaminationRepository) Create(ctx context.Context, event *models.ContaminationEvent) (*models.ContaminationEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// GetByID gets a contamination event by ID
func (r *contaminationRepository) GetByID(ctx context.Context, id string) (*models.ContaminationEvent, error) {
	var event models.ContaminationEvent
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&event).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// List lists contamination events, optionally filtered by VR number
func (r *contaminationRepository) List(ctx context.Context, vr string) ([]models.ContaminationEvent, error) {
	query := r.db.WithContext(ctx)
	if vr != "" {
		query = query.Where("vr_number = ?", vr)
	}

	var events []models.ContaminationEvent
	if err := query.Order("occurred_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountRange counts contamination events that occurred in [start, end]
func (r *contaminationRepository) CountRange(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContaminationEvent{}).
		Where("occurred_at >= ? AND occurred_at <= ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

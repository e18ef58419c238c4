package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/database"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
)

// IntakeRepository defines the interface for intake ticket persistence.
// Intake tickets are the schedule source: reads feed the day aggregator,
// and edits replace what used to be a hard-coded planning list.
type IntakeRepository interface {
	Create(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error)
	Update(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error)
	GetByID(ctx context.Context, id string) (*models.IntakeTicket, error)
	GetByVR(ctx context.Context, vr string) (*models.IntakeTicket, error)
	List(ctx context.Context) ([]models.IntakeTicket, error)
	ListRange(ctx context.Context, start, end time.Time) ([]models.IntakeTicket, error)
}

// intakeRepository implements IntakeRepository
type intakeRepository struct {
	db *gorm.DB
}

// NewIntakeRepository creates a new intake repository
func NewIntakeRepository(db *gorm.DB) IntakeRepository {
	return &intakeRepository{db: db}
}

// Create creates a new intake ticket
func (r *intakeRepository) Create(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error) {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

// Update updates an intake ticket
func (r *intakeRepository) Update(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error) {
	if err := r.db.WithContext(ctx).Save(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetByID gets an intake ticket by ID
func (r *intakeRepository) GetByID(ctx context.Context, id string) (*models.IntakeTicket, error) {
	var ticket models.IntakeTicket
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&ticket).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// GetByVR gets an intake ticket by VR number
func (r *intakeRepository) GetByVR(ctx context.Context, vr string) (*models.IntakeTicket, error) {
	var ticket models.IntakeTicket
	err := r.db.WithContext(ctx).Where("vr_number = ?", vr).First(&ticket).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// List lists all intake tickets in schedule order. Insertion order is the
// tiebreak within a day, so created_at is part of the sort.
func (r *intakeRepository) List(ctx context.Context) ([]models.IntakeTicket, error) {
	var tickets []models.IntakeTicket
	err := r.db.WithContext(ctx).
		Order("scheduled_date ASC, created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListRange lists intake tickets with a scheduled date in [start, end]
func (r *intakeRepository) ListRange(ctx context.Context, start, end time.Time) ([]models.IntakeTicket, error) {
	var tickets []models.IntakeTicket
	err := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", start, end).
		Order("scheduled_date ASC, created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/database"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
)

// DeliveryRepository defines the interface for delivery record persistence
type DeliveryRepository interface {
	GetByVR(ctx context.Context, vr string) (*models.DeliveryRecord, error)
	List(ctx context.Context) ([]*models.DeliveryRecord, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*models.DeliveryRecord, error)
	CreateIfAbsent(ctx context.Context, record *models.DeliveryRecord) error
	Mutate(ctx context.Context, vr string, fn func(record *models.DeliveryRecord) error) (*models.DeliveryRecord, error)
}

// deliveryRepository implements DeliveryRepository
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

// GetByVR gets a delivery record by VR number
func (r *deliveryRepository) GetByVR(ctx context.Context, vr string) (*models.DeliveryRecord, error) {
	var record models.DeliveryRecord
	err := r.db.WithContext(ctx).Where("vr_number = ?", vr).First(&record).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List lists all delivery records ordered by scheduled date
func (r *deliveryRepository) List(ctx context.Context) ([]*models.DeliveryRecord, error) {
	var records []*models.DeliveryRecord
	err := r.db.WithContext(ctx).
		Order("scheduled_date ASC, load_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListRange lists delivery records with a scheduled date in [start, end]
func (r *deliveryRepository) ListRange(ctx context.Context, start, end time.Time) ([]*models.DeliveryRecord, error) {
	var records []*models.DeliveryRecord
	err := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", start, end).
		Order("scheduled_date ASC, load_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CreateIfAbsent inserts a delivery record unless one already exists for the
// VR number. The unique index plus ON CONFLICT DO NOTHING closes the
// read-then-insert race when two field clients touch the same token at once.
func (r *deliveryRepository) CreateIfAbsent(ctx context.Context, record *models.DeliveryRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vr_number"}},
			DoNothing: true,
		}).
		Create(record).Error
}

// Mutate loads the record for vr under a row lock, applies fn, and saves the
// result in the same transaction. Concurrent mutations of the same record
// serialize on the lock, so list appends from two uploads cannot clobber
// each other.
func (r *deliveryRepository) Mutate(ctx context.Context, vr string, fn func(record *models.DeliveryRecord) error) (*models.DeliveryRecord, error) {
	var record models.DeliveryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vr_number = ?", vr).
			First(&record).Error
		if err != nil {
			if database.IsRecordNotFoundError(err) {
				return ErrNotFound
			}
			return err
		}

		if err := fn(&record); err != nil {
			return err
		}

		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

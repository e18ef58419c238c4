package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/cache"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
)

// PoundsPerTon converts recorded scale weights to tons
const PoundsPerTon = 2000.0

// RecordDefaults are the values a lazily-created delivery record starts with
type RecordDefaults struct {
	ScheduledDate time.Time `json:"scheduled_date"`
	Tonnage       float64   `json:"tonnage"`
	LoadNumber    int       `json:"load_number"`
}

// DeliveryService defines the delivery record operations. The only status
// transitions are scheduled→delivered (mark) and delivered→scheduled
// (undo); both tolerate repeats so field retries never surface errors.
type DeliveryService interface {
	EnsureRecord(ctx context.Context, vr string, defaults RecordDefaults) (*models.DeliveryRecord, error)
	GetRecord(ctx context.Context, vr string) (*models.DeliveryRecord, error)
	ListRecords(ctx context.Context) ([]*models.DeliveryRecord, error)
	MarkDelivered(ctx context.Context, vr, deliveredBy string) (*models.DeliveryRecord, error)
	UndoDelivery(ctx context.Context, vr string) (*models.DeliveryRecord, error)
	UpdateTonnage(ctx context.Context, vr string, pounds float64) (*models.DeliveryRecord, error)
	UpdateNotes(ctx context.Context, vr, notes string) (*models.DeliveryRecord, error)
	AppendPhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
	RemovePhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
	AppendWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
	RemoveWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
}

// deliveryService implements DeliveryService
type deliveryService struct {
	repo  repository.DeliveryRepository
	cache cache.CacheClient
	log   *logrus.Logger
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(repo repository.DeliveryRepository, cache cache.CacheClient, log *logrus.Logger) DeliveryService {
	return &deliveryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// EnsureRecord fetches the record for vr, creating it with the supplied
// defaults if absent. Safe to call concurrently for the same token.
func (s *deliveryService) EnsureRecord(ctx context.Context, vr string, defaults RecordDefaults) (*models.DeliveryRecord, error) {
	vr = strings.TrimSpace(vr)
	if vr == "" {
		return nil, ErrInvalidInput
	}

	record := &models.DeliveryRecord{
		Base:             models.Base{UUID: uuid.NewString()},
		VRNumber:         vr,
		Status:           models.DeliveryScheduled,
		LoadNumber:       defaults.LoadNumber,
		ScheduledDate:    defaults.ScheduledDate,
		Tonnage:          defaults.Tonnage,
		PhotoURLs:        models.StringList{},
		WeightTicketURLs: models.StringList{},
	}

	if err := s.repo.CreateIfAbsent(ctx, record); err != nil {
		return nil, err
	}

	// Re-read so a lost insert race still returns the surviving row
	return s.repo.GetByVR(ctx, vr)
}

// GetRecord gets a delivery record by VR number
func (s *deliveryService) GetRecord(ctx context.Context, vr string) (*models.DeliveryRecord, error) {
	record, err := s.cache.GetRecord(ctx, vr)
	if err == nil {
		return record, nil
	}
	if err != redis.Nil {
		s.log.WithError(err).Warn("Failed to get delivery record from cache")
	}

	record, err = s.repo.GetByVR(ctx, vr)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.cache.SetRecord(ctx, record); err != nil {
		s.log.WithError(err).Warn("Failed to cache delivery record")
	}

	return record, nil
}

// ListRecords lists all delivery records
func (s *deliveryService) ListRecords(ctx context.Context) ([]*models.DeliveryRecord, error) {
	return s.repo.List(ctx)
}

// MarkDelivered transitions the record to delivered, stamping the actor and
// time once. Marking an already-delivered record is a no-op, not an error;
// double taps and flaky-connection retries are routine in the field.
func (s *deliveryService) MarkDelivered(ctx context.Context, vr, deliveredBy string) (*models.DeliveryRecord, error) {
	deliveredBy = strings.TrimSpace(deliveredBy)
	if deliveredBy == "" {
		return nil, ErrInvalidInput
	}

	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		if record.Status == models.DeliveryDelivered {
			return nil
		}
		now := time.Now().UTC()
		record.Status = models.DeliveryDelivered
		record.DeliveredAt = &now
		record.DeliveredBy = deliveredBy
		return nil
	})
}

// UndoDelivery transitions the record back to scheduled, clearing the
// delivered stamp. Idempotent.
func (s *deliveryService) UndoDelivery(ctx context.Context, vr string) (*models.DeliveryRecord, error) {
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.Status = models.DeliveryScheduled
		record.DeliveredAt = nil
		record.DeliveredBy = ""
		return nil
	})
}

// UpdateTonnage stores a recorded scale weight, given in pounds, as tons
func (s *deliveryService) UpdateTonnage(ctx context.Context, vr string, pounds float64) (*models.DeliveryRecord, error) {
	if pounds <= 0 {
		return nil, ErrInvalidInput
	}

	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.Tonnage = pounds / PoundsPerTon
		return nil
	})
}

// UpdateNotes replaces the record's free-text notes
func (s *deliveryService) UpdateNotes(ctx context.Context, vr, notes string) (*models.DeliveryRecord, error) {
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.Notes = notes
		return nil
	})
}

// AppendPhoto appends a photo URL to the record's list
func (s *deliveryService) AppendPhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	if url == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.PhotoURLs = append(record.PhotoURLs, url)
		return nil
	})
}

// RemovePhoto removes the first matching photo URL; a no-op if absent
func (s *deliveryService) RemovePhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.PhotoURLs = record.PhotoURLs.Remove(url)
		return nil
	})
}

// AppendWeightTicket appends a weight ticket URL to the record's list
func (s *deliveryService) AppendWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	if url == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.WeightTicketURLs = append(record.WeightTicketURLs, url)
		return nil
	})
}

// RemoveWeightTicket removes the first matching ticket URL; a no-op if absent
func (s *deliveryService) RemoveWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	return s.mutate(ctx, vr, func(record *models.DeliveryRecord) error {
		record.WeightTicketURLs = record.WeightTicketURLs.Remove(url)
		return nil
	})
}

// mutate runs fn against the locked record and invalidates the cache entry
func (s *deliveryService) mutate(ctx context.Context, vr string, fn func(record *models.DeliveryRecord) error) (*models.DeliveryRecord, error) {
	record, err := s.repo.Mutate(ctx, vr, fn)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.cache.DeleteRecord(ctx, vr); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate cached delivery record")
	}

	return record, nil
}

// mapRepoError translates repository sentinels into service errors
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

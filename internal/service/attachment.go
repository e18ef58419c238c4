package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/storage"
)

// photoContentTypes are the accepted documentation-photo formats
var photoContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ticketContentTypes additionally allow scanned PDF weigh tickets
var ticketContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// AttachmentService handles the two-phase upload and delete of
// documentation photos and weight tickets. Storage write and record update
// are separate calls with no transaction linking them; when the second step
// fails the caller gets a PartialError naming the stored URL instead of a
// pretend rollback.
type AttachmentService interface {
	UploadPhoto(ctx context.Context, vr string, data []byte, contentType string) (*models.DeliveryRecord, string, error)
	DeletePhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
	UploadWeightTicket(ctx context.Context, vr string, data []byte, contentType string) (*models.DeliveryRecord, string, error)
	DeleteWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error)
}

// attachmentService implements AttachmentService
type attachmentService struct {
	records     DeliveryService
	tickets     repository.IntakeRepository
	store       storage.ObjectStore
	tonsPerLoad float64
	log         *logrus.Logger
}

// NewAttachmentService creates a new attachment service. tonsPerLoad seeds
// the tonnage estimate on records created lazily by a first upload.
func NewAttachmentService(
	records DeliveryService,
	tickets repository.IntakeRepository,
	store storage.ObjectStore,
	tonsPerLoad float64,
	log *logrus.Logger,
) AttachmentService {
	return &attachmentService{
		records:     records,
		tickets:     tickets,
		store:       store,
		tonsPerLoad: tonsPerLoad,
		log:         log,
	}
}

// recordDefaults builds the initial values for a record created by a first
// upload: the estimated tonnage, and the scheduled date from the matching
// intake ticket when one exists
func (s *attachmentService) recordDefaults(ctx context.Context, vr string) RecordDefaults {
	defaults := RecordDefaults{Tonnage: s.tonsPerLoad}

	ticket, err := s.tickets.GetByVR(ctx, vr)
	if err == nil {
		defaults.ScheduledDate = ticket.ScheduledDate
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.WithField("vr_number", vr).WithError(err).Warn("Failed to look up intake ticket for upload defaults")
	}

	return defaults
}

// objectKey builds a storage key namespaced by VR number with a uniqueness
// suffix, so rapid-fire uploads for the same load never collide
func objectKey(prefix, vr, ext string) string {
	return fmt.Sprintf("%s/%s/%d%s", prefix, vr, time.Now().UnixNano(), ext)
}

// UploadPhoto stores the image bytes and appends the resulting URL to the
// record's photo list, creating the record if this is the first interaction
// for the VR number
func (s *attachmentService) UploadPhoto(ctx context.Context, vr string, data []byte, contentType string) (*models.DeliveryRecord, string, error) {
	return s.upload(ctx, vr, data, contentType, photoContentTypes, "deliveries", s.records.AppendPhoto)
}

// UploadWeightTicket stores a weigh-ticket document against the record's
// separate ticket list
func (s *attachmentService) UploadWeightTicket(ctx context.Context, vr string, data []byte, contentType string) (*models.DeliveryRecord, string, error) {
	return s.upload(ctx, vr, data, contentType, ticketContentTypes, "tickets", s.records.AppendWeightTicket)
}

func (s *attachmentService) upload(
	ctx context.Context,
	vr string,
	data []byte,
	contentType string,
	allowed map[string]string,
	prefix string,
	appendFn func(ctx context.Context, vr, url string) (*models.DeliveryRecord, error),
) (*models.DeliveryRecord, string, error) {
	vr = strings.TrimSpace(vr)
	if vr == "" || len(data) == 0 {
		return nil, "", ErrInvalidInput
	}

	ext, ok := allowed[contentType]
	if !ok {
		return nil, "", ErrInvalidInput
	}

	// First interaction for a token creates its record
	if _, err := s.records.EnsureRecord(ctx, vr, s.recordDefaults(ctx, vr)); err != nil {
		return nil, "", err
	}

	key := objectKey(prefix, vr, ext)
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, "", &StorageError{Op: "upload", Err: err}
	}

	record, err := appendFn(ctx, vr, url)
	if err != nil {
		// The bytes are stored but the record does not reference them
		s.log.WithFields(logrus.Fields{
			"vr_number": vr,
			"url":       url,
		}).WithError(err).Error("Stored object but failed to attach it to the delivery record")
		return nil, url, &PartialError{Stage: "attach", URL: url, Err: err}
	}

	return record, url, nil
}

// DeletePhoto removes the stored object and then the URL from the record's
// photo list
func (s *attachmentService) DeletePhoto(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	return s.delete(ctx, vr, url, s.records.RemovePhoto)
}

// DeleteWeightTicket removes the stored document and the ticket-list entry
func (s *attachmentService) DeleteWeightTicket(ctx context.Context, vr, url string) (*models.DeliveryRecord, error) {
	return s.delete(ctx, vr, url, s.records.RemoveWeightTicket)
}

func (s *attachmentService) delete(
	ctx context.Context,
	vr, url string,
	removeFn func(ctx context.Context, vr, url string) (*models.DeliveryRecord, error),
) (*models.DeliveryRecord, error) {
	if strings.TrimSpace(vr) == "" || url == "" {
		return nil, ErrInvalidInput
	}

	key, err := s.store.KeyFromURL(url)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return nil, &StorageError{Op: "delete", Err: err}
	}

	record, err := removeFn(ctx, vr, url)
	if err != nil {
		// The object is gone but the record still references it
		s.log.WithFields(logrus.Fields{
			"vr_number": vr,
			"url":       url,
		}).WithError(err).Error("Deleted object but failed to remove it from the delivery record")
		return nil, &PartialError{Stage: "detach", URL: url, Err: err}
	}

	return record, nil
}

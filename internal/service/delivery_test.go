package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/config"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/cache"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"

	"github.com/sirupsen/logrus"
)

// fakeDeliveryRepo is an in-memory DeliveryRepository for service tests
type fakeDeliveryRepo struct {
	mu      sync.Mutex
	records map[string]models.DeliveryRecord
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{records: make(map[string]models.DeliveryRecord)}
}

func (f *fakeDeliveryRepo) GetByVR(ctx context.Context, vr string) (*models.DeliveryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[vr]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &record, nil
}

func (f *fakeDeliveryRepo) List(ctx context.Context) ([]*models.DeliveryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.DeliveryRecord
	for vr := range f.records {
		record := f.records[vr]
		out = append(out, &record)
	}
	return out, nil
}

func (f *fakeDeliveryRepo) ListRange(ctx context.Context, start, end time.Time) ([]*models.DeliveryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.DeliveryRecord
	for vr := range f.records {
		record := f.records[vr]
		if !record.ScheduledDate.Before(start) && !record.ScheduledDate.After(end) {
			out = append(out, &record)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) CreateIfAbsent(ctx context.Context, record *models.DeliveryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.VRNumber]; ok {
		return nil
	}
	f.records[record.VRNumber] = *record
	return nil
}

func (f *fakeDeliveryRepo) Mutate(ctx context.Context, vr string, fn func(record *models.DeliveryRecord) error) (*models.DeliveryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[vr]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(&record); err != nil {
		return nil, err
	}
	f.records[vr] = record
	return &record, nil
}

func newTestDeliveryService(t *testing.T) (DeliveryService, *fakeDeliveryRepo) {
	t.Helper()
	repo := newFakeDeliveryRepo()
	noCache, err := cache.NewRedisClient(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	log := logrus.New()
	return NewDeliveryService(repo, noCache, log), repo
}

func TestEnsureRecordCreatesScheduledRecord(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	scheduled := time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC)
	record, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{
		ScheduledDate: scheduled,
		Tonnage:       20,
	})
	require.NoError(t, err)
	require.Equal(t, "121125-109", record.VRNumber)
	require.Equal(t, models.DeliveryScheduled, record.Status)
	require.Equal(t, 20.0, record.Tonnage)
	require.Empty(t, record.PhotoURLs)
	require.Empty(t, record.WeightTicketURLs)
	require.Nil(t, record.DeliveredAt)
}

func TestEnsureRecordIsIdempotent(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	first, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{Tonnage: 20})
	require.NoError(t, err)

	// A concurrent or repeated ensure must not replace the existing record
	second, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{Tonnage: 99})
	require.NoError(t, err)
	require.Equal(t, first.UUID, second.UUID)
	require.Equal(t, 20.0, second.Tonnage)
}

func TestEnsureRecordRejectsEmptyToken(t *testing.T) {
	svc, _ := newTestDeliveryService(t)

	_, err := svc.EnsureRecord(context.Background(), "   ", RecordDefaults{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkDeliveredSetsStampOnce(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{Tonnage: 20})
	require.NoError(t, err)

	before := time.Now().UTC()
	record, err := svc.MarkDelivered(ctx, "121125-109", "Field Team")
	require.NoError(t, err)
	require.Equal(t, models.DeliveryDelivered, record.Status)
	require.Equal(t, "Field Team", record.DeliveredBy)
	require.NotNil(t, record.DeliveredAt)
	require.False(t, record.DeliveredAt.Before(before))

	// Second call is a no-op, not an error, and keeps the original stamp
	again, err := svc.MarkDelivered(ctx, "121125-109", "Someone Else")
	require.NoError(t, err)
	require.Equal(t, models.DeliveryDelivered, again.Status)
	require.Equal(t, "Field Team", again.DeliveredBy)
	require.Equal(t, record.DeliveredAt, again.DeliveredAt)
}

func TestMarkDeliveredRequiresExistingRecord(t *testing.T) {
	svc, _ := newTestDeliveryService(t)

	_, err := svc.MarkDelivered(context.Background(), "000000-000", "Field Team")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMarkDeliveredRequiresActor(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{})
	require.NoError(t, err)

	_, err = svc.MarkDelivered(ctx, "121125-109", "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUndoDeliveryClearsStamp(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{})
	require.NoError(t, err)
	_, err = svc.MarkDelivered(ctx, "121125-109", "Field Team")
	require.NoError(t, err)

	record, err := svc.UndoDelivery(ctx, "121125-109")
	require.NoError(t, err)
	require.Equal(t, models.DeliveryScheduled, record.Status)
	require.Nil(t, record.DeliveredAt)
	require.Empty(t, record.DeliveredBy)

	// Undoing an already-scheduled record succeeds
	_, err = svc.UndoDelivery(ctx, "121125-109")
	require.NoError(t, err)
}

func TestUpdateTonnage(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{Tonnage: 20})
	require.NoError(t, err)

	_, err = svc.UpdateTonnage(ctx, "121125-109", -5)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateTonnage(ctx, "121125-109", 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	record, err := svc.UpdateTonnage(ctx, "121125-109", 40000)
	require.NoError(t, err)
	require.Equal(t, 20.0, record.Tonnage)

	got, err := svc.GetRecord(ctx, "121125-109")
	require.NoError(t, err)
	require.Equal(t, 20.0, got.Tonnage)
}

func TestPhotoAppendRemoveRoundTrip(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{})
	require.NoError(t, err)

	record, err := svc.AppendPhoto(ctx, "121125-109", "https://storage/a.jpg")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/a.jpg"}, record.PhotoURLs)

	record, err = svc.AppendPhoto(ctx, "121125-109", "https://storage/b.jpg")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/a.jpg", "https://storage/b.jpg"}, record.PhotoURLs)

	// Removing restores the pre-append state for the remaining elements
	record, err = svc.RemovePhoto(ctx, "121125-109", "https://storage/b.jpg")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/a.jpg"}, record.PhotoURLs)

	// Removing a URL that is not present is a no-op
	record, err = svc.RemovePhoto(ctx, "121125-109", "https://storage/missing.jpg")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/a.jpg"}, record.PhotoURLs)
}

func TestWeightTicketListIsIndependent(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{})
	require.NoError(t, err)

	record, err := svc.AppendWeightTicket(ctx, "121125-109", "https://storage/ticket.pdf")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/ticket.pdf"}, record.WeightTicketURLs)
	require.Empty(t, record.PhotoURLs)
}

func TestFieldScenario(t *testing.T) {
	svc, _ := newTestDeliveryService(t)
	ctx := context.Background()

	scheduled := time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC)
	record, err := svc.EnsureRecord(ctx, "121125-109", RecordDefaults{
		ScheduledDate: scheduled,
		Tonnage:       20,
	})
	require.NoError(t, err)
	require.Equal(t, models.DeliveryScheduled, record.Status)
	require.Equal(t, 20.0, record.Tonnage)
	require.Empty(t, record.PhotoURLs)

	record, err = svc.AppendPhoto(ctx, "121125-109", "https://storage/x.jpg")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"https://storage/x.jpg"}, record.PhotoURLs)

	before := time.Now().UTC()
	record, err = svc.MarkDelivered(ctx, "121125-109", "Field Team")
	require.NoError(t, err)
	require.Equal(t, models.DeliveryDelivered, record.Status)
	require.Equal(t, "Field Team", record.DeliveredBy)
	require.NotNil(t, record.DeliveredAt)
	require.False(t, record.DeliveredAt.Before(before))
}

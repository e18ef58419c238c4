package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/schedule"

	"github.com/sirupsen/logrus"
)

// MockIntakeRepository is a mock implementation of repository.IntakeRepository
type MockIntakeRepository struct {
	mock.Mock
}

func (m *MockIntakeRepository) Create(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntakeTicket), args.Error(1)
}

func (m *MockIntakeRepository) Update(ctx context.Context, ticket *models.IntakeTicket) (*models.IntakeTicket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntakeTicket), args.Error(1)
}

func (m *MockIntakeRepository) GetByID(ctx context.Context, id string) (*models.IntakeTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntakeTicket), args.Error(1)
}

func (m *MockIntakeRepository) GetByVR(ctx context.Context, vr string) (*models.IntakeTicket, error) {
	args := m.Called(ctx, vr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntakeTicket), args.Error(1)
}

func (m *MockIntakeRepository) List(ctx context.Context) ([]models.IntakeTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IntakeTicket), args.Error(1)
}

func (m *MockIntakeRepository) ListRange(ctx context.Context, start, end time.Time) ([]models.IntakeTicket, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IntakeTicket), args.Error(1)
}

func intakeTicket(vr string, scheduled time.Time, tag models.StatusTag) models.IntakeTicket {
	ticket := models.IntakeTicket{
		ScheduledDate: scheduled,
		StatusTag:     tag,
	}
	if vr != "" {
		ticket.VRNumber = &vr
	}
	return ticket
}

func TestCreateTicketDefaultsToScheduled(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(ticket *models.IntakeTicket) bool {
		return ticket.StatusTag == models.TagScheduled &&
			ticket.VRNumber != nil && *ticket.VRNumber == "121825-101"
	})).Return(&models.IntakeTicket{StatusTag: models.TagScheduled}, nil)

	_, err := svc.CreateTicket(ctx, &CreateIntakeRequest{
		VRNumber:      " 121825-101 ",
		ScheduledDate: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateTicketWithoutVRNumber(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	// A load can be on the calendar before a reference token exists
	repo.On("Create", ctx, mock.MatchedBy(func(ticket *models.IntakeTicket) bool {
		return ticket.VRNumber == nil
	})).Return(&models.IntakeTicket{}, nil)

	_, err := svc.CreateTicket(ctx, &CreateIntakeRequest{
		ScheduledDate: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateTicketRejectsUnknownTag(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())

	_, err := svc.CreateTicket(context.Background(), &CreateIntakeRequest{
		ScheduledDate: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		StatusTag:     "vanished",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateTicketAppliesPartialEdit(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	existing := &models.IntakeTicket{
		Base:          models.Base{UUID: "ticket-1"},
		ScheduledDate: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		StatusTag:     models.TagScheduled,
		Note:          "gate code 4411",
	}
	repo.On("GetByID", ctx, "ticket-1").Return(existing, nil)

	moved := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
	tag := string(models.TagMoved)
	repo.On("Update", ctx, mock.MatchedBy(func(ticket *models.IntakeTicket) bool {
		// Untouched fields survive a partial edit
		return ticket.UUID == "ticket-1" &&
			ticket.ScheduledDate.Equal(moved) &&
			ticket.StatusTag == models.TagMoved &&
			ticket.Note == "gate code 4411"
	})).Return(existing, nil)

	_, err := svc.UpdateTicket(ctx, "ticket-1", &UpdateIntakeRequest{
		ScheduledDate: &moved,
		StatusTag:     &tag,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateTicketNotFound(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateTicket(ctx, "missing", &UpdateIntakeRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDayBucketsClassifiesMixedDay(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	day := time.Date(2025, 12, 18, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC)

	// The query covers the span through the end of the last requested day
	repo.On("ListRange", ctx, start, end.AddDate(0, 0, 1)).Return([]models.IntakeTicket{
		intakeTicket("121825-101", day, models.TagScheduled),
		intakeTicket("121825-102", day.Add(2*time.Hour), models.TagArrived),
	}, nil)

	buckets, err := svc.DayBuckets(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, "2025-12-18", buckets[0].Date)
	require.Equal(t, schedule.DayMixed, buckets[0].Class)
	require.Equal(t, 2, buckets[0].Totals.Count)
	require.Equal(t, 1, buckets[0].Totals.DeliveredCount)
}

func TestSummaryUsesTonsPerLoadRate(t *testing.T) {
	repo := new(MockIntakeRepository)
	svc := NewScheduleService(repo, time.UTC, 20, logrus.New())
	ctx := context.Background()

	day := time.Date(2025, 12, 18, 9, 0, 0, 0, time.UTC)
	repo.On("List", ctx).Return([]models.IntakeTicket{
		intakeTicket("121825-101", day, models.TagArrived),
		intakeTicket("121825-102", day, models.TagMoved),
		intakeTicket("121925-103", day.Add(24*time.Hour), models.TagScheduled),
	}, nil)

	totals, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, totals.Count)
	require.Equal(t, 2, totals.DeliveredCount)
	require.Equal(t, 60.0, totals.TotalTons)
}

func TestTodayUsesBusinessTimezone(t *testing.T) {
	repo := new(MockIntakeRepository)
	businessTZ := time.FixedZone("CST", -6*3600)
	svc := NewScheduleService(repo, businessTZ, 20, logrus.New())
	ctx := context.Background()

	// 02:00 UTC on the 19th is still the 18th in business time
	now := time.Date(2025, 12, 19, 2, 0, 0, 0, time.UTC)
	repo.On("List", ctx).Return([]models.IntakeTicket{
		intakeTicket("121825-101", time.Date(2025, 12, 18, 15, 0, 0, 0, time.UTC), models.TagScheduled),
		intakeTicket("121925-102", time.Date(2025, 12, 19, 15, 0, 0, 0, time.UTC), models.TagScheduled),
	}, nil)

	bucket, err := svc.Today(ctx, now)
	require.NoError(t, err)
	require.Equal(t, "2025-12-18", bucket.Date)
	require.Len(t, bucket.Entries, 1)
	require.Equal(t, "121825-101", *bucket.Entries[0].VRNumber)
}

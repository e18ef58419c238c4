package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/schedule"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"
)

// businessTZ is a fixed negative offset so day boundaries differ from UTC
var businessTZ = time.FixedZone("CST", -6*3600)

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

func newDaysRouter(repo *MockIntakeRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewScheduleService(repo, businessTZ, 20, logrus.New())
	handler := NewScheduleHandler(svc, businessTZ, logrus.New())

	router := gin.New()
	router.GET("/schedule/days", handler.Days)
	return router
}

func TestDaysInterpretsDatesInBusinessTimezone(t *testing.T) {
	vr := "121125-109"
	// 15:00 UTC is 09:00 business time on the 11th
	ticket := models.IntakeTicket{
		VRNumber:      &vr,
		ScheduledDate: time.Date(2025, 12, 11, 15, 0, 0, 0, time.UTC),
		StatusTag:     models.TagScheduled,
	}

	repo := new(MockIntakeRepository)
	repo.On("ListRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.IntakeTicket{ticket}, nil)

	router := newDaysRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedule/days?start=2025-12-11&end=2025-12-11", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// A single-day request must return that business-timezone day, not the
	// one before it
	var buckets []schedule.DayBucket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	require.Len(t, buckets, 1)
	require.Equal(t, "2025-12-11", buckets[0].Date)
	require.Len(t, buckets[0].Entries, 1)

	// The query bounds are business-timezone midnights
	require.Len(t, repo.Calls, 1)
	start := repo.Calls[0].Arguments.Get(1).(time.Time)
	require.True(t, start.Equal(time.Date(2025, 12, 11, 0, 0, 0, 0, businessTZ)))
}

func TestDaysRejectsMalformedDate(t *testing.T) {
	repo := new(MockIntakeRepository)
	router := newDaysRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedule/days?start=12/11/2025&end=2025-12-11", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "ListRange")
}

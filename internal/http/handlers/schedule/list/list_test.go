package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yousrr/FitZone/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Schedule(ctx context.Context, filter models.ScheduleFilter) ([]models.Session, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "расписание без фильтра",
			url:  "/api/member/schedule",
			setupMock: func(m *MockService) {
				m.On("Schedule", mock.Anything, models.ScheduleFilter{}).
					Return([]models.Session{{ID: "s1", Title: "Morning CrossFit"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Morning CrossFit"`,
		},
		{
			name: "фильтр по дню недели и категории",
			url:  "/api/member/schedule?dayOfWeek=Monday&category=yoga",
			setupMock: func(m *MockService) {
				m.On("Schedule", mock.Anything, models.ScheduleFilter{DayOfWeek: "Monday", Category: "yoga"}).
					Return([]models.Session{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/member/schedule",
			setupMock: func(m *MockService) {
				m.On("Schedule", mock.Anything, models.ScheduleFilter{}).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Failed to load schedule"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

package me

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

	"github.com/yousrr/FitZone/internal/http/middlewarectx"
	"github.com/yousrr/FitZone/internal/models"
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// MockService реализует интерфейс me.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Profile(ctx context.Context, uid, email string) (*services.Profile, error) {
	args := m.Called(ctx, uid, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Profile), args.Error(1)
}

func TestMeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "полный профиль",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "uid-1", "a@b.com").Return(&services.Profile{
					User:         &models.Member{UID: "uid-1", Email: "a@b.com"},
					Subscription: &models.Subscription{UserUID: "uid-1", Status: models.SubscriptionStatusActive},
					Plan:         &models.Plan{ID: "pro", Name: "Pro Membership"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"plan":{"id":"pro","name":"Pro Membership"`,
		},
		{
			name:     "профиль без подписки и плана",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "uid-1", "a@b.com").Return(&services.Profile{
					User: map[string]string{"id": "uid-1", "email": "a@b.com"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription":null`,
		},
		{
			name:           "нет идентификации пользователя",
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"Missing user"}`,
		},
		{
			name:     "ошибка сервиса",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "uid-1", "a@b.com").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Failed to load profile"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.withUser {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
				ctx = context.WithValue(ctx, middlewarectx.UserEmail, "a@b.com")
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

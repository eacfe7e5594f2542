package signup

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
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, req models.DummySignup) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

const validBody = `{
	"contractCode": "gym-0001",
	"firstName": "A",
	"lastName": "B",
	"dateOfBirth": "1990-01-01",
	"trainingFrequency": "3-4/week",
	"email": "a@b.com",
	"password": "secret1",
	"confirmPassword": "secret1"
}`

func TestSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("tok-123", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token":"tok-123"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствуют обязательные поля",
			body:           `{"email":"a@b.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Missing required fields"}`,
		},
		{
			name: "некорректный email",
			body: `{
				"contractCode": "gym-0001",
				"firstName": "A",
				"lastName": "B",
				"dateOfBirth": "1990-01-01",
				"trainingFrequency": "3-4/week",
				"email": "not-an-email",
				"password": "secret1",
				"confirmPassword": "secret1"
			}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "пароли не совпадают",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrPasswordMismatch)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Passwords do not match"}`,
		},
		{
			name: "контрактный код не найден",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrCodeNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Invalid contract code"}`,
		},
		{
			name: "контрактный код не активен",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrCodeNotActive)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Contract code is not active"}`,
		},
		{
			name: "контрактный код просрочен",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrCodeExpired)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Contract code expired"}`,
		},
		{
			name: "email уже занят",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrEmailInUse)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"Email already in use"}`,
		},
		{
			name: "регистрация прошла, обмен токена не удался",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", services.ErrTokenIssue)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Signup succeeded, but login failed"}`,
		},
		{
			name: "ошибка сервиса",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Failed to create user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

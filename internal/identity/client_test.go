package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousrr/FitZone/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.IdentityProvider{
		BaseURL: srv.URL,
		APIKey:  "fake-api-key",
	})
}

func TestClient_SignIn(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantToken string
		wantErr   string
	}{
		{
			name: "успешный обмен пароля на токен",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
				assert.Equal(t, "fake-api-key", r.URL.Query().Get("key"))

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "a@b.com", body["email"])
				assert.Equal(t, true, body["returnSecureToken"])

				_ = json.NewEncoder(w).Encode(map[string]any{"idToken": "tok-123"})
			},
			wantToken: "tok-123",
		},
		{
			name: "неверный пароль с сообщением сервиса",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "INVALID_PASSWORD"},
				})
			},
			wantErr: "INVALID_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			token, err := client.SignIn(context.Background(), "a@b.com", "secret1")

			if tt.wantErr != "" {
				require.Error(t, err)
				var ue *UpstreamError
				require.ErrorAs(t, err, &ue)
				assert.Equal(t, tt.wantErr, ue.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestClient_SignUp(t *testing.T) {
	t.Run("успешное создание аккаунта", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{"localId": "uid-1"})
		})

		uid, err := client.SignUp(context.Background(), "a@b.com", "secret1", "A B")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", uid)
	})

	t.Run("занятый email даёт ErrEmailInUse", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "EMAIL_EXISTS"},
			})
		})

		_, err := client.SignUp(context.Background(), "a@b.com", "secret1", "A B")
		assert.ErrorIs(t, err, ErrEmailInUse)
	})
}

func TestClient_Lookup(t *testing.T) {
	t.Run("валидный токен", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts:lookup", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"users": []map[string]any{
					{"localId": "uid-1", "email": "a@b.com", "displayName": "A B"},
				},
			})
		})

		info, err := client.Lookup(context.Background(), "tok-123")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", info.UID)
		assert.Equal(t, "a@b.com", info.Email)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "INVALID_ID_TOKEN"},
			})
		})

		info, err := client.Lookup(context.Background(), "expired")
		assert.Error(t, err)
		assert.Nil(t, info)
	})

	t.Run("недоступный сервис", func(t *testing.T) {
		client := New(config.IdentityProvider{
			BaseURL: "http://127.0.0.1:1",
			APIKey:  "fake-api-key",
		})

		_, err := client.Lookup(context.Background(), "tok")
		assert.Error(t, err)
	})
}

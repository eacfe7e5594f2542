// Package identity реализует клиент identity-сервиса: обмен пары
// email/пароль на bearer-токен, создание учётной записи и проверку токена.
//
// Адрес сервиса и ключ доступа задаются конфигом; при работе с локальным
// инстансом используется ключ-заглушка, код при этом не меняется. Для
// остальной системы токен непрозрачен и проверяется только через Lookup.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yousrr/FitZone/internal/config"
)

// ErrEmailInUse возвращается при попытке зарегистрировать занятый email.
var ErrEmailInUse = errors.New("email already in use")

// UpstreamError несёт сообщение об ошибке, которое вернул identity-сервис.
// Сообщение пригодно для показа пользователю (например, INVALID_PASSWORD).
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("identity service: %s (status %d)", e.Message, e.StatusCode)
}

// TokenInfo описывает результат проверки токена.
type TokenInfo struct {
	UID         string
	Email       string
	DisplayName string
}

// Client клиент identity-сервиса.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New создает клиент по настройкам из конфига.
func New(cfg config.IdentityProvider) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// post выполняет запрос к endpoint с ключом доступа и декодирует ответ в out.
// Не-2xx ответ транслируется в *UpstreamError с сообщением сервиса.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	const op = "identity.post"

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	url := fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &UpstreamError{StatusCode: resp.StatusCode, Message: eb.Error.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SignUp создает учётную запись и возвращает её UID.
//
// Занятый email отличим от прочих ошибок: сервис отвечает EMAIL_EXISTS,
// что транслируется в ErrEmailInUse.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	const op = "identity.SignUp"

	in := map[string]any{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	}
	var out struct {
		LocalID string `json:"localId"`
	}
	if err := c.post(ctx, "signUp", in, &out); err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Message == "EMAIL_EXISTS" {
			return "", fmt.Errorf("%s: %w", op, ErrEmailInUse)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out.LocalID, nil
}

// SignIn обменивает email и пароль на bearer-токен.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	const op = "identity.SignIn"

	in := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var out struct {
		IDToken string `json:"idToken"`
	}
	if err := c.post(ctx, "signInWithPassword", in, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out.IDToken, nil
}

// Lookup проверяет токен и возвращает данные учётной записи.
func (c *Client) Lookup(ctx context.Context, token string) (*TokenInfo, error) {
	const op = "identity.Lookup"

	in := map[string]any{
		"idToken": token,
	}
	var out struct {
		Users []struct {
			LocalID     string `json:"localId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		} `json:"users"`
	}
	if err := c.post(ctx, "lookup", in, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(out.Users) == 0 {
		return nil, fmt.Errorf("%s: empty lookup response", op)
	}
	return &TokenInfo{
		UID:         out.Users[0].LocalID,
		Email:       out.Users[0].Email,
		DisplayName: out.Users[0].DisplayName,
	}, nil
}

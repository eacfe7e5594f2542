// Package client реализует клиентскую сессию FitZone API.
//
// SessionGate хранит токен сессии и отслеживает состояние входа.
// При инициализации с сохранённым токеном выполняется запрос "кто я";
// любая ошибка проверки означает сброс токена и переход в Anonymous.
// Аутентифицированным считается состояние с токеном И загруженным
// профилем: токен без профиля аутентификацией не является.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yousrr/FitZone/internal/models"
)

// State состояние клиентской сессии.
type State string

const (
	// StateUninitialized — до первого вызова Init.
	StateUninitialized State = "uninitialized"
	// StateLoading — выполняется проверка сохранённого токена.
	StateLoading State = "loading"
	// StateAuthenticated — есть токен и загруженный профиль.
	StateAuthenticated State = "authenticated"
	// StateAnonymous — токена нет либо он отвергнут.
	StateAnonymous State = "anonymous"
)

// ErrNotAuthenticated возвращается при запросе профиля без входа.
var ErrNotAuthenticated = errors.New("not authenticated")

// TokenStore описывает хранилище токена между запусками.
type TokenStore interface {
	// Load возвращает сохранённый токен, пустая строка — токена нет.
	Load() (string, error)
	// Save сохраняет токен.
	Save(token string) error
	// Clear удаляет сохранённый токен.
	Clear() error
}

// MemoryTokenStore хранит токен в памяти процесса.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// Load возвращает сохранённый токен.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save сохраняет токен.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear удаляет сохранённый токен.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStore хранит токен в файле, переживает перезапуск процесса.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore создает хранилище токена по пути path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load возвращает сохранённый токен; отсутствие файла — отсутствие токена.
func (s *FileTokenStore) Load() (string, error) {
	const op = "client.FileTokenStore.Load"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save сохраняет токен.
func (s *FileTokenStore) Save(token string) error {
	const op = "client.FileTokenStore.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет сохранённый токен.
func (s *FileTokenStore) Clear() error {
	const op = "client.FileTokenStore.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Me денормализованный профиль из ответа "кто я".
type Me struct {
	User         json.RawMessage      `json:"user"`
	Subscription *models.Subscription `json:"subscription"`
	Plan         *models.Plan         `json:"plan"`
}

// SessionGate отслеживает состояние входа и держит загруженный профиль.
type SessionGate struct {
	baseURL string
	store   TokenStore
	http    *http.Client

	mu      sync.RWMutex
	state   State
	token   string
	profile *Me
}

// NewSessionGate создает SessionGate для API по адресу baseURL.
func NewSessionGate(baseURL string, store TokenStore) *SessionGate {
	return &SessionGate{
		baseURL: baseURL,
		store:   store,
		http:    &http.Client{Timeout: 10 * time.Second},
		state:   StateUninitialized,
	}
}

// State возвращает текущее состояние сессии.
func (g *SessionGate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Profile возвращает загруженный профиль. Доступен только в Authenticated.
func (g *SessionGate) Profile() (*Me, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != StateAuthenticated || g.profile == nil {
		return nil, ErrNotAuthenticated
	}
	return g.profile, nil
}

// Token возвращает текущий токен сессии, пустая строка — токена нет.
func (g *SessionGate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Init загружает сохранённый токен и проверяет его запросом "кто я".
// Без токена сессия сразу становится Anonymous.
func (g *SessionGate) Init(ctx context.Context) error {
	const op = "client.SessionGate.Init"

	token, err := g.store.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		g.setAnonymous()
		return nil
	}

	g.mu.Lock()
	g.state = StateLoading
	g.mu.Unlock()

	return g.refresh(ctx, token)
}

// Login сохраняет полученный токен и загружает профиль.
func (g *SessionGate) Login(ctx context.Context, token string) error {
	const op = "client.SessionGate.Login"

	if err := g.store.Save(token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return g.refresh(ctx, token)
}

// Logout удаляет токен и переводит сессию в Anonymous.
func (g *SessionGate) Logout() error {
	const op = "client.SessionGate.Logout"

	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	g.setAnonymous()
	return nil
}

func (g *SessionGate) setAnonymous() {
	g.mu.Lock()
	g.state = StateAnonymous
	g.token = ""
	g.profile = nil
	g.mu.Unlock()
}

// refresh выполняет запрос "кто я". Отвергнутый токен сбрасывается,
// сессия становится Anonymous без ошибки наружу.
func (g *SessionGate) refresh(ctx context.Context, token string) error {
	const op = "client.SessionGate.refresh"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/auth/me", nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.http.Do(req)
	if err != nil {
		_ = g.store.Clear()
		g.setAnonymous()
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_ = g.store.Clear()
		g.setAnonymous()
		return nil
	}

	var me Me
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		_ = g.store.Clear()
		g.setAnonymous()
		return nil
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.token = token
	g.profile = &me
	g.mu.Unlock()
	return nil
}

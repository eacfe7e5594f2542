// Package identityserver реализует HTTP-сервер identity-сервиса.
//
// Server обрабатывает запросы создания учётной записи, входа по паролю
// и проверки токена. Формат запросов и ответов совместим с клиентом из
// пакета identity: endpoint-ы /v1/accounts:* с ключом доступа в query,
// ошибки в виде {"error":{"message":"..."}} с машиночитаемым кодом.
package identityserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/lib/sl"
	services "github.com/yousrr/FitZone/internal/services/identity"
	"github.com/yousrr/FitZone/internal/storage/repository"
)

// Server обрабатывает HTTP-запросы identity-сервиса.
type Server struct {
	authService *services.AuthService
	apiKey      string
	log         *slog.Logger
}

// New создает новый экземпляр Server с указанным сервисом учётных записей и логгером.
func New(authService *services.AuthService, apiKey string, logger *slog.Logger) *Server {
	return &Server{
		authService: authService,
		apiKey:      apiKey,
		log:         logger,
	}
}

// Routes собирает маршрутизатор identity-сервиса.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)
	r.Post("/v1/accounts:signUp", s.handleSignUp)
	r.Post("/v1/accounts:signInWithPassword", s.handleSignIn)
	r.Post("/v1/accounts:lookup", s.handleLookup)
	return r
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]any{
		"error": map[string]any{
			"message": message,
		},
	})
}

// checkAPIKey сверяет ключ доступа из query. Локальный инстанс работает
// с ключом-заглушкой, сверка при этом та же.
func (s *Server) checkAPIKey(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("key") != s.apiKey {
		s.log.Error("invalid api key")
		s.writeError(w, r, http.StatusForbidden, "INVALID_API_KEY")
		return false
	}
	return true
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if !s.checkAPIKey(w, r) {
		return
	}

	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "MISSING_EMAIL_OR_PASSWORD")
		return
	}

	s.log.Info("signUp request", slog.String("email", req.Email))

	uid, err := s.authService.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.log.Error("signUp failed, email taken", slog.String("email", req.Email))
			s.writeError(w, r, http.StatusBadRequest, "EMAIL_EXISTS")
			return
		}
		s.log.Error("signUp failed", sl.Err(err))
		s.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	render.JSON(w, r, map[string]any{
		"localId": uid,
		"email":   req.Email,
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if !s.checkAPIKey(w, r) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	s.log.Info("signInWithPassword request", slog.String("email", req.Email))

	token, err := s.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// Несуществующий email и неверный пароль не различаются.
		s.log.Error("signIn failed", slog.String("email", req.Email))
		s.writeError(w, r, http.StatusBadRequest, "INVALID_LOGIN_CREDENTIALS")
		return
	}

	render.JSON(w, r, map[string]any{
		"idToken": token,
		"email":   req.Email,
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if !s.checkAPIKey(w, r) {
		return
	}

	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	account, err := s.authService.Lookup(r.Context(), req.IDToken)
	if err != nil {
		s.log.Error("lookup failed", sl.Err(err))
		s.writeError(w, r, http.StatusBadRequest, "INVALID_ID_TOKEN")
		return
	}

	render.JSON(w, r, map[string]any{
		"users": []map[string]any{
			{
				"localId":     account.UID,
				"email":       account.Email,
				"displayName": account.DisplayName,
			},
		},
	})
}

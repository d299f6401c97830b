package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/codequest-dev/codequest-server/accounts"
	"github.com/codequest-dev/codequest-server/auth"
	"github.com/codequest-dev/codequest-server/internal/utils"
	"github.com/codequest-dev/codequest-server/users"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

// userWithNotifications is the /auth/me wire shape: the profile document with
// the account's notifications merged in.
type userWithNotifications struct {
	*users.User
	Notifications []accounts.Notification `json:"notifications"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// RegisterHandler creates an account plus a fresh profile and returns a
// session token (POST /auth/register)
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		if req.Email == "" || req.Password == "" || req.Name == "" || len(req.Password) < s.config.GetMinPasswordLength() {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		ctx := r.Context()
		if _, err := s.repos.Accounts.GetByEmail(ctx, req.Email); err == nil {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		} else if !errors.Is(err, accounts.NotFoundErr) {
			log.Error().Err(err).Msg("account lookup failed during registration")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		account := &accounts.Account{
			ID:            uuid.New().String(),
			Email:         req.Email,
			PasswordHash:  auth.HashPassword(req.Password),
			Notifications: []accounts.Notification{},
		}
		if err := s.repos.Accounts.Create(ctx, account); err != nil {
			log.Error().Err(err).Msg("account creation failed")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		token, err := s.authority.CreateToken(account.ID, account.Email)
		if err != nil {
			log.Error().Err(err).Msg("token issuance failed during registration")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		if err := s.repos.Users.Upsert(ctx, users.NewUser(account.ID, req.Name)); err != nil {
			log.Error().Err(err).Msg("profile creation failed")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		// Best effort; a failed welcome message must not fail registration.
		s.sendNotification(ctx, account.ID, "Welcome to "+s.config.GetAppName()+"!", "Thanks for joining us. Start coding!")

		writeJSON(w, http.StatusCreated, authResponse{
			Token: token,
			User:  authUser{ID: account.ID, Email: account.Email, Name: req.Name},
		})
	}
}

// LoginHandler verifies credentials and returns a session token
// (POST /auth/login). Unknown email and wrong password are indistinguishable
// to the caller.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password required")
			return
		}

		account, err := s.repos.Accounts.GetByEmail(r.Context(), req.Email)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !auth.CheckPassword(req.Password, account.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := s.authority.CreateToken(account.ID, account.Email)
		if err != nil {
			log.Error().Err(err).Msg("token issuance failed during login")
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			Token: token,
			User:  authUser{ID: account.ID, Email: account.Email},
		})
	}
}

// MeHandler returns the authenticated user's profile merged with their
// notifications (GET /auth/me)
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())

		user, err := s.repos.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		notifications := []accounts.Notification{}
		if account, err := s.repos.Accounts.GetByID(r.Context(), identity.UserID); err == nil {
			notifications = account.Notifications
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"user": userWithNotifications{User: user, Notifications: notifications},
		})
	}
}

type updateMeRequest struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// UpdateMeHandler changes the authenticated user's name and/or photo
// (PUT /auth/me)
func (s *Server) UpdateMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())

		var req updateMeRequest
		if err := decodeJSON(r, &req); err != nil || (req.Name == "" && req.Photo == "") {
			writeError(w, http.StatusBadRequest, "Provide name or photo")
			return
		}

		update := users.Update{}
		if req.Name != "" {
			name := strings.TrimSpace(req.Name)
			if name == "" {
				name = "Unknown"
			}
			update.Name = utils.Ptr(name)
		}
		if req.Photo != "" {
			update.Photo = utils.Ptr(strings.TrimSpace(req.Photo))
		}

		user, err := s.repos.Users.Update(r.Context(), identity.UserID, update)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Update failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

func (s *Server) sendNotification(ctx context.Context, accountID, title, text string) {
	account, err := s.repos.Accounts.GetByID(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Str("account", accountID).Msg("notification target lookup failed")
		return
	}
	notifications := append(account.Notifications, accounts.NewNotification(title, text))
	if err := s.repos.Accounts.UpdateNotifications(ctx, accountID, notifications); err != nil {
		log.Error().Err(err).Str("account", accountID).Msg("notification write failed")
	}
}

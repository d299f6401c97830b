package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/codequest-dev/codequest-server/users"
)

// ListUsersHandler returns all profiles; the client builds the leaderboard
// from this (GET /api/users)
func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userList, err := s.repos.Users.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("user listing failed")
			writeError(w, http.StatusInternalServerError, "Failed to get users")
			return
		}
		writeJSON(w, http.StatusOK, userList)
	}
}

// UpdateUserHandler applies a partial profile update (level, xp, streak,
// achievements and so on) via PUT /api/users/{userId}
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")

		var update users.Update
		if err := decodeJSON(r, &update); err != nil {
			writeError(w, http.StatusBadRequest, "Update failed")
			return
		}

		user, err := s.repos.Users.Update(r.Context(), userID, update)
		if err != nil {
			if errors.Is(err, users.NotFoundErr) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Error().Err(err).Str("user", userID).Msg("profile update failed")
			writeError(w, http.StatusInternalServerError, "Update failed")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// DeleteUserHandler removes a profile (DELETE /api/users/{userId})
func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")

		if err := s.repos.Users.Delete(r.Context(), userID); err != nil && !errors.Is(err, users.NotFoundErr) {
			log.Error().Err(err).Str("user", userID).Msg("profile delete failed")
			writeError(w, http.StatusInternalServerError, "Delete failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	}
}

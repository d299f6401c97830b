package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codequest-dev/codequest-server/users"
)

type codeRequest struct {
	Title       string           `json:"title"`
	Language    string           `json:"language"`
	Description string           `json:"description"`
	Files       []users.CodeFile `json:"files"`
}

func (c codeRequest) valid() bool {
	return strings.TrimSpace(c.Title) != "" && strings.TrimSpace(c.Language) != "" && c.Files != nil
}

// CreateCodeHandler publishes a new snippet on the requester's profile
// (POST /api/codes)
func (s *Server) CreateCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())

		var req codeRequest
		if err := decodeJSON(r, &req); err != nil || !req.valid() {
			writeError(w, http.StatusBadRequest, "Required fields missing")
			return
		}

		user, err := s.repos.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		code := newCode(identity.UserID, req)
		codes := append(user.Codes, code)
		if _, err := s.repos.Users.Update(r.Context(), identity.UserID, users.Update{Codes: &codes}); err != nil {
			log.Error().Err(err).Msg("code creation failed")
			writeError(w, http.StatusInternalServerError, "Create code failed")
			return
		}
		writeJSON(w, http.StatusCreated, code)
	}
}

// UpdateCodeHandler updates one of the requester's snippets, or appends a new
// one when the id is unknown (PUT /api/codes/{codeId})
func (s *Server) UpdateCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		codeID := parseCodeID(r)

		var req codeRequest
		if err := decodeJSON(r, &req); err != nil || !req.valid() {
			writeError(w, http.StatusBadRequest, "Required fields missing")
			return
		}

		user, err := s.repos.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		var result users.Code
		if idx := user.FindCode(codeID); idx != -1 {
			code := &user.Codes[idx]
			code.Title = req.Title
			code.Language = req.Language
			code.Description = req.Description
			code.Files = req.Files
			code.UpdatedAt = users.Timestamp()
			result = *code
		} else {
			result = newCode(identity.UserID, req)
			user.Codes = append(user.Codes, result)
		}

		if _, err := s.repos.Users.Update(r.Context(), identity.UserID, users.Update{Codes: &user.Codes}); err != nil {
			log.Error().Err(err).Msg("code update failed")
			writeError(w, http.StatusInternalServerError, "Update code failed")
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

// DeleteCodeHandler removes one of the requester's snippets
// (DELETE /api/codes/{codeId})
func (s *Server) DeleteCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		codeID := parseCodeID(r)

		user, err := s.repos.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		idx := user.FindCode(codeID)
		if idx == -1 {
			writeError(w, http.StatusNotFound, "Code not found")
			return
		}

		codes := append(user.Codes[:idx], user.Codes[idx+1:]...)
		if _, err := s.repos.Users.Update(r.Context(), identity.UserID, users.Update{Codes: &codes}); err != nil {
			log.Error().Err(err).Msg("code delete failed")
			writeError(w, http.StatusInternalServerError, "Delete code failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Code deleted"})
	}
}

// GetCodeHandler looks a snippet up across every profile
// (GET /api/codes/{codeId})
func (s *Server) GetCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, idx, err := s.findCode(r, parseCodeID(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Get code failed")
			return
		}
		if owner == nil {
			writeError(w, http.StatusNotFound, "Code not found")
			return
		}
		writeJSON(w, http.StatusOK, owner.Codes[idx])
	}
}

// LikeCodeHandler toggles the requester's like on a snippet, whoever owns it
// (POST /api/codes/{codeId}/like)
func (s *Server) LikeCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())

		owner, idx, err := s.findCode(r, parseCodeID(r))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Like failed"})
			return
		}
		if owner == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Code not found"})
			return
		}

		liked := owner.Codes[idx].ToggleLike(identity.UserID)
		if _, err := s.repos.Users.Update(r.Context(), owner.ID, users.Update{Codes: &owner.Codes}); err != nil {
			log.Error().Err(err).Msg("like update failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Like failed"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"code":    owner.Codes[idx],
			"liked":   liked,
		})
	}
}

// ViewCodeHandler increments a snippet's view counter
// (POST /api/codes/{codeId}/view)
func (s *Server) ViewCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, idx, err := s.findCode(r, parseCodeID(r))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "View failed"})
			return
		}
		if owner == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Code not found"})
			return
		}

		owner.Codes[idx].Views++
		if _, err := s.repos.Users.Update(r.Context(), owner.ID, users.Update{Codes: &owner.Codes}); err != nil {
			log.Error().Err(err).Msg("view update failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "View failed"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"views":   owner.Codes[idx].Views,
		})
	}
}

// findCode scans every profile for the code id. A nil owner with nil error
// means not found.
func (s *Server) findCode(r *http.Request, codeID int64) (*users.User, int, error) {
	userList, err := s.repos.Users.List(r.Context())
	if err != nil {
		return nil, 0, err
	}
	for _, user := range userList {
		if idx := user.FindCode(codeID); idx != -1 {
			return user, idx, nil
		}
	}
	return nil, 0, nil
}

func newCode(userID string, req codeRequest) users.Code {
	now := users.Timestamp()
	return users.Code{
		ID:          time.Now().UnixMilli(),
		UserID:      userID,
		Title:       req.Title,
		Language:    req.Language,
		Description: req.Description,
		Files:       req.Files,
		Views:       0,
		LikedBy:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func parseCodeID(r *http.Request) int64 {
	// An unparsable id simply never matches, mirroring a failed lookup.
	id, _ := strconv.ParseInt(r.PathValue("codeId"), 10, 64)
	return id
}

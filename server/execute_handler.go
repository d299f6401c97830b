package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/codequest-dev/codequest-server/playground"
)

type executeRequest struct {
	Language string            `json:"language"`
	Files    []playground.File `json:"files"`
}

// ExecuteHandler runs a snippet in the playground sandbox and returns its
// output (POST /api/execute)
func (s *Server) ExecuteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req executeRequest
		if err := decodeJSON(r, &req); err != nil || req.Language == "" || req.Files == nil {
			writeError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		result, err := s.runner.Run(r.Context(), req.Language, req.Files)
		if err != nil {
			if errors.Is(err, playground.UnsupportedLanguageErr) {
				writeError(w, http.StatusBadRequest, "Language '"+req.Language+"' is not supported for execution")
				return
			}
			log.Error().Err(err).Str("language", req.Language).Msg("playground run failed")
			writeError(w, http.StatusInternalServerError, "Execution service error")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

package server

import (
	"net/http"

	"github.com/saralwebs/kundli/internal/models"
)

// handleToken handles GET /token. It returns the current upstream access
// token, exchanging credentials when no valid cached token exists.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	token, cached, err := s.app.Astrology.Token(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Token exchange failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"cached":       cached,
	})
}

// handleGeocode handles GET /geocode?place=X.
func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	place := r.URL.Query().Get("place")

	result, err := s.app.GeocodeService.Lookup(r.Context(), place)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleGenerateKundli handles POST /generate-kundli.
func (s *Server) handleGenerateKundli(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChartRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.ChartService.Generate(r.Context(), req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart generation failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

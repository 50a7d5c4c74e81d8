// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"knowyourcompany/internal/common/errors"
	"knowyourcompany/internal/models"
)

// CheckCompanyResponse is the envelope every company endpoint returns.
type CheckCompanyResponse struct {
	Success bool            `json:"success"`
	Data    *models.Insight `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) handleCheckCompany(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if result := validateCheckCompanyBody(body); !result.Valid() {
		writeError(w, http.StatusBadRequest, validationMessage(result))
		return
	}

	var req models.CheckRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	s.logger.Info("checking company", map[string]interface{}{"name": req.Name})

	insight, err := s.service.GetInsight(r.Context(), req)
	if err != nil {
		if errors.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("check company failed", map[string]interface{}{"name": req.Name})
		writeError(w, http.StatusInternalServerError, "failed to build company insight")
		return
	}

	writeJSON(w, http.StatusOK, CheckCompanyResponse{
		Success: true,
		Data:    insight,
		Message: "Company analysis completed successfully",
	})
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "canonicalKey")

	insight, err := s.service.GetByKey(r.Context(), key)
	if err != nil {
		if errors.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		s.logger.WithError(err).Error("get company failed", map[string]interface{}{"canonicalKey": key})
		writeError(w, http.StatusInternalServerError, "failed to load company insight")
		return
	}

	writeJSON(w, http.StatusOK, CheckCompanyResponse{
		Success: true,
		Data:    insight,
		Message: "Company data retrieved successfully",
	})
}

func (s *Server) handleRefreshCompany(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "canonicalKey")

	s.logger.Info("refreshing company", map[string]interface{}{"canonicalKey": key})

	insight, err := s.service.RefreshInsight(r.Context(), key)
	if err != nil {
		if errors.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		s.logger.WithError(err).Error("refresh failed", map[string]interface{}{"canonicalKey": key})
		writeError(w, http.StatusInternalServerError, "failed to refresh company insight")
		return
	}

	writeJSON(w, http.StatusOK, CheckCompanyResponse{
		Success: true,
		Data:    insight,
		Message: "Company data refreshed successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, CheckCompanyResponse{
		Success: false,
		Error:   msg,
	})
}

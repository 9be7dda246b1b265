package handlers

import (
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/usecases/queries"
)

type livenessResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type readinessResponse struct {
	Status    string    `json:"status"`
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *DevicesHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, livenessResponse{
			Status:    "down",
			Timestamp: time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, http.StatusOK, livenessResponse{
		Status:    result.Status,
		Timestamp: time.Now().UTC(),
	})
}

func (h *DevicesHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil || !result.Ready {
		status := "unavailable"
		if result != nil {
			status = result.Status
		}

		writeJSONResponse(w, http.StatusServiceUnavailable, readinessResponse{
			Status:    status,
			Ready:     false,
			Timestamp: time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, http.StatusOK, readinessResponse{
		Status:    result.Status,
		Ready:     true,
		Timestamp: time.Now().UTC(),
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"
)

type deviceResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	State        string    `json:"state,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

func toDeviceResponse(device *model.Device) deviceResponse {
	return deviceResponse{
		ID:           int64(device.ID),
		Name:         device.Name,
		Brand:        device.Brand,
		State:        device.State.String(),
		CreationTime: device.CreationTime,
	}
}

// toDeviceListResponse always yields a non-nil slice so empty results
// serialize as [] rather than null.
func toDeviceListResponse(devices []*model.Device) []deviceResponse {
	responses := make([]deviceResponse, 0, len(devices))
	for _, device := range devices {
		responses = append(responses, toDeviceResponse(device))
	}

	return responses
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

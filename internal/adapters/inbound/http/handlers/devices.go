package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/internal/usecases/commands"
	"github.com/architeacher/device-registry/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const msgInvalidRequestBody = "Malformed request body"

type DevicesHandler struct {
	app *usecases.Application
}

func NewDevicesHandler(app *usecases.Application) *DevicesHandler {
	return &DevicesHandler{app: app}
}

func (h *DevicesHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)

		return
	}

	if validationErrs := req.Validate(); validationErrs != nil {
		writeError(w, validationErrs)

		return
	}

	state, _ := model.ParseState(req.State)

	device, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{
		Name:  req.Name,
		Brand: req.Brand,
		State: state,
	})
	if err != nil {
		writeError(w, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/devices/%s", device.ID.String()))
	writeJSONResponse(w, http.StatusCreated, toDeviceResponse(device))
}

func (h *DevicesHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeError(w, err)

		return
	}

	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DevicesHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeError(w, err)

		return
	}

	var req UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)

		return
	}

	if validationErrs := req.Validate(); validationErrs != nil {
		writeError(w, validationErrs)

		return
	}

	state, _ := model.ParseState(req.State)

	device, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{
		ID:    id,
		Name:  req.Name,
		Brand: req.Brand,
		State: state,
	})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DevicesHandler) PatchDevice(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeError(w, err)

		return
	}

	var req PatchDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)

		return
	}

	if validationErrs := req.Validate(); validationErrs != nil {
		writeError(w, validationErrs)

		return
	}

	device, err := h.app.Commands.PatchDevice.Handle(r.Context(), commands.PatchDeviceCommand{
		ID:      id,
		Updates: req.Updates(),
	})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DevicesHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeError(w, err)

		return
	}

	if _, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id}); err != nil {
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDevices serves GET /devices with optional brand and state query
// parameters. A brand-only lookup goes through the dedicated by-brand
// query so its empty-brand guard applies.
func (h *DevicesHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	_, hasBrand := query["brand"]
	_, hasState := query["state"]

	brand := query.Get("brand")
	if hasBrand && strings.TrimSpace(brand) == "" {
		writeError(w, model.ErrEmptyBrand)

		return
	}

	if hasBrand && !hasState {
		devices, err := h.app.Queries.GetDevicesByBrand.Execute(r.Context(), queries.GetDevicesByBrandQuery{Brand: brand})
		if err != nil {
			writeError(w, err)

			return
		}

		writeJSONResponse(w, http.StatusOK, toDeviceListResponse(devices))

		return
	}

	filter := model.DeviceFilter{}

	if hasBrand {
		filter.Brand = &brand
	}

	if hasState {
		state, err := model.ParseState(query.Get("state"))
		if err != nil {
			writeError(w, err)

			return
		}

		filter.State = &state
	}

	devices, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{Filter: filter})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceListResponse(devices))
}

package handlers

import (
	"strings"

	"github.com/architeacher/device-registry/internal/domain/model"
)

type (
	// CreateDeviceRequest carries the full creation payload. All fields
	// are required; validation runs before the business rules do.
	CreateDeviceRequest struct {
		Name  string `json:"name"`
		Brand string `json:"brand"`
		State string `json:"state"`
	}

	// UpdateDeviceRequest carries full-replace semantics: every field
	// is authoritative.
	UpdateDeviceRequest struct {
		Name  string `json:"name"`
		Brand string `json:"brand"`
		State string `json:"state"`
	}

	// PatchDeviceRequest carries partial-update semantics: absent
	// fields leave the stored value unchanged.
	PatchDeviceRequest struct {
		Name  *string `json:"name"`
		Brand *string `json:"brand"`
		State *string `json:"state"`
	}
)

func (r CreateDeviceRequest) Validate() *model.ValidationErrors {
	return validateFullPayload(r.Name, r.Brand, r.State)
}

func (r UpdateDeviceRequest) Validate() *model.ValidationErrors {
	return validateFullPayload(r.Name, r.Brand, r.State)
}

func (r PatchDeviceRequest) Validate() *model.ValidationErrors {
	v := model.NewValidationErrors()

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		v.Add("name", "Name cannot be blank")
	}

	if r.Brand != nil && strings.TrimSpace(*r.Brand) == "" {
		v.Add("brand", "Brand cannot be blank")
	}

	if r.State != nil {
		if _, err := model.ParseState(*r.State); err != nil {
			v.Add("state", err.Error())
		}
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// Updates flattens the present fields into the partial-update map.
func (r PatchDeviceRequest) Updates() map[string]any {
	updates := make(map[string]any)

	if r.Name != nil {
		updates["name"] = *r.Name
	}

	if r.Brand != nil {
		updates["brand"] = *r.Brand
	}

	if r.State != nil {
		updates["state"] = *r.State
	}

	return updates
}

func validateFullPayload(name, brand, state string) *model.ValidationErrors {
	v := model.NewValidationErrors()

	if strings.TrimSpace(name) == "" {
		v.Add("name", "Name cannot be blank")
	}

	if strings.TrimSpace(brand) == "" {
		v.Add("brand", "Brand cannot be blank")
	}

	if strings.TrimSpace(state) == "" {
		v.Add("state", "State cannot be null")
	} else if _, err := model.ParseState(state); err != nil {
		v.Add("state", err.Error())
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

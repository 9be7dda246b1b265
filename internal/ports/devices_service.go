package ports

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
)

// DevicesService defines the interface for device business operations.
type DevicesService interface {
	// CreateDevice creates a new device with the given parameters.
	CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error)

	// GetDevice retrieves a device by its ID.
	GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// GetDevicesByBrand retrieves devices by a case-insensitive brand match.
	GetDevicesByBrand(ctx context.Context, brand string) ([]*model.Device, error)

	// ListDevices retrieves devices matching the optional brand and state filters.
	ListDevices(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error)

	// UpdateDevice fully replaces a device's mutable fields.
	UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error)

	// PatchDevice partially updates a device with the given updates.
	PatchDevice(ctx context.Context, id model.DeviceID, updates map[string]any) (*model.Device, error)

	// DeleteDevice deletes a device by its ID.
	DeleteDevice(ctx context.Context, id model.DeviceID) error
}

package ports

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
)

// DeviceRepository defines the interface for device persistence operations.
type DeviceRepository interface {
	// Create stores a new device and assigns its database identity.
	Create(ctx context.Context, device *model.Device) error

	// FindByID retrieves a device by its ID.
	FindByID(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// FindByBrand retrieves all devices whose brand matches case-insensitively.
	FindByBrand(ctx context.Context, brand string) ([]*model.Device, error)

	// FindByState retrieves all devices with an exact state match.
	FindByState(ctx context.Context, state model.State) ([]*model.Device, error)

	// FindAll retrieves every device.
	FindAll(ctx context.Context) ([]*model.Device, error)

	// Update persists in-place mutations of an existing device.
	Update(ctx context.Context, device *model.Device) error

	// Delete removes a device by its ID.
	Delete(ctx context.Context, id model.DeviceID) error
}

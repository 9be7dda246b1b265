package services

import (
	"context"
	"strings"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/ports"
)

type DevicesService struct {
	repo ports.DeviceRepository
}

func NewDevicesService(repo ports.DeviceRepository) *DevicesService {
	return &DevicesService{repo: repo}
}

func (s *DevicesService) CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error) {
	device := model.NewDevice(name, brand, state)

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DevicesService) GetDevicesByBrand(ctx context.Context, brand string) ([]*model.Device, error) {
	if strings.TrimSpace(brand) == "" {
		return nil, model.ErrEmptyBrand
	}

	return s.repo.FindByBrand(ctx, brand)
}

func (s *DevicesService) ListDevices(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error) {
	switch {
	case filter.HasBrand() && filter.HasState():
		// The combined filter scans and matches in memory: brand
		// case-insensitively, state exactly.
		devices, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		matched := make([]*model.Device, 0, len(devices))
		for _, device := range devices {
			if device.MatchesBrand(*filter.Brand) && device.State == *filter.State {
				matched = append(matched, device)
			}
		}

		return matched, nil

	case filter.HasBrand():
		return s.repo.FindByBrand(ctx, *filter.Brand)

	case filter.HasState():
		return s.repo.FindByState(ctx, *filter.State)

	default:
		return s.repo.FindAll(ctx)
	}
}

func (s *DevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
	device, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := device.Update(name, brand, state); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) PatchDevice(ctx context.Context, id model.DeviceID, updates map[string]any) (*model.Device, error) {
	device, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := device.Patch(updates); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	device, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !device.CanDelete() {
		return model.ErrCannotDeleteInUseDevice
	}

	return s.repo.Delete(ctx, device.ID)
}

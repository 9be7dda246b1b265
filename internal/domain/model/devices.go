package model

import (
	"strconv"
	"strings"
	"time"
)

// DeviceID is the database-assigned identity of a device. It is zero
// until the device has been persisted.
type DeviceID int64

func ParseDeviceID(s string) (DeviceID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidDeviceID
	}

	return DeviceID(id), nil
}

func (d DeviceID) String() string {
	return strconv.FormatInt(int64(d), 10)
}

func (d DeviceID) IsZero() bool {
	return d == 0
}

type Device struct {
	ID           DeviceID
	Name         string
	Brand        string
	State        State
	CreationTime time.Time
}

// NewDevice builds an unsaved device. The ID stays zero until the
// persistence layer assigns one; CreationTime is fixed here and never
// changes afterward.
func NewDevice(name, brand string, state State) *Device {
	return &Device{
		Name:         name,
		Brand:        brand,
		State:        state,
		CreationTime: time.Now().UTC(),
	}
}

func (d *Device) CanUpdateNameAndBrand() bool {
	return d.State != StateInUse
}

func (d *Device) CanDelete() bool {
	return d.State != StateInUse
}

// Update applies full-replace semantics. State may always change, even
// while the device is in use; name and brand are locked while IN_USE.
func (d *Device) Update(name, brand string, state State) error {
	if !d.CanUpdateNameAndBrand() && (name != d.Name || brand != d.Brand) {
		return ErrCannotUpdateInUseDevice
	}

	d.Name = name
	d.Brand = brand
	d.State = state

	return nil
}

// Patch applies partial-update semantics: absent keys leave the stored
// value untouched. The IN_USE lock is checked against the effective
// values, so a patch that repeats the current name or brand passes.
func (d *Device) Patch(updates map[string]any) error {
	if !d.CanUpdateNameAndBrand() {
		if name, ok := updates["name"].(string); ok && name != d.Name {
			return ErrCannotUpdateInUseDevice
		}

		if brand, ok := updates["brand"].(string); ok && brand != d.Brand {
			return ErrCannotUpdateInUseDevice
		}
	}

	if name, ok := updates["name"].(string); ok {
		d.Name = name
	}

	if brand, ok := updates["brand"].(string); ok {
		d.Brand = brand
	}

	if stateStr, ok := updates["state"].(string); ok {
		state, err := ParseState(stateStr)
		if err != nil {
			return err
		}

		d.State = state
	}

	return nil
}

// MatchesBrand reports a case-insensitive brand match.
func (d *Device) MatchesBrand(brand string) bool {
	return strings.EqualFold(d.Brand, brand)
}

// DeviceFilter narrows listings. Nil fields mean "no constraint".
type DeviceFilter struct {
	Brand *string
	State *State
}

func (f DeviceFilter) HasBrand() bool {
	return f.Brand != nil
}

func (f DeviceFilter) HasState() bool {
	return f.State != nil
}

package model

import (
	"errors"
	"fmt"
)

// Rule violation messages surface verbatim in API error responses.
var (
	ErrDeviceNotFound          = errors.New("device not found")
	ErrCannotUpdateInUseDevice = errors.New("Name and brand cannot be updated when device is IN_USE")
	ErrCannotDeleteInUseDevice = errors.New("Cannot delete device that is currently IN_USE")
	ErrEmptyBrand              = errors.New("Brand cannot be empty")
	ErrInvalidDeviceID         = errors.New("invalid device ID")
	ErrInvalidState            = errors.New("invalid device state")
	ErrDatabaseQuery           = errors.New("database query error")
)

// DeviceNotFoundError carries the looked-up id and matches
// ErrDeviceNotFound under errors.Is.
type DeviceNotFoundError struct {
	ID DeviceID
}

func (e DeviceNotFoundError) Error() string {
	return fmt.Sprintf("Device not found with id: %d", e.ID)
}

func (e DeviceNotFoundError) Is(target error) bool {
	return target == ErrDeviceNotFound
}

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

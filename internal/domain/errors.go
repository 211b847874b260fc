package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrReadFailure is returned when a contract read errors (network failure or revert)
	ErrReadFailure = errors.New("contract read failed")

	// ErrDuplicateEntity is returned when creating an entity whose id is already present
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrUnknownPipelineKind is returned when registering a subscription for an unconfigured pipeline
	ErrUnknownPipelineKind = errors.New("unknown pipeline kind")

	// ErrInvalidEvent is returned when an event carries malformed fields
	ErrInvalidEvent = errors.New("invalid event")
)

// ContractReadError describes a failed read-only contract call
type ContractReadError struct {
	Address string
	Method  string
	Err     error
}

func (e *ContractReadError) Error() string {
	return fmt.Sprintf("failed to read %s() on %s: %v", e.Method, e.Address, e.Err)
}

func (e *ContractReadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrReadFailure) match any ContractReadError
func (e *ContractReadError) Is(target error) bool {
	return target == ErrReadFailure
}

// DuplicateEntityError describes an entity that already exists at creation time
type DuplicateEntityError struct {
	Type EntityType
	ID   string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Type, e.ID)
}

// Is makes errors.Is(err, ErrDuplicateEntity) match any DuplicateEntityError
func (e *DuplicateEntityError) Is(target error) bool {
	return target == ErrDuplicateEntity
}

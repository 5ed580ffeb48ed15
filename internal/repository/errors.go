package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrSerialization is returned when a serializable transaction lost a race
	// against a concurrent writer.
	ErrSerialization = errors.New("concurrent update")
)

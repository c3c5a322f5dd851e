package repository

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrStoreUnavailable covers every failure to reach or query a backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

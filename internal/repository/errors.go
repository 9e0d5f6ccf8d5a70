package repository

import "errors"

var (
	// ErrAlreadyLive is returned by Purchase when the vehicle already holds a
	// live sticker at the purchase instant.
	ErrAlreadyLive = errors.New("vehicle already has a live sticker")

	// ErrDuplicate is returned on uniqueness violations (plate, phone,
	// username) detected at insert time, including races lost to a concurrent
	// insert.
	ErrDuplicate = errors.New("duplicate record")
)

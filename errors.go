package kbucket

import "errors"

var (
	// ErrIdTooLong is returned when an id exceeds the configured maximum length.
	ErrIdTooLong = errors.New("kbucket: id exceeds maximum length")

	// ErrInvalidCount is returned by Closest for a non-positive count.
	ErrInvalidCount = errors.New("kbucket: expected positive count")

	// ErrNilContact is returned by Add for a nil contact.
	ErrNilContact = errors.New("kbucket: nil contact")
)

package tileset

import "errors"

var (
	// ErrWriteFailed is returned when the persister could not store a descriptor.
	ErrWriteFailed = errors.New("tileset write failed")

	// ErrDegenerateGeometry is returned when a descriptor holds a NaN or infinite
	// number, for instance from non-finite anchor coordinates. Anchors at the
	// poles stay finite.
	ErrDegenerateGeometry = errors.New("degenerate geometry, non-finite number in descriptor")

	ErrMissingBoundingVolume = errors.New("descriptor has no bounding volume")
)

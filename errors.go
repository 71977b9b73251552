package soft3d

import "errors"

var (
	// ErrInvalidConfiguration is returned when a camera parameter is out of
	// range: a non-positive resolution, near clip or projection distance,
	// a far clip not beyond the near clip, or a FOV outside (0, π/2).
	ErrInvalidConfiguration = errors.New("soft3d: invalid configuration")

	// ErrNilArgument is returned by Render when the frame, camera or
	// surface is nil.
	ErrNilArgument = errors.New("soft3d: nil argument")

	// ErrTargetSize is returned by Render when the surface size differs
	// from the camera resolution.
	ErrTargetSize = errors.New("soft3d: target size does not match camera resolution")
)

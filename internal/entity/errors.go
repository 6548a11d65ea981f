package entity

import "errors"

var (
	// Input errors
	ErrDecode            = errors.New("cannot decode image")
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// Output errors
	ErrOutputDir = errors.New("cannot create output directory")
	ErrWrite     = errors.New("cannot write output image")

	// General errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

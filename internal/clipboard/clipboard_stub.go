//go:build !darwin || test

package clipboard

import (
	"errors"
)

// ErrUnsupported is returned when the build has no clipboard backend
var ErrUnsupported = errors.New("clipboard not supported in this build configuration")

// Init reports that no clipboard backend is available
func Init() error {
	return ErrUnsupported
}

func writeText(text string) error {
	return ErrUnsupported
}

//go:build !cgo

package hal

import (
	"errors"
	"image"
)

func RunWindow(_ WindowConfig, _ image.Image, _ func(Host) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}

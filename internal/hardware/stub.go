//go:build !linux

package hardware

import "errors"

// Open is unavailable off-Linux; callers run in pure simulation mode.
func Open(cfg Config) (Device, error) {
	return nil, errors.New("hardware support requires linux")
}

//go:build linux

package hardware

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// RealDevice reads the probe from sysfs hwmon and drives the heater
// relay through the Linux GPIO character device.
type RealDevice struct {
	sensorPath string
	chip       *gpiocdev.Chip
	relay      *gpiocdev.Line
}

// Open claims the relay line and verifies the sensor file is readable.
func Open(cfg Config) (*RealDevice, error) {
	if _, err := os.Stat(cfg.SensorPath); err != nil {
		return nil, fmt.Errorf("sensor file %q: %w", cfg.SensorPath, err)
	}

	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", cfg.Chip, err)
	}

	relay, err := chip.RequestLine(cfg.RelayLine, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request relay line %d: %w", cfg.RelayLine, err)
	}

	return &RealDevice{
		sensorPath: cfg.SensorPath,
		chip:       chip,
		relay:      relay,
	}, nil
}

// ReadTemperature reads the hwmon input, which reports millidegrees.
func (d *RealDevice) ReadTemperature() (float64, error) {
	raw, err := os.ReadFile(d.sensorPath)
	if err != nil {
		return 0, fmt.Errorf("read sensor: %w", err)
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse sensor value %q: %w", strings.TrimSpace(string(raw)), err)
	}
	return milli / 1000, nil
}

// SetHeat closes the relay for any level above zero. The relay is a
// simple on/off contactor; level granularity only shapes the
// simulation.
func (d *RealDevice) SetHeat(level int) error {
	v := 0
	if level > 0 {
		v = 1
	}
	if err := d.relay.SetValue(v); err != nil {
		return fmt.Errorf("set relay: %w", err)
	}
	return nil
}

// Close opens the relay and releases GPIO resources.
func (d *RealDevice) Close() error {
	var errs []error
	if d.relay != nil {
		if err := d.relay.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("relay off: %w", err))
		}
		if err := d.relay.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay: %w", err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

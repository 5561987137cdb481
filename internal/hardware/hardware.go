// Package hardware abstracts the roaster's temperature probe and
// heater relay. The real implementation reads a Linux hwmon sensor and
// drives the relay through the GPIO character device; the fake allows
// testing without hardware. All failures are non-fatal to the core,
// which falls back to the simulator.
package hardware

// Device is the sensor/actuator adapter the monitor consumes.
type Device interface {
	// ReadTemperature returns the probe temperature. An error means
	// the reading is unavailable and the caller should fall back.
	ReadTemperature() (float64, error)

	// SetHeat drives the heater for a level in 1..10. Level 0 is off.
	SetHeat(level int) error

	// Close releases hardware resources.
	Close() error
}

// Config locates the probe and the heater relay line.
type Config struct {
	// SensorPath is the hwmon temperature input file, e.g.
	// /sys/class/hwmon/hwmon0/temp1_input (millidegrees).
	SensorPath string

	// Chip is the GPIO chip name, e.g. "gpiochip0".
	Chip string

	// RelayLine is the GPIO line offset driving the heater relay.
	RelayLine int
}

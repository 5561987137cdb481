// Package telemetry publishes roast events to MQTT. The monitor's
// temperature and crack observers feed it; publishing failures never
// affect the roast itself.
package telemetry

import (
	"encoding/json"
	"time"
)

// Default topics for roast telemetry.
const (
	TopicTemperature = "roaster/temperature"
	TopicEvents      = "roaster/events"
)

// Publisher publishes roast telemetry to a broker.
type Publisher interface {
	// PublishTemperature sends one temperature reading.
	PublishTemperature(temp float64) error

	// PublishCrack sends a crack notification ("first" or "second").
	PublishCrack(crack string, elapsed float64) error

	// Close disconnects from the broker.
	Close() error
}

// TemperatureReading is the temperature topic payload.
type TemperatureReading struct {
	Temperature float64 `json:"temperature"`
	Timestamp   int64   `json:"timestamp"` // unix seconds
}

// CrackNotice is the events topic payload.
type CrackNotice struct {
	Crack     string  `json:"crack"` // "first" | "second"
	ElapsedS  float64 `json:"elapsed_s"`
	Timestamp int64   `json:"timestamp"`
}

// FormatTemperature renders the temperature payload.
func FormatTemperature(temp float64) ([]byte, error) {
	return json.Marshal(TemperatureReading{
		Temperature: temp,
		Timestamp:   time.Now().Unix(),
	})
}

// FormatCrack renders the crack payload.
func FormatCrack(crack string, elapsed float64) ([]byte, error) {
	return json.Marshal(CrackNotice{
		Crack:     crack,
		ElapsedS:  elapsed,
		Timestamp: time.Now().Unix(),
	})
}

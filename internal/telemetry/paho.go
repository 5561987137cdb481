package telemetry

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MQTTPublisher publishes to a real MQTT broker.
type MQTTPublisher struct {
	client     paho.Client
	tempTopic  string
	eventTopic string
}

// NewMQTTPublisher connects to the given broker. An empty topic prefix
// keeps the default topics.
func NewMQTTPublisher(broker, tempTopic, eventTopic string) (*MQTTPublisher, error) {
	if tempTopic == "" {
		tempTopic = TopicTemperature
	}
	if eventTopic == "" {
		eventTopic = TopicEvents
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("coffee-roaster").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTPublisher{
		client:     client,
		tempTopic:  tempTopic,
		eventTopic: eventTopic,
	}, nil
}

// PublishTemperature sends one reading at QoS 0; readings arrive five
// times a second, a dropped one is harmless.
func (p *MQTTPublisher) PublishTemperature(temp float64) error {
	payload, err := FormatTemperature(temp)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	token := p.client.Publish(p.tempTopic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishCrack sends a crack notice at QoS 1; cracks fire once per
// roast and are worth a delivery guarantee.
func (p *MQTTPublisher) PublishCrack(crack string, elapsed float64) error {
	payload, err := FormatCrack(crack, elapsed)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	token := p.client.Publish(p.eventTopic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

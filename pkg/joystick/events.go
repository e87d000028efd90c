package joystick

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
)

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return nil
}

// MQTTPublisher publishes JSON events to an MQTT broker with QoS 1.
type MQTTPublisher struct {
	client mqtt.Client
	qos    byte
	logger *zap.Logger
}

func NewMQTTPublisher(broker, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return NewMQTTPublisherWithClient(client), nil
}

func NewMQTTPublisherWithClient(client mqtt.Client) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		qos:    1,
		logger: common.GetLoggerWith(
			common.LoggerNameJoystickCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryEvents),
		),
	}
}

func (p *MQTTPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", topic, err)
	}

	token := p.client.Publish(topic, p.qos, false, data)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}
	p.logger.Debug("Published event", zap.String("topic", topic))
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

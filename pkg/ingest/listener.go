package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/config"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

var (
	messagesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmsight_ingest_messages_received_total",
		Help: "Device messages received from the broker.",
	})
	messagesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmsight_ingest_messages_dropped_total",
		Help: "Device messages dropped as malformed or unstorable.",
	})
)

func init() {
	prometheus.MustRegister(messagesReceived, messagesDropped)
}

// Listener subscribes to the device telemetry topics and stores every
// well-formed reading. Malformed messages are dropped with a log line; one
// bad device must never stall the stream.
type Listener struct {
	client      mqtt.Client
	sensors     services.SensorService
	topicPrefix string
	logger      *zap.Logger
}

// NewListener creates a listener for the configured broker.
func NewListener(cfg config.MQTTConfig, sensors services.SensorService, logger *zap.Logger) *Listener {
	l := &Listener{
		sensors:     sensors,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.Named("ingest-listener"),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			topic := cfg.TopicPrefix + "+"
			if token := c.Subscribe(topic, 1, l.handleMessage); token.Wait() && token.Error() != nil {
				l.logger.Error("Failed to subscribe",
					zap.String("topic", topic),
					zap.Error(token.Error()))
				return
			}
			l.logger.Info("Subscribed to device telemetry", zap.String("topic", topic))
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			l.logger.Warn("Broker connection lost", zap.Error(err))
		})

	l.client = mqtt.NewClient(opts)
	return l
}

// Start connects to the broker. The subscription is re-established by the
// on-connect handler after every reconnect.
func (l *Listener) Start() error {
	if token := l.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to broker: %w", token.Error())
	}
	return nil
}

// Stop disconnects from the broker, allowing in-flight handlers to finish.
func (l *Listener) Stop() {
	l.client.Disconnect(250)
}

func (l *Listener) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	messagesReceived.Inc()

	deviceID := strings.TrimPrefix(msg.Topic(), l.topicPrefix)
	if deviceID == "" || deviceID == msg.Topic() || strings.Contains(deviceID, "/") {
		messagesDropped.Inc()
		l.logger.Warn("Dropping message on unexpected topic", zap.String("topic", msg.Topic()))
		return
	}

	input, err := ParsePayload(deviceID, msg.Payload())
	if err != nil {
		messagesDropped.Inc()
		l.logger.Warn("Dropping malformed device message",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := l.sensors.Ingest(ctx, input); err != nil {
		messagesDropped.Inc()
		l.logger.Error("Failed to store device reading",
			zap.String("device_id", deviceID),
			zap.Error(err))
	}
}

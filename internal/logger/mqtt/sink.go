// internal/logger/mqtt/sink.go
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/logger"
)

// DefaultTopic is the ThingsBoard device telemetry topic.
const DefaultTopic = "v1/devices/me/telemetry"

// Row is the logger row type; the sink satisfies logger.Sink.
type Row = logger.Row

// Config describes the broker connection.
type Config struct {
	Broker      string // e.g. tcp://host:1883
	ClientID    string
	AccessToken string // sent as the username, ThingsBoard style
	Topic       string
	Timeout     time.Duration
}

// Sink publishes each row as a ts-stamped JSON telemetry map.
type Sink struct {
	client paho.Client
	names  []string
	topic  string
	tmo    time.Duration
}

// NewSink connects to the broker and returns a ready sink.
func NewSink(cfg Config, names []string) (*Sink, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt sink: broker required")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("remote-client-%d", time.Now().UnixNano())
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.AccessToken)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(cfg.Timeout)
	opts.SetWriteTimeout(cfg.Timeout)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, errors.New("mqtt sink: connect timed out")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt sink: connect: %w", err)
	}

	cp := make([]string, len(names))
	copy(cp, names)

	return &Sink{
		client: client,
		names:  cp,
		topic:  cfg.Topic,
		tmo:    cfg.Timeout,
	}, nil
}

// Write publishes one row. Missing values are omitted from the map; the
// ts field carries the tick timestamp in epoch milliseconds.
func (s *Sink) Write(row Row) error {
	payload := map[string]interface{}{
		"ts": row.At.UnixMilli(),
	}
	values := map[string]interface{}{}
	for i, v := range row.Values {
		if v == nil || i >= len(s.names) {
			continue
		}
		values[s.names[i]] = *v
	}
	payload["values"] = values

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mqtt sink: marshal: %w", err)
	}

	token := s.client.Publish(s.topic, 1, false, data)
	if !token.WaitTimeout(s.tmo) {
		return errors.New("mqtt sink: publish timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt sink: publish: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	s.client.Disconnect(250)
	return nil
}

package mqtt

import (
	"bytes"
	"errors"
	"testing"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// ─── Test Setup ──────────────────────────────────────────────────────────────

// newDisconnectedClient builds a client that has never connected.
func newDisconnectedClient(t *testing.T) *Client {
	t.Helper()

	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "localhost", Port: 1883, ClientID: "angel-test"},
		QoS:    1,
	}
	opts := buildClientOptions(cfg)
	return &Client{
		cfg:           cfg,
		options:       opts,
		client:        pahomqtt.NewClient(opts),
		subscriptions: make(map[string]subscription),
	}
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestPublishValidation(t *testing.T) {
	c := newDisconnectedClient(t)

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish(TopicRecommendation, []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("qos 3 error = %v, want ErrInvalidQoS", err)
	}

	oversized := bytes.Repeat([]byte("a"), maxPayloadSize+1)
	if err := c.Publish(TopicRecommendation, oversized, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("oversized payload error = %v, want ErrPublishFailed", err)
	}

	if err := c.Publish(TopicRecommendation, []byte("x"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish error = %v, want ErrNotConnected", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	c := newDisconnectedClient(t)
	handler := func(string, []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe(TopicActivity, 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("qos 3 error = %v, want ErrInvalidQoS", err)
	}
	if err := c.Subscribe(TopicActivity, 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("nil handler error = %v, want ErrSubscribeFailed", err)
	}
	if err := c.Subscribe(TopicActivity, 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected subscribe error = %v, want ErrNotConnected", err)
	}
	if got := c.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() = %d after failed subscribes, want 0", got)
	}
}

func TestBuildClientOptionsBrokerURL(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "broker.local", Port: 8883, TLS: true, ClientID: "angel-core"},
	}

	opts := buildClientOptions(cfg)
	servers := opts.Servers
	if len(servers) != 1 || servers[0].String() != "ssl://broker.local:8883" {
		t.Errorf("broker servers = %v", servers)
	}
}

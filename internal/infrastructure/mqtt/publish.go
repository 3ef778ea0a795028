package mqtt

import "fmt"

// Maximum payload size for MQTT messages (1MB). Prevents resource
// exhaustion and aligns with typical broker limits.
const maxPayloadSize = 1 << 20

// Publish sends a message to the given topic. qos is 0, 1, or 2; retained
// messages are stored by the broker and delivered to new subscribers.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishRecommendation publishes an encoded recommendation batch with the
// configured QoS. Batches are not retained: a stale recommendation is
// worse than none.
func (c *Client) PublishRecommendation(payload []byte) error {
	return c.Publish(TopicRecommendation, payload, byte(c.cfg.QoS), false)
}

package mqtt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		topic    string
		expected Category
	}{
		{TopicRobotDispatch, CategoryAgent},
		{TopicRobotStatus, CategoryAgent},
		{"robot/battery", CategoryAgent},
		{TopicOrdersNew, CategoryOrder},
		{TopicDeliveryComplete, CategoryOrder},
		{TopicKitchenStatus, CategoryOrder},
		{"orders/archived", CategoryOrder},
		{TopicSystemStatus, CategorySystem},
		{TopicSystemEmergency, CategorySystem},
		{"system/health", CategorySystem},
		{"telemetry/cpu", CategoryUnclassified},
		{"", CategoryUnclassified},
		{"robots/dispatch", CategoryUnclassified},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.topic))
		})
	}
}

func TestInboundTopics_QualityLevels(t *testing.T) {
	topics := inboundTopics()

	// emergency carries the strongest delivery intent
	require.Equal(t, qosExactlyOnce, topics[TopicSystemEmergency])

	for topic, qos := range topics {
		if topic == TopicSystemEmergency {
			continue
		}
		assert.Equal(t, qosAtLeastOnce, qos, "topic %s", topic)
	}
}

func TestReconnectDelay_GrowsAndCaps(t *testing.T) {
	base := 2 * time.Second
	max := 7 * time.Second

	assert.Equal(t, 2*time.Second, reconnectDelay(1, base, max))
	assert.Equal(t, 4*time.Second, reconnectDelay(2, base, max))
	assert.Equal(t, 6*time.Second, reconnectDelay(3, base, max))
	assert.Equal(t, 7*time.Second, reconnectDelay(4, base, max))
	assert.Equal(t, 7*time.Second, reconnectDelay(100, base, max))
}

func TestDispatchPriority(t *testing.T) {
	assert.Equal(t, priorityLow, dispatchPriority(0))
	assert.Equal(t, priorityLow, dispatchPriority(49.99))
	assert.Equal(t, priorityMedium, dispatchPriority(50))
	assert.Equal(t, priorityMedium, dispatchPriority(99.99))
	assert.Equal(t, priorityHigh, dispatchPriority(100))
	assert.Equal(t, priorityHigh, dispatchPriority(1000))
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{BrokerURL: "tcp://localhost:1883"}.withDefaults()

	assert.Equal(t, serviceName, cfg.ClientID)
	assert.Equal(t, 30*time.Second, cfg.KeepAlive)
	assert.Equal(t, 10, cfg.ReconnectMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.ReconnectBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.ReconnectMaxDelay)
}

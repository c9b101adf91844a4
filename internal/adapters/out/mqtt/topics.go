package mqtt

import "strings"

// Topic namespace. The hierarchy is fixed; wildcard subscriptions keep the
// service compatible with agent and system sub-topics added later.
const (
	TopicRobotDispatch = "robot/dispatch"
	TopicRobotStatus   = "robot/status"
	TopicRobotLocation = "robot/location"
	TopicRobotFeedback = "robot/feedback"

	TopicDeliveryStart    = "delivery/start"
	TopicDeliveryComplete = "delivery/complete"
	TopicDeliveryStatus   = "delivery/status"

	TopicKitchenReady  = "kitchen/ready"
	TopicKitchenStatus = "kitchen/status"

	TopicSystemStatus    = "system/status"
	TopicSystemEmergency = "system/emergency"

	TopicOrdersSnapshot     = "orders/snapshot"
	TopicOrdersNew          = "orders/new"
	TopicOrdersStatusUpdate = "orders/status-update"
	TopicOrdersPending      = "orders/pending"

	WildcardRobot  = "robot/#"
	WildcardOrders = "orders/#"
	WildcardSystem = "system/#"
)

// Category tags an inbound topic with its origin. Classification is decided
// once per message; the router switches on the category instead of matching
// prefixes at every handler.
type Category int

const (
	// CategoryUnclassified marks topics outside the known namespace. The
	// message is still surfaced to the generic listener.
	CategoryUnclassified Category = iota

	// CategoryAgent covers everything published by the delivery agent.
	CategoryAgent

	// CategoryOrder covers order, delivery, and kitchen lifecycle topics.
	CategoryOrder

	// CategorySystem covers system status and emergency topics.
	CategorySystem
)

// String returns the category name for logging.
func (c Category) String() string {
	switch c {
	case CategoryAgent:
		return "agent"
	case CategoryOrder:
		return "order"
	case CategorySystem:
		return "system"
	default:
		return "unclassified"
	}
}

// Classify maps a topic onto its category by namespace prefix.
func Classify(topic string) Category {
	switch {
	case strings.HasPrefix(topic, "robot/"):
		return CategoryAgent
	case strings.HasPrefix(topic, "orders/"),
		strings.HasPrefix(topic, "delivery/"),
		strings.HasPrefix(topic, "kitchen/"):
		return CategoryOrder
	case strings.HasPrefix(topic, "system/"):
		return CategorySystem
	default:
		return CategoryUnclassified
	}
}

// inboundTopics is the fixed subscription set installed on every successful
// connect. Exact topics carry the protocol; the wildcards keep sub-topics
// added by newer agents visible.
func inboundTopics() map[string]byte {
	return map[string]byte{
		TopicRobotStatus:      qosAtLeastOnce,
		TopicRobotLocation:    qosAtLeastOnce,
		TopicRobotFeedback:    qosAtLeastOnce,
		TopicDeliveryComplete: qosAtLeastOnce,
		TopicDeliveryStatus:   qosAtLeastOnce,
		TopicKitchenStatus:    qosAtLeastOnce,
		TopicSystemEmergency:  qosExactlyOnce,
		WildcardRobot:         qosAtLeastOnce,
		WildcardOrders:        qosAtLeastOnce,
		WildcardSystem:        qosAtLeastOnce,
	}
}

package mqtt

// Topic hierarchy. Sensor pipelines publish activity observations to
// TopicActivity; the engine publishes ranked batches to
// TopicRecommendation; TopicSystemStatus carries retained online/offline
// status including the Last Will.
const (
	// TopicPrefix is the base for all assistant topics.
	TopicPrefix = "angel"

	// TopicActivity carries activity observations from sensor pipelines.
	TopicActivity = "angel/activity"

	// TopicRecommendation carries recommendation batches to actuator UIs.
	TopicRecommendation = "angel/recommendation"

	// TopicSystemStatus carries retained service status messages.
	TopicSystemStatus = "angel/system/status"
)

package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

const (
	LogMsgEventPublishFailed = "Event publish failed"
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %w"
)

package observability

// Metric name prefixes
const (
	MetricPrefix = "wordler"
)

// Metric names
const (
	// Chat metrics
	MessagesReadTotal = MetricPrefix + ".messages.read_total"
	RepliesSentTotal  = MetricPrefix + ".messages.replies_sent_total"
	CommandsTotal     = MetricPrefix + ".commands.total"

	// Scoring metrics
	ResultsScoredTotal    = MetricPrefix + ".results.scored_total"
	ParseRejectionsTotal  = MetricPrefix + ".results.parse_rejections_total"
	DuplicateResultsTotal = MetricPrefix + ".results.duplicates_total"
	GamesCompletedTotal   = MetricPrefix + ".games.completed_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Persistence metrics
	PersistenceOperationsTotal = MetricPrefix + ".persistence.operations_total"
	PersistenceDuration        = MetricPrefix + ".persistence.duration"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelLabel     = "attempts_label"
	LabelReason    = "reason"
	LabelBackend   = "backend"
	LabelMethod    = "method"
	LabelOutcome   = "outcome"
	LabelCommand   = "command"
)

// Message types
const (
	MessageTypeCommand     = "command"
	MessageTypeInteraction = "interaction"
	MessageTypeMessage     = "message"
)

// Parse rejection reasons
const (
	RejectReasonNoHeader = "no_header"
	RejectReasonNoGrid   = "no_grid"
	RejectReasonInvalid  = "invalid"
)

// Persistence outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

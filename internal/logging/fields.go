package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType is the standardized key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized key for the suggested next step after a problem.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType is the standardized key naming the decision being logged.
	FieldDecisionType = "decision_type"
	// FieldCorrelationID is the standardized key tying every record of one CLI run together.
	FieldCorrelationID = "correlation_id"
)

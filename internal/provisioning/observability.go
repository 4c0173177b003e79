package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging surface used by steps.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a
// deployment run.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a long-running step (e.g. uploads)
	Progress(step string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType         // Type of event
	Step      string            // Step name (e.g. "bucket", "agent")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventStepStarted indicates a deployment step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a deployment step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a deployment step failed.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"

	// EventPollWaiting indicates a readiness wait is in progress.
	EventPollWaiting EventType = "poll.waiting"
	// EventPollDegraded indicates the pipeline is continuing without a
	// readiness guarantee after a timeout or soft failure.
	EventPollDegraded EventType = "poll.degraded"

	// EventCredentialReleasing indicates an ephemeral credential is being deleted.
	EventCredentialReleasing EventType = "credential.releasing"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// Progress implements the Observer interface.
func (o *ConsoleObserver) Progress(step string, current, total int) {
	if total == 0 {
		log.Printf("[%s] progress: %d/%d", step, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] progress: %d/%d (%d%%)", step, current, total, percentage)
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{contextFields: newFields}
}

func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, step string) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Step:    step,
		Message: "starting",
	})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, step string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure event.
func LogStepFailed(observer Observer, step string, err error) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, step, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Step:     step,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, step, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, step, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Step:     step,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogWaiting logs one iteration of a readiness wait.
func LogWaiting(observer Observer, name string, elapsed, timeout time.Duration) {
	observer.Event(Event{
		Type:     EventPollWaiting,
		Resource: name,
		Message: fmt.Sprintf("not ready (elapsed: %v, remaining: %v)",
			elapsed.Round(time.Second), (timeout - elapsed).Round(time.Second)),
	})
}

// LogDegraded logs a degrade-and-continue decision after a failed wait.
func LogDegraded(observer Observer, step, name string, outcome Outcome) {
	observer.Event(Event{
		Type:     EventPollDegraded,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("wait %s; proceeding without readiness guarantee", outcome),
	})
}

// LogCredentialReleasing logs deletion of an ephemeral credential.
func LogCredentialReleasing(observer Observer, name string) {
	observer.Event(Event{
		Type:     EventCredentialReleasing,
		Resource: name,
		Message:  "releasing generated credential",
	})
}

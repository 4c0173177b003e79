package provisioning

import (
	"fmt"
	"sync"
)

// recordingObserver captures events and log lines for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
	lines  []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{}
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Progress(step string, current, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, Event{Type: EventProgress, Step: step})
}

func (o *recordingObserver) WithFields(fields map[string]string) Observer {
	return o
}

func (o *recordingObserver) eventTypes() []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]EventType, len(o.events))
	for i, e := range o.events {
		types[i] = e.Type
	}
	return types
}

package provisioning

import (
	"time"
)

// Status is the answer a readiness check gives for one poll.
type Status int

const (
	// StatusPending means the resource is not ready yet; keep polling.
	StatusPending Status = iota
	// StatusReady means the resource reached its target state.
	StatusReady
	// StatusFailed means the resource entered a terminal failure state.
	StatusFailed
)

// Outcome is the final verdict of a polling call.
type Outcome int

const (
	// Ready means the check reported the target state before the timeout.
	Ready Outcome = iota
	// Failed means the check reported a terminal failure.
	Failed
	// TimedOut means the timeout elapsed with the check still pending.
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "timed out"
	}
}

// PollSpec describes one bounded readiness wait. It is owned by the caller
// for the duration of a single Wait call.
type PollSpec struct {
	// Name describes the awaited resource in log output.
	Name string

	// Check reports the current state. A returned error is treated as a
	// transient communication failure: it is logged and polling continues.
	Check func() (Status, error)

	// Interval is the sleep between polls.
	Interval time.Duration

	// Timeout bounds the total wait.
	Timeout time.Duration
}

// Wait polls spec.Check until it reports ready or failed, the timeout
// elapses, or the context is cancelled. A check that is ready on the first
// call returns without sleeping. Context cancellation surfaces as TimedOut
// since the caller's deadline is the only cancellation mechanism.
func Wait(ctx *Context, spec PollSpec) Outcome {
	start := time.Now()

	for {
		status, err := spec.Check()
		if err != nil {
			ctx.Observer.Printf("[%s] status check failed: %v; continuing to poll", spec.Name, err)
			status = StatusPending
		}

		switch status {
		case StatusReady:
			return Ready
		case StatusFailed:
			return Failed
		}

		elapsed := time.Since(start)
		if elapsed >= spec.Timeout {
			return TimedOut
		}

		LogWaiting(ctx.Observer, spec.Name, elapsed, spec.Timeout)

		select {
		case <-ctx.Done():
			return TimedOut
		case <-time.After(spec.Interval):
		}
	}
}

package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitReturnsReadyWithoutSleeping(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	checks := 0

	start := time.Now()
	outcome := Wait(ctx, PollSpec{
		Name: "resource",
		Check: func() (Status, error) {
			checks++
			return StatusReady, nil
		},
		Interval: time.Hour,
		Timeout:  time.Hour,
	})

	assert.Equal(t, Ready, outcome)
	assert.Equal(t, 1, checks)
	assert.Less(t, time.Since(start), time.Second, "a ready first check must not sleep")
}

func TestWaitReturnsFailedImmediately(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	outcome := Wait(ctx, PollSpec{
		Name:     "resource",
		Check:    func() (Status, error) { return StatusFailed, nil },
		Interval: time.Hour,
		Timeout:  time.Hour,
	})
	assert.Equal(t, Failed, outcome)
}

func TestWaitTimesOutWhilePending(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	checks := 0

	outcome := Wait(ctx, PollSpec{
		Name: "resource",
		Check: func() (Status, error) {
			checks++
			return StatusPending, nil
		},
		Interval: 5 * time.Millisecond,
		Timeout:  30 * time.Millisecond,
	})

	assert.Equal(t, TimedOut, outcome)
	assert.GreaterOrEqual(t, checks, 2, "polling must re-check until the timeout")
}

func TestWaitTreatsCheckErrorsAsPending(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	obs := ctx.Observer.(*recordingObserver)
	checks := 0

	outcome := Wait(ctx, PollSpec{
		Name: "resource",
		Check: func() (Status, error) {
			checks++
			if checks == 1 {
				return StatusFailed, errors.New("connection refused")
			}
			return StatusReady, nil
		},
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})

	assert.Equal(t, Ready, outcome, "a transient check error must not end the wait")
	assert.Equal(t, 2, checks)
	assert.NotEmpty(t, obs.lines, "check errors are logged")
}

func TestWaitReturnsTimedOutOnCancellation(t *testing.T) {
	t.Parallel()

	cctx, cancel := context.WithCancel(context.Background())
	ctx := testContext(t)
	ctx.Context = cctx
	cancel()

	outcome := Wait(ctx, PollSpec{
		Name:     "resource",
		Check:    func() (Status, error) { return StatusPending, nil },
		Interval: time.Hour,
		Timeout:  time.Hour,
	})
	assert.Equal(t, TimedOut, outcome)
}

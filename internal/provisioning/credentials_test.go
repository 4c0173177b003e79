package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseAllReversesCreationOrder(t *testing.T) {
	t.Parallel()

	var released []string
	r := NewCredentialRegistry()
	for _, name := range []string{"first", "second", "third"} {
		n := name
		r.Register(n, true, func() error {
			released = append(released, n)
			return nil
		})
	}

	r.ReleaseAll(newRecordingObserver())
	assert.Equal(t, []string{"third", "second", "first"}, released)
}

func TestReleaseAllSkipsNonEphemeral(t *testing.T) {
	t.Parallel()

	released := false
	r := NewCredentialRegistry()
	r.Register("caller-supplied", false, func() error {
		released = true
		return nil
	})

	r.ReleaseAll(newRecordingObserver())
	assert.False(t, released, "caller-supplied credentials must survive the run")
}

func TestReleaseAllIsIdempotent(t *testing.T) {
	t.Parallel()

	count := 0
	r := NewCredentialRegistry()
	r.Register("key", true, func() error {
		count++
		return nil
	})

	obs := newRecordingObserver()
	r.ReleaseAll(obs)
	r.ReleaseAll(obs)
	assert.Equal(t, 1, count)
}

func TestReleaseAllContinuesPastFailures(t *testing.T) {
	t.Parallel()

	var released []string
	r := NewCredentialRegistry()
	r.Register("ok-first", true, func() error {
		released = append(released, "ok-first")
		return nil
	})
	r.Register("fails", true, func() error {
		return errors.New("delete rejected")
	})

	obs := newRecordingObserver()
	r.ReleaseAll(obs)

	assert.Equal(t, []string{"ok-first"}, released)
	assert.NotEmpty(t, obs.lines, "release failures are logged")
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	c := NewManual(time.Unix(0, 0))
	var fired []string
	c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "late") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })

	c.Advance(50 * time.Millisecond)
	require.Empty(t, fired)
	require.Equal(t, 2, c.Pending())

	c.Advance(200 * time.Millisecond)
	require.Equal(t, []string{"early", "late"}, fired)
	require.Zero(t, c.Pending())
}

func TestManualStopPreventsCallback(t *testing.T) {
	t.Parallel()

	c := NewManual(time.Unix(0, 0))
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(time.Minute)
	require.False(t, called)
}

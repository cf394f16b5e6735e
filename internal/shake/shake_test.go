package shake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tree-scene/internal/state"
)

func TestFeedBelowThresholdNoSnow(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()

	d.Feed(0, -9.8, 0)
	d.Feed(3, -7.0, 2) // delta 7.8, below 25
	assert.False(t, shared.Snow())
}

func TestFeedFirstSampleNeverTriggers(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()

	// No previous sample, so even a violent first reading is not a delta.
	d.Feed(100, 100, 100)
	assert.False(t, shared.Snow())
}

func TestFeedShakeTogglesSnowAndExpires(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()
	d.SetHold(40 * time.Millisecond)

	d.Feed(0, -9.8, 0)
	d.Feed(15, 5, -12) // delta 41.8
	assert.True(t, shared.Snow())

	assert.Eventually(t, func() bool { return !shared.Snow() },
		time.Second, 5*time.Millisecond, "snow must clear after the hold time")
}

func TestFeedRefreshesHoldTimer(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()
	d.SetHold(60 * time.Millisecond)

	d.Feed(0, 0, 0)
	d.Feed(30, 0, 0)
	time.Sleep(35 * time.Millisecond)

	// Second shake inside the hold window restarts the timer.
	d.Feed(0, 0, 0)
	time.Sleep(35 * time.Millisecond)
	assert.True(t, shared.Snow(), "refreshed timer must still be holding")

	assert.Eventually(t, func() bool { return !shared.Snow() },
		time.Second, 5*time.Millisecond)
}

func TestTriggerActsLikeAShake(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()
	d.SetHold(40 * time.Millisecond)

	d.Trigger()
	assert.True(t, shared.Snow())

	assert.Eventually(t, func() bool { return !shared.Snow() },
		time.Second, 5*time.Millisecond, "console-triggered snow must expire like a real shake")
}

func TestSetHoldsSnowPastTheTimer(t *testing.T) {
	shared := state.New()
	d := New(shared)
	defer d.Stop()
	d.SetHold(20 * time.Millisecond)

	// A timed burst is running; forcing snow on cancels its expiry.
	d.Trigger()
	d.Set(true)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, shared.Snow(), "forced snow must outlive the burst timer")

	d.Set(false)
	assert.False(t, shared.Snow())
}

func TestStopCancelsPendingTimer(t *testing.T) {
	shared := state.New()
	d := New(shared)
	d.SetHold(20 * time.Millisecond)

	d.Feed(0, 0, 0)
	d.Feed(30, 0, 0)
	assert.True(t, shared.Snow())

	d.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, shared.Snow(), "no callback may fire after Stop")

	// Feeds after Stop are ignored.
	d.Feed(100, 100, 100)
	d.Feed(0, 0, 0)
	assert.True(t, shared.Snow())
}

package bot

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/matchid"
)

func TestRegistryCreateAndRemove(t *testing.T) {
	mockClock := quartz.NewMock(t)
	r := NewRegistry(mockClock, time.Hour, testLogger())

	b := r.Create("Hexen", duel.Witch, duel.Hard, 1)
	require.NotNil(t, b)
	assert.NoError(t, matchid.Validate(b.ID[len("bot-"):]))
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, r.Remove(b.ID))
	assert.False(t, r.Remove(b.ID), "double remove reports false")
	_, ok = r.Get(b.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySweepReclaimsStaleBots(t *testing.T) {
	mockClock := quartz.NewMock(t)
	r := NewRegistry(mockClock, time.Hour, testLogger())

	stale := r.Create("Old", duel.Knight, duel.Easy, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(2 * time.Hour).MustWait(ctx)

	fresh := r.Create("New", duel.Cleric, duel.Expert, 2)

	assert.Equal(t, 1, r.Sweep())
	_, ok := r.Get(stale.ID)
	assert.False(t, ok, "stale bot reclaimed")
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok, "fresh bot survives")
}

func TestRegistrySweepNoopWithinTTL(t *testing.T) {
	mockClock := quartz.NewMock(t)
	r := NewRegistry(mockClock, time.Hour, testLogger())

	r.Create("Young", duel.Warden, duel.Medium, 1)
	assert.Equal(t, 0, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRunSweeper(t *testing.T) {
	mockClock := quartz.NewMock(t)
	r := NewRegistry(mockClock, time.Hour, testLogger())
	r.Create("Old", duel.Knight, duel.Easy, 1)

	trap := mockClock.Trap().TickerFunc("bot-sweep")
	defer trap.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.RunSweeper(ctx, 10*time.Minute) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	trap.MustWait(waitCtx).MustRelease(waitCtx)

	// Step past the TTL one sweep interval at a time.
	for i := 0; i < 7; i++ {
		mockClock.Advance(10 * time.Minute).MustWait(waitCtx)
	}
	assert.Equal(t, 0, r.Len())

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

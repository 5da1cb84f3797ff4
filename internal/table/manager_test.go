package table

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSessionLifecycle(t *testing.T) {
	t.Parallel()

	m := NewManager(quartz.NewMock(t), time.Minute, quietLogger())
	id, err := m.Create(headsUpConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	snap, err := m.StartHand(id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.TableID)
	assert.Equal(t, 0, snap.Actor)

	snap, err = m.Act(id, ActionRequest{Seat: 0, Kind: game.Fold})
	require.NoError(t, err)
	assert.True(t, snap.Complete)

	again, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, snap.Message, again.Message)

	stats, err := m.Stats(id)
	require.NoError(t, err)
	assert.Len(t, stats, 2)

	require.NoError(t, m.Remove(id))
	assert.Zero(t, m.Len())
	assert.ErrorIs(t, m.Remove(id), ErrSessionNotFound)
}

func TestManagerUnknownSession(t *testing.T) {
	t.Parallel()

	m := NewManager(quartz.NewMock(t), 0, quietLogger())
	_, err := m.Snapshot("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Act("missing", ActionRequest{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerRejectsBadConfig(t *testing.T) {
	t.Parallel()

	m := NewManager(quartz.NewMock(t), 0, quietLogger())
	_, err := m.Create(Config{})
	assert.Error(t, err)
	assert.Zero(t, m.Len())
}

func TestManagerSweepsIdleSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := quartz.NewMock(t)
	m := NewManager(clock, time.Minute, quietLogger())

	idle, err := m.Create(headsUpConfig())
	require.NoError(t, err)
	busy, err := m.Create(headsUpConfig())
	require.NoError(t, err)

	clock.Advance(45 * time.Second).MustWait(ctx)
	_, err = m.Snapshot(busy)
	require.NoError(t, err)
	assert.Zero(t, m.Sweep())

	clock.Advance(30 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, m.Sweep())

	_, err = m.Snapshot(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Snapshot(busy)
	assert.NoError(t, err)
}

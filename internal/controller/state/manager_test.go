package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/schedule"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	sm := NewManager()
	sm.SetClock(clock.now)
	return sm, clock
}

func TestManager_StateAndData(t *testing.T) {
	t.Parallel()
	sm, _ := newTestManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateLoginUsername)
	sm.SetData(1, KeyUsername, "alice")
	sm.SetState(1, StateLoginPassword)

	assert.Equal(t, StateLoginPassword, sm.GetState(1))
	assert.Equal(t, "alice", sm.GetString(1, KeyUsername))

	all := sm.GetAllData(1)
	all[KeyUsername] = "mallory"
	assert.Equal(t, "alice", sm.GetString(1, KeyUsername))

	sm.DeleteData(1, KeyUsername)
	assert.Empty(t, sm.GetString(1, KeyUsername))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Zero(t, sm.Len())
}

func TestManager_SetStateNoneWithoutDataDropsEntry(t *testing.T) {
	t.Parallel()
	sm, _ := newTestManager()

	sm.SetState(1, StateForgotPhone)
	sm.SetState(1, StateNone)

	assert.Zero(t, sm.Len())
}

func TestManager_OpenDraft(t *testing.T) {
	t.Parallel()
	sm, _ := newTestManager()

	_, ok := sm.Draft(7)
	assert.False(t, ok)

	draft := schedule.NewDraft()
	sm.SetData(7, KeySlot, 2)
	sm.OpenDraft(7, draft)

	got, ok := sm.Draft(7)
	require.True(t, ok)
	assert.Same(t, draft, got)
	assert.Equal(t, StateAlertEditor, sm.GetState(7))
	_, hasSlot := sm.GetData(7, KeySlot)
	assert.False(t, hasSlot)
}

func TestManager_SweepExpired(t *testing.T) {
	t.Parallel()
	sm, clock := newTestManager()

	stale := schedule.NewDraft()
	sm.OpenDraft(1, stale)

	clock.t = clock.t.Add(20 * time.Minute)
	sm.SetState(2, StateCreatePillName)

	clock.t = clock.t.Add(15 * time.Minute)
	expired := sm.SweepExpired(30 * time.Minute)

	assert.Equal(t, []int64{1}, expired)
	assert.Equal(t, schedule.PhaseCancelled, stale.Phase())
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateCreatePillName, sm.GetState(2))
}

func TestManager_TouchKeepsDialogAlive(t *testing.T) {
	t.Parallel()
	sm, clock := newTestManager()

	sm.SetState(1, StateRegisterFirstName)
	clock.t = clock.t.Add(25 * time.Minute)
	sm.Touch(1)
	clock.t = clock.t.Add(25 * time.Minute)

	assert.Empty(t, sm.SweepExpired(30*time.Minute))
	assert.Equal(t, StateRegisterFirstName, sm.GetState(1))
}

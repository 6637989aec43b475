package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentorkit/pkg/statemachine"
)

const (
	idle  = statemachine.StringState("idle")
	armed = statemachine.StringState("armed")

	start      = statemachine.StringEvent("start")
	reschedule = statemachine.StringEvent("reschedule")
	stop       = statemachine.StringEvent("stop")
)

func TestStateMachine_Transitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sm := statemachine.MustNew(idle,
		statemachine.WithTransition(idle, armed, start),
		statemachine.WithTransition(armed, armed, reschedule),
		statemachine.WithTransition(armed, idle, stop),
	)

	assert.True(t, sm.Is(idle))
	assert.True(t, sm.CanFire(ctx, start, nil))
	assert.False(t, sm.CanFire(ctx, stop, nil))

	require.NoError(t, sm.Fire(ctx, start, nil))
	assert.Equal(t, armed, sm.Current())

	require.NoError(t, sm.Fire(ctx, reschedule, nil))
	assert.True(t, sm.Is(armed))

	require.NoError(t, sm.Fire(ctx, stop, nil))
	assert.True(t, sm.Is(idle))

	err := sm.Fire(ctx, stop, nil)
	require.Error(t, err)
	assert.True(t, statemachine.IsNoTransitionAvailableError(err))

	require.NoError(t, sm.Fire(ctx, start, nil))
	sm.Reset()
	assert.True(t, sm.Is(idle))
}

func TestStateMachine_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	positive := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		n, ok := data.(int)
		return ok && n > 0
	}

	sm := statemachine.MustNew(idle,
		statemachine.WithTransition(idle, armed, start, statemachine.WithGuard(positive)),
	)

	err := sm.Fire(ctx, start, 0)
	require.Error(t, err)
	assert.True(t, statemachine.IsTransitionRejectedError(err))
	assert.True(t, sm.Is(idle))
	assert.False(t, sm.CanFire(ctx, start, -1))

	require.NoError(t, sm.Fire(ctx, start, 5))
	assert.True(t, sm.Is(armed))
}

func TestStateMachine_Actions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("action runs before state change", func(t *testing.T) {
		var seen []string
		record := func(_ context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
			seen = append(seen, from.Name()+">"+to.Name()+":"+event.Name())
			return nil
		}

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition(idle, armed, start, statemachine.WithAction(record)),
		)
		require.NoError(t, sm.Fire(ctx, start, nil))
		assert.Equal(t, []string{"idle>armed:start"}, seen)
	})

	t.Run("failing action aborts transition", func(t *testing.T) {
		boom := errors.New("boom")
		fail := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
			return boom
		}

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition(idle, armed, start, statemachine.WithAction(fail)),
		)
		err := sm.Fire(ctx, start, nil)
		require.ErrorIs(t, err, boom)
		assert.True(t, sm.Is(idle))
	})
}

func TestStateMachine_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(nil)
	require.Error(t, err)

	_, err = statemachine.New(idle, statemachine.WithTransition(idle, nil, start))
	require.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	sm := statemachine.MustNew(idle)
	require.ErrorIs(t, sm.Fire(context.Background(), nil, nil), statemachine.ErrInvalidEvent)
	assert.False(t, sm.CanFire(context.Background(), nil, nil))

	assert.Panics(t, func() {
		statemachine.MustNew(nil)
	})
}

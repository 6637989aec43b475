// Package statemachine implements a small, thread-safe finite state machine.
//
// Transitions are registered per (state, event) pair and may carry guards and
// actions. Guards are evaluated in registration order and the first transition
// whose guards all pass wins. Actions run before the state changes; an action
// error aborts the transition and leaves the current state untouched.
//
//	const (
//		Idle  = statemachine.StringState("idle")
//		Armed = statemachine.StringState("armed")
//		Start = statemachine.StringEvent("start")
//	)
//
//	sm := statemachine.MustNew(Idle,
//		statemachine.WithTransition(Idle, Armed, Start,
//			statemachine.WithAction(arm),
//		),
//	)
//	err := sm.Fire(ctx, Start, interval)
//
// Firing an event with no registered transition for the current state returns
// *ErrNoTransitionAvailable; callers that treat such events as no-ops can test
// for it with IsNoTransitionAvailableError.
package statemachine

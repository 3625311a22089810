// Package fsm provides a small finite-state-machine engine with undo/redo history.
//
// A Config declares the initial state and, for every state, a map from event
// name to target state name. A Machine built from it tracks the current state,
// moves along transitions with Trigger, jumps directly with ChangeState and can
// rewind with Undo and Redo.
//
// # Configuration
//
// Configs are immutable once built and can be shared by any number of machines:
//
//	cfg := fsm.MustNewConfig("normal",
//	    fsm.State("normal", fsm.On("study", "busy")),
//	    fsm.State("busy",
//	        fsm.On("get_tired", "sleeping"),
//	        fsm.On("get_hungry", "hungry"),
//	    ),
//	    fsm.State("hungry", fsm.On("eat", "normal")),
//	    fsm.State("sleeping",
//	        fsm.On("get_hungry", "hungry"),
//	        fsm.On("get_up", "normal"),
//	    ),
//	)
//
// State declaration order is kept and is the order reported by Machine.States
// and Machine.StatesOn. NewConfig only checks structure; transition targets are
// trusted. A target that names no declared state is entered silently by Trigger.
// Pass WithStrictValidation to New to reject such configs up front.
//
// # History
//
// Every forward move (Trigger or ChangeState) pushes the previous state onto the
// undo stack and locks redo. Undo pushes the current state onto the redo stack,
// restores the previous one and unlocks redo. Redo is refused while locked even
// if the redo stack is not empty; the stack is kept and becomes usable again
// after the next Undo. Reset and ClearHistory are independent: Reset does not
// touch history and ClearHistory does not touch the current state.
//
//	m := fsm.MustNew(cfg)
//	_ = m.Trigger("study")      // busy
//	_ = m.Trigger("get_hungry") // hungry
//	m.Undo()                    // busy
//	m.Redo()                    // hungry
//	_, _ = m.ChangeState("normal")
//	m.Redo()                    // false: locked by the direct change
//
// # Error Handling
//
// New returns ErrMissingConfig for a nil config. ChangeState and Trigger return
// typed errors that can be inspected with helper predicates:
//
//	if fsm.IsUnknownStateError(err) { /* ... */ }
//	if fsm.IsInvalidTransitionError(err) { /* ... */ }
//
// A failed call never changes the machine.
//
// # Concurrency
//
// Machine holds no lock. It is meant for a single owner; callers sharing it
// between goroutines must provide their own mutual exclusion.
package fsm

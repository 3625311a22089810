package fsm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

// Kind identifies the operation that changed the current state.
type Kind string

const (
	KindTrigger Kind = "trigger"
	KindChange  Kind = "change"
	KindUndo    Kind = "undo"
	KindRedo    Kind = "redo"
	KindReset   Kind = "reset"
)

// Change describes a completed state change. Event is set only for KindTrigger.
type Change struct {
	Kind  Kind
	From  string
	To    string
	Event string
}

// Observer is notified after every state change.
type Observer func(Change)

// History is a snapshot of the undo/redo stacks, most recent entry last.
type History struct {
	Undo           []string
	Redo           []string
	RedoSuppressed bool
}

// Machine tracks the current state of a Config and keeps undo/redo history.
//
// Machine is not safe for concurrent use: it holds no lock, so an owner sharing it
// between goroutines must serialise access itself.
type Machine struct {
	config  *Config
	current string

	// undo and redo hold previously active states; the top is the last element.
	undo []string
	redo []string

	// undoSuppressed locks redo after any forward move until the next undo.
	undoSuppressed bool

	id        string
	strict    bool
	logger    *slog.Logger
	observers []Observer
}

// New creates a machine in the config's initial state with empty history.
// A config whose initial state is not declared, such as a zero Config, is rejected
// with ErrInvalidConfig.
func New(cfg *Config, opts ...Option) (*Machine, error) {
	if cfg == nil {
		return nil, ErrMissingConfig
	}
	if !cfg.Has(cfg.initial) {
		return nil, fmt.Errorf("%w: initial state '%s' is not declared", ErrInvalidConfig, cfg.initial)
	}

	m := &Machine{
		config:  cfg,
		current: cfg.initial,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.strict {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew works like New but panics on error.
func MustNew(cfg *Config, opts ...Option) *Machine {
	m, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// State returns the active state.
func (m *Machine) State() string {
	return m.current
}

// Initial returns the state Reset returns to.
func (m *Machine) Initial() string {
	return m.config.initial
}

// Config returns the configuration the machine runs on.
func (m *Machine) Config() *Config {
	return m.config
}

// ID returns the identifier set with WithID, or "".
func (m *Machine) ID() string {
	return m.id
}

// ChangeState jumps directly to target, which must be a declared state.
// The jump is recorded for undo but locks any pending redo history.
// On error nothing changes. The machine is returned to allow chaining.
func (m *Machine) ChangeState(target string) (*Machine, error) {
	if !m.config.Has(target) {
		return m, NewErrUnknownState(target)
	}

	m.advance(KindChange, target, "")
	return m, nil
}

// Trigger moves along the current state's transition for event.
// The target is taken as declared and is not checked against the config.
func (m *Machine) Trigger(event string) error {
	target, ok := m.config.Target(m.current, event)
	if !ok {
		return NewErrInvalidTransition(m.current, event)
	}

	m.advance(KindTrigger, target, event)
	return nil
}

// CanTrigger reports whether the current state has a rule for event.
func (m *Machine) CanTrigger(event string) bool {
	_, ok := m.config.Target(m.current, event)
	return ok
}

// AvailableEvents returns the events the current state handles, sorted by name.
func (m *Machine) AvailableEvents() []string {
	def, ok := m.config.states[m.current]
	if !ok {
		return []string{}
	}
	events := make([]string, 0, len(def))
	for event := range def {
		events = append(events, event)
	}
	slices.Sort(events)
	return events
}

// Reset returns to the initial state. History is left untouched.
func (m *Machine) Reset() {
	from := m.current
	m.current = m.config.initial
	m.notify(Change{Kind: KindReset, From: from, To: m.current})
}

// States returns every declared state in config order.
func (m *Machine) States() []string {
	return m.config.StateNames()
}

// StatesOn returns the states that declare a transition for event, in config order.
// The result is empty, never nil, when no state handles the event.
func (m *Machine) StatesOn(event string) []string {
	states := []string{}
	for _, name := range m.config.order {
		if _, ok := m.config.states[name][event]; ok {
			states = append(states, name)
		}
	}
	return states
}

// Undo returns to the previously active state and re-enables redo.
// It reports false when there is nothing to undo.
func (m *Machine) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}

	from := m.current
	m.redo = append(m.redo, m.current)
	m.current = m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.undoSuppressed = false

	m.notify(Change{Kind: KindUndo, From: from, To: m.current})
	return true
}

// Redo reapplies the most recently undone state.
// It reports false when the redo stack is empty or a forward move happened since the last undo.
// A locked redo stack is kept, not cleared, and unlocks again on the next Undo.
func (m *Machine) Redo() bool {
	if !m.CanRedo() {
		return false
	}

	from := m.current
	m.current = m.redo[len(m.redo)-1]
	m.undo = append(m.undo, m.current)
	m.redo = m.redo[:len(m.redo)-1]

	m.notify(Change{Kind: KindRedo, From: from, To: m.current})
	return true
}

// CanUndo reports whether Undo would change the state.
func (m *Machine) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo reports whether Redo would change the state: the redo stack is
// non-empty and no forward move happened since the last Undo.
func (m *Machine) CanRedo() bool {
	return len(m.redo) > 0 && !m.undoSuppressed
}

// ClearHistory empties both stacks. The current state and the redo lock are kept.
func (m *Machine) ClearHistory() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

// History returns a copy of both stacks.
func (m *Machine) History() History {
	return History{
		Undo:           slices.Clone(m.undo),
		Redo:           slices.Clone(m.redo),
		RedoSuppressed: m.undoSuppressed,
	}
}

// advance performs a forward move: record the previous state, switch, lock redo.
func (m *Machine) advance(kind Kind, target, event string) {
	from := m.current
	m.undo = append(m.undo, from)
	m.current = target
	m.undoSuppressed = true

	m.notify(Change{Kind: kind, From: from, To: target, Event: event})
}

func (m *Machine) notify(c Change) {
	attrs := []slog.Attr{
		logger.Kind(string(c.Kind)),
		logger.FromState(c.From),
		logger.ToState(c.To),
	}
	if c.Event != "" {
		attrs = append(attrs, logger.Event(c.Event))
	}
	if m.id != "" {
		attrs = append(attrs, logger.MachineID(m.id))
	}
	m.logger.LogAttrs(context.Background(), slog.LevelDebug, "state changed", attrs...)

	for _, fn := range m.observers {
		fn(c)
	}
}

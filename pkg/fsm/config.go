package fsm

import (
	"fmt"
	"maps"
	"slices"
)

// StateDef maps event names to target state names for one state.
// A missing event key means the state cannot handle that event.
type StateDef map[string]string

// Target returns the state the event leads to, if the state has a rule for it.
func (d StateDef) Target(event string) (string, bool) {
	target, ok := d[event]
	return target, ok
}

// Transition declares a single event -> target rule inside a StateSpec.
type Transition struct {
	Event  string
	Target string
}

// StateSpec declares a state and its outgoing transitions for NewConfig.
type StateSpec struct {
	Name        string
	Transitions []Transition
}

// On declares a transition taken on event to target.
func On(event, target string) Transition {
	return Transition{Event: event, Target: target}
}

// State declares a state with the given transitions.
func State(name string, transitions ...Transition) StateSpec {
	return StateSpec{Name: name, Transitions: transitions}
}

// Config is the static transition graph: the initial state plus every state's transition map.
// It is immutable once built and may be shared by any number of machines.
type Config struct {
	initial string
	order   []string
	states  map[string]StateDef
}

// NewConfig builds a Config. State declaration order is preserved and drives the order
// returned by StateNames and Machine.States.
//
// Only structural checks are applied: the initial state must be declared, state and event
// names must be non-empty and unique. Transition targets are not checked; use Validate for that.
func NewConfig(initial string, states ...StateSpec) (*Config, error) {
	if initial == "" {
		return nil, fmt.Errorf("%w: initial state cannot be empty", ErrInvalidConfig)
	}

	cfg := &Config{
		initial: initial,
		order:   make([]string, 0, len(states)),
		states:  make(map[string]StateDef, len(states)),
	}

	for i, s := range states {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: state[%d] has an empty name", ErrInvalidConfig, i)
		}
		if _, exists := cfg.states[s.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate state '%s'", ErrInvalidConfig, s.Name)
		}

		def := make(StateDef, len(s.Transitions))
		for _, t := range s.Transitions {
			if t.Event == "" {
				return nil, fmt.Errorf("%w: state '%s' has a transition with an empty event", ErrInvalidConfig, s.Name)
			}
			if _, exists := def[t.Event]; exists {
				return nil, fmt.Errorf("%w: state '%s' declares event '%s' twice", ErrInvalidConfig, s.Name, t.Event)
			}
			def[t.Event] = t.Target
		}

		cfg.order = append(cfg.order, s.Name)
		cfg.states[s.Name] = def
	}

	if _, ok := cfg.states[initial]; !ok {
		return nil, fmt.Errorf("%w: initial state '%s' is not declared", ErrInvalidConfig, initial)
	}

	return cfg, nil
}

// MustNewConfig works like NewConfig but panics on error.
func MustNewConfig(initial string, states ...StateSpec) *Config {
	cfg, err := NewConfig(initial, states...)
	if err != nil {
		panic(fmt.Sprintf("failed to create fsm config: %v", err))
	}
	return cfg
}

// Initial returns the state a machine starts in.
func (c *Config) Initial() string {
	return c.initial
}

// StateNames returns every declared state in declaration order.
func (c *Config) StateNames() []string {
	return slices.Clone(c.order)
}

// Has reports whether state is declared.
func (c *Config) Has(state string) bool {
	_, ok := c.states[state]
	return ok
}

// Transitions returns a copy of the transition map of state.
func (c *Config) Transitions(state string) (StateDef, bool) {
	def, ok := c.states[state]
	if !ok {
		return nil, false
	}
	return maps.Clone(def), true
}

// Target resolves the target of event in state. Undeclared states resolve nothing.
func (c *Config) Target(state, event string) (string, bool) {
	def, ok := c.states[state]
	if !ok {
		return "", false
	}
	return def.Target(event)
}

// Events returns the distinct event names across all states, in first-seen order.
// Events inside a single state are visited in sorted order so the result is stable.
func (c *Config) Events() []string {
	seen := make(map[string]struct{})
	var events []string
	for _, name := range c.order {
		for _, event := range slices.Sorted(maps.Keys(c.states[name])) {
			if _, ok := seen[event]; ok {
				continue
			}
			seen[event] = struct{}{}
			events = append(events, event)
		}
	}
	return events
}

// Validate reports every transition whose target is not a declared state.
// NewConfig does not call it; machines only run it under WithStrictValidation.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	for _, name := range c.order {
		def := c.states[name]
		for _, event := range slices.Sorted(maps.Keys(def)) {
			target := def[event]
			if _, ok := c.states[target]; !ok {
				verr.add(IssueUnknownTarget,
					fmt.Sprintf("event '%s' targets undeclared state '%s'", event, target),
					"states", name, "transitions", event)
			}
		}
	}

	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

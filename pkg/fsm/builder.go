package fsm

// ConfigBuilder provides a fluent API for declaring a Config.
//
//	cfg, err := fsm.NewConfigBuilder("normal").
//	    State("normal").On("study", "busy").
//	    State("busy").On("get_hungry", "hungry").
//	    State("hungry").On("eat", "normal").
//	    Build()
type ConfigBuilder struct {
	initial string
	states  []StateSpec
}

// NewConfigBuilder creates a builder for a config starting in initial.
func NewConfigBuilder(initial string) *ConfigBuilder {
	return &ConfigBuilder{initial: initial}
}

// State declares a new state. Subsequent On calls attach transitions to it.
func (b *ConfigBuilder) State(name string) *ConfigBuilder {
	b.states = append(b.states, StateSpec{Name: name})
	return b
}

// On adds a transition to the most recently declared state.
// Calling On before any State declares a transition on the initial state.
func (b *ConfigBuilder) On(event, target string) *ConfigBuilder {
	if len(b.states) == 0 {
		b.State(b.initial)
	}
	last := &b.states[len(b.states)-1]
	last.Transitions = append(last.Transitions, On(event, target))
	return b
}

// Build validates the structure and returns the Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	return NewConfig(b.initial, b.states...)
}

// MustBuild works like Build but panics on error.
func (b *ConfigBuilder) MustBuild() *Config {
	return MustNewConfig(b.initial, b.states...)
}

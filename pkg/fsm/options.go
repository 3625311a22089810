package fsm

import (
	"errors"
	"log/slog"
)

// Option configures a machine during construction.
type Option func(*Machine) error

// WithLogger sets the logger used to record state changes at debug level.
// Nil loggers are rejected so a misconfigured caller fails at construction.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		m.logger = l
		return nil
	}
}

// WithID names the machine in log records.
func WithID(id string) Option {
	return func(m *Machine) error {
		m.id = id
		return nil
	}
}

// WithStrictValidation makes New run Config.Validate and fail on dangling transition targets.
// Without it a malformed config is accepted and an undeclared target is only noticed
// once a trigger lands on it.
func WithStrictValidation() Option {
	return func(m *Machine) error {
		m.strict = true
		return nil
	}
}

// WithObserver registers a function called synchronously after every state change.
func WithObserver(fn Observer) Option {
	return func(m *Machine) error {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
		return nil
	}
}

// WithObservers registers multiple observers at once.
func WithObservers(fns ...Observer) Option {
	return func(m *Machine) error {
		for _, fn := range fns {
			if fn != nil {
				m.observers = append(m.observers, fn)
			}
		}
		return nil
	}
}

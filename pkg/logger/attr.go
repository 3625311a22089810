package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// State records a state name under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// FromState records the state a change started in under the key "from".
func FromState(name string) slog.Attr {
	return slog.String("from", name)
}

// ToState records the state a change ended in under the key "to".
func ToState(name string) slog.Attr {
	return slog.String("to", name)
}

// Kind records the kind of state change under the key "kind".
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// MachineID records the machine identifier under the key "machine_id".
// An empty id returns an empty Attr.
func MachineID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("machine_id", id)
}

// SessionID records the session identifier under the key "session_id".
// An empty id returns an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Command records a console command under the key "command".
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

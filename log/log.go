// Package log defines the logging interface used across the server. Concrete
// implementations live in subpackages so the core never depends on a specific
// logging library.
package log

// Logger accepts an event name followed by alternating key/value pairs.
type Logger interface {
	Debug(event string, keyvals ...any)
	Info(event string, keyvals ...any)
	Warn(event string, keyvals ...any)
	Error(event string, keyvals ...any)

	// With returns a Logger that adds the given key/value pairs to every event.
	With(keyvals ...any) Logger
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (n nop) With(...any) Logger { return n }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

package logs

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Factory of owner specific loggers.
type Factory struct {
	root      logr.Logger
	verbosity int
}

// NewFactory creates a Factory deriving loggers from root.
func NewFactory(
	root   logr.Logger,
	config ...func(*Factory),
) *Factory {
	f := &Factory{root: root}
	for _, configure := range config {
		if configure != nil {
			configure(f)
		}
	}
	return f
}

// Verbosity sets the level detail messages are logged at.
func Verbosity(verbosity int) func(*Factory) {
	return func(f *Factory) {
		f.verbosity = verbosity
	}
}

// For returns a logger named after the owner's type.
// A nil owner returns the root logger.
func (f *Factory) For(owner any) logr.Logger {
	if owner == nil {
		return f.root
	}
	return f.root.WithName(fmt.Sprintf("%T", owner))
}

// Detail returns the logger for owner at the configured verbosity.
func (f *Factory) Detail(owner any) logr.Logger {
	return f.For(owner).V(f.verbosity)
}

// Discard is a Factory whose loggers drop everything.
func Discard() *Factory {
	return NewFactory(logr.Discard())
}

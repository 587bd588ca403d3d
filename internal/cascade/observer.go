package cascade

import (
	"fmt"
	"strings"
)

// Result is the outcome of one dispatch cycle.
type Result uint8

const (
	// Forwarded means the selected child received the notification.
	Forwarded Result = iota
	// DroppedModeMismatch means a section-only kind arrived in ModeRow.
	DroppedModeMismatch
	// DroppedOutOfRange means the selector named no child.
	DroppedOutOfRange
	// DroppedUnsupported means the selected child lacks the capability.
	DroppedUnsupported
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Forwarded:
		return "forwarded"
	case DroppedModeMismatch:
		return "dropped-mode-mismatch"
	case DroppedOutOfRange:
		return "dropped-out-of-range"
	case DroppedUnsupported:
		return "dropped-unsupported"
	default:
		return "unknown"
	}
}

// ParseResult parses a result name as returned by Result.String.
// "dropped" alone is not accepted; callers use Result.Dropped for that.
func ParseResult(s string) (Result, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r := Forwarded; r <= DroppedUnsupported; r++ {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown dispatch result %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := ParseResult(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Dropped reports whether the notification was not forwarded.
func (r Result) Dropped() bool {
	return r != Forwarded
}

// Outcome describes a completed dispatch cycle.
type Outcome struct {
	// Parent is the index of the propagator that dispatched.
	Parent int

	Kind Kind
	Path IndexPath
	Mode PropagationMode

	Result Result

	// Target is the position of the selected child, or -1 if none was selected.
	Target int
}

// Observer is told about every dispatch cycle after it completes.
// Observers see drops that the entry points themselves never report.
type Observer interface {
	Observe(o Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(o Outcome)

// Observe implements Observer.
func (f ObserverFunc) Observe(o Outcome) {
	f(o)
}

// MultiObserver fans an outcome out to several observers in order.
type MultiObserver []Observer

// Observe implements Observer.
func (m MultiObserver) Observe(o Outcome) {
	for _, obs := range m {
		if obs != nil {
			obs.Observe(o)
		}
	}
}

package cascade

import (
	"fmt"
	"strings"
)

// PropagationMode selects which IndexPath component picks the child.
type PropagationMode uint8

const (
	// ModeRow selects the child at path.Row.
	ModeRow PropagationMode = iota
	// ModeSection selects the child at path.Section.
	ModeSection
)

// String returns the mode name.
func (m PropagationMode) String() string {
	switch m {
	case ModeRow:
		return "row"
	case ModeSection:
		return "section"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m PropagationMode) Toggle() PropagationMode {
	if m == ModeRow {
		return ModeSection
	}
	return ModeRow
}

// selector returns the path component this mode selects on.
func (m PropagationMode) selector(path IndexPath) int {
	if m == ModeSection {
		return path.Section
	}
	return path.Row
}

// ParseMode parses "row" or "section" (case-insensitive).
func ParseMode(s string) (PropagationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "rows":
		return ModeRow, nil
	case "section", "sections":
		return ModeSection, nil
	default:
		return ModeRow, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m PropagationMode) MarshalText() ([]byte, error) {
	switch m {
	case ModeRow, ModeSection:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PropagationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

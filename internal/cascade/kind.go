package cascade

import (
	"fmt"
	"strings"
)

// Kind identifies a notification and its payload shape.
type Kind uint8

const (
	// KindWillDisplayCell is sent before a cell becomes visible.
	KindWillDisplayCell Kind = iota
	// KindWillDisplayHeader is sent before a section header becomes visible.
	KindWillDisplayHeader
	// KindWillDisplayFooter is sent before a section footer becomes visible.
	KindWillDisplayFooter
	// KindDidEndDisplayingCell is sent after a cell leaves the visible area.
	KindDidEndDisplayingCell
	// KindDidEndDisplayingHeader is sent after a section header leaves the visible area.
	KindDidEndDisplayingHeader
	// KindDidEndDisplayingFooter is sent after a section footer leaves the visible area.
	KindDidEndDisplayingFooter

	kindCount
)

var kindNames = [kindCount]string{
	KindWillDisplayCell:        "will-display-cell",
	KindWillDisplayHeader:      "will-display-header",
	KindWillDisplayFooter:      "will-display-footer",
	KindDidEndDisplayingCell:   "did-end-displaying-cell",
	KindDidEndDisplayingHeader: "did-end-displaying-header",
	KindDidEndDisplayingFooter: "did-end-displaying-footer",
}

// Kinds returns every notification kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// HasRow reports whether the kind carries a meaningful row.
// Header and footer kinds are section-only.
func (k Kind) HasRow() bool {
	return k == KindWillDisplayCell || k == KindDidEndDisplayingCell
}

// ParseKind parses a kind name as returned by Kind.String.
// Underscores are accepted in place of dashes.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

package cascade

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PropagationMode
		wantErr bool
	}{
		{"row", ModeRow, false},
		{"Row", ModeRow, false},
		{" section ", ModeSection, false},
		{"SECTIONS", ModeSection, false},
		{"column", ModeRow, true},
		{"", ModeRow, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMode(%q) error should wrap ErrInvalidMode", tt.in)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeText(t *testing.T) {
	var m PropagationMode
	if err := m.UnmarshalText([]byte("section")); err != nil {
		t.Fatal(err)
	}
	if m != ModeSection {
		t.Errorf("expected ModeSection, got %v", m)
	}
	text, err := m.MarshalText()
	if err != nil || string(text) != "section" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
	if _, err := PropagationMode(7).MarshalText(); err == nil {
		t.Error("expected error marshalling unknown mode")
	}
	if m.Toggle() != ModeRow || ModeRow.Toggle() != ModeSection {
		t.Error("Toggle should switch between row and section")
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 6 {
		t.Fatalf("expected 6 kinds, got %d", len(kinds))
	}

	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
	}

	if k, err := ParseKind("WILL_DISPLAY_HEADER"); err != nil || k != KindWillDisplayHeader {
		t.Errorf("expected underscores to parse, got %v, %v", k, err)
	}
	if _, err := ParseKind("will-select-row"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if Kind(200).String() != "unknown" {
		t.Error("expected unknown name for out of range kind")
	}
}

func TestKindHasRow(t *testing.T) {
	rows := map[Kind]bool{
		KindWillDisplayCell:        true,
		KindDidEndDisplayingCell:   true,
		KindWillDisplayHeader:      false,
		KindWillDisplayFooter:      false,
		KindDidEndDisplayingHeader: false,
		KindDidEndDisplayingFooter: false,
	}
	for k, want := range rows {
		if k.HasRow() != want {
			t.Errorf("%v.HasRow() = %v, want %v", k, k.HasRow(), want)
		}
	}
}

func TestIndexPath(t *testing.T) {
	p := NewIndexPath(3, 4)
	if p.String() != "3:4" {
		t.Errorf("expected 3:4, got %s", p)
	}
	if SectionPath(5) != (IndexPath{Row: 0, Section: 5}) {
		t.Errorf("unexpected section path %v", SectionPath(5))
	}
}

func TestResultString(t *testing.T) {
	if Forwarded.Dropped() {
		t.Error("Forwarded should not be a drop")
	}
	for _, r := range []Result{DroppedModeMismatch, DroppedOutOfRange, DroppedUnsupported} {
		if !r.Dropped() {
			t.Errorf("%v should be a drop", r)
		}
	}
	if Result(99).String() != "unknown" {
		t.Error("expected unknown result name")
	}
}

func TestParseResult(t *testing.T) {
	for _, r := range []Result{Forwarded, DroppedModeMismatch, DroppedOutOfRange, DroppedUnsupported} {
		got, err := ParseResult(r.String())
		if err != nil || got != r {
			t.Errorf("ParseResult(%q) = %v, %v", r.String(), got, err)
		}
	}
	if _, err := ParseResult("dropped"); err == nil {
		t.Error("expected error for bare 'dropped'")
	}
}

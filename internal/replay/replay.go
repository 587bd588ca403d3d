// Package replay runs scripted notification sequences against a propagator
// and checks the outcomes.
//
// A script is YAML:
//
//	name: header routing
//	steps:
//	  - mode: section
//	  - kind: will-display-header
//	    section: 1
//	    expect: forwarded
//	    target: 1
//	  - kind: will-display-cell
//	    row: 99
//	    expect: dropped-out-of-range
//
// A step with only a mode changes the propagation mode. Every other step
// sends one notification; expect and target are optional checks.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/tableview"
)

// ErrEmptyStep is returned for a step that neither sets a mode nor sends a kind.
var ErrEmptyStep = errors.New("step has neither mode nor kind")

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one entry of a script.
type Step struct {
	Mode    *cascade.PropagationMode `yaml:"mode,omitempty"`
	Kind    *cascade.Kind            `yaml:"kind,omitempty"`
	Row     int                      `yaml:"row,omitempty"`
	Section int                      `yaml:"section,omitempty"`
	Expect  *cascade.Result          `yaml:"expect,omitempty"`
	Target  *int                     `yaml:"target,omitempty"`
}

// Parse decodes a script from YAML.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding replay script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Mode == nil && st.Kind == nil {
			return nil, fmt.Errorf("step %d: %w", i, ErrEmptyStep)
		}
	}
	return &s, nil
}

// ParseFile decodes a script file.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Failure describes a step whose outcome did not match its expectation.
type Failure struct {
	Step    int
	Outcome cascade.Outcome
	Reason  string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d (%s %s): %s", f.Step, f.Outcome.Kind, f.Outcome.Path, f.Reason)
}

// Report is the result of one run.
type Report struct {
	RunID    uuid.UUID
	Script   string
	Outcomes []cascade.Outcome
	Failures []Failure
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Count returns how many outcomes had result res.
func (r *Report) Count(res cascade.Result) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result == res {
			n++
		}
	}
	return n
}

// Table is the table payload children receive during a replay.
// Every step of one run sends the same Table.
type Table struct {
	RunID  uuid.UUID
	Script string
}

// Runner replays scripts.
type Runner struct {
	log *logging.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(l *logging.Logger) *Runner {
	if l == nil {
		l = logging.NullLogger
	}
	return &Runner{log: l.WithComponent("replay")}
}

// Run sends every step of s to p. The propagator's observer keeps
// receiving outcomes during the run and is restored afterwards, as is
// the propagation mode.
func (r *Runner) Run(p *cascade.Propagator, s *Script) *Report {
	report := &Report{RunID: uuid.New(), Script: s.Name}
	log := r.log.WithField("run", report.RunID.String())
	log.Info("replay started", "script", s.Name, "steps", len(s.Steps))

	table := &Table{RunID: report.RunID, Script: s.Name}

	var last *cascade.Outcome
	capture := cascade.ObserverFunc(func(o cascade.Outcome) {
		last = &o
	})

	prevObs := p.Observer()
	prevMode := p.Mode()
	p.SetObserver(cascade.MultiObserver{capture, prevObs})
	defer func() {
		p.SetObserver(prevObs)
		p.SetMode(prevMode)
	}()

	for i, st := range s.Steps {
		if st.Mode != nil {
			p.SetMode(*st.Mode)
			log.Debug("mode", "step", i, "mode", st.Mode.String())
		}
		if st.Kind == nil {
			continue
		}

		last = nil
		send(p, table, *st.Kind, st.Row, st.Section)
		if last == nil {
			continue
		}
		report.Outcomes = append(report.Outcomes, *last)

		if f, ok := check(i, st, *last); !ok {
			report.Failures = append(report.Failures, f)
			log.Warn("expectation failed", "step", i, "reason", f.Reason)
		}
	}

	log.Info("replay finished",
		"forwarded", report.Count(cascade.Forwarded),
		"outcomes", len(report.Outcomes),
		"failures", len(report.Failures),
	)
	return report
}

func send(p *cascade.Propagator, table cascade.Table, kind cascade.Kind, row, section int) {
	path := cascade.NewIndexPath(row, section)
	switch kind {
	case cascade.KindWillDisplayCell:
		p.WillDisplayCell(table, &tableview.Cell{Path: path}, path)
	case cascade.KindDidEndDisplayingCell:
		p.DidEndDisplayingCell(table, &tableview.Cell{Path: path}, path)
	case cascade.KindWillDisplayHeader:
		p.WillDisplayHeader(table, &tableview.View{Kind: tableview.ItemHeader, Section: section}, section)
	case cascade.KindDidEndDisplayingHeader:
		p.DidEndDisplayingHeader(table, &tableview.View{Kind: tableview.ItemHeader, Section: section}, section)
	case cascade.KindWillDisplayFooter:
		p.WillDisplayFooter(table, &tableview.View{Kind: tableview.ItemFooter, Section: section}, section)
	case cascade.KindDidEndDisplayingFooter:
		p.DidEndDisplayingFooter(table, &tableview.View{Kind: tableview.ItemFooter, Section: section}, section)
	}
}

func check(i int, st Step, out cascade.Outcome) (Failure, bool) {
	if st.Expect != nil && *st.Expect != out.Result {
		return Failure{Step: i, Outcome: out, Reason: fmt.Sprintf("expected %s, got %s", *st.Expect, out.Result)}, false
	}
	if st.Target != nil && *st.Target != out.Target {
		return Failure{Step: i, Outcome: out, Reason: fmt.Sprintf("expected target %d, got %d", *st.Target, out.Target)}, false
	}
	return Failure{}, true
}

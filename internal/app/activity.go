package app

import (
	"fmt"
	"sync"

	"github.com/dshills/cascade/internal/cascade"
)

// DefaultActivitySize is the number of outcomes an Activity keeps.
const DefaultActivitySize = 200

// Activity keeps the most recent dispatch outcomes. It implements cascade.Observer.
type Activity struct {
	mu    sync.Mutex
	size  int
	items []cascade.Outcome
	total map[cascade.Result]int
}

// NewActivity creates an activity log holding up to size outcomes.
func NewActivity(size int) *Activity {
	if size <= 0 {
		size = DefaultActivitySize
	}
	return &Activity{size: size, total: make(map[cascade.Result]int)}
}

// Observe implements cascade.Observer.
func (a *Activity) Observe(out cascade.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total[out.Result]++
	if len(a.items) == a.size {
		copy(a.items, a.items[1:])
		a.items = a.items[:len(a.items)-1]
	}
	a.items = append(a.items, out)
}

// Recent returns up to n outcomes, newest last.
func (a *Activity) Recent(n int) []cascade.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n > len(a.items) || n < 0 {
		n = len(a.items)
	}
	out := make([]cascade.Outcome, n)
	copy(out, a.items[len(a.items)-n:])
	return out
}

// Total returns how many outcomes with result r were observed.
func (a *Activity) Total(r cascade.Result) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total[r]
}

// Describe formats an outcome for display.
func Describe(out cascade.Outcome) string {
	target := "-"
	if out.Target >= 0 {
		target = fmt.Sprintf("%d", out.Target)
	}
	return fmt.Sprintf("%-26s %-6s %-7s -> %-2s %s", out.Kind, out.Path, out.Mode, target, out.Result)
}

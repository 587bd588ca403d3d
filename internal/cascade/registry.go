package cascade

import (
	"fmt"
	"sort"
)

// Registry is an ordered, immutable set of child delegates.
// Positions are dense: the child at position i reports Index() == i.
type Registry struct {
	children []Delegate
}

// NewRegistry builds a registry ordered by each child's Index.
// Children may be given in any order, but their indexes must be
// exactly 0..n-1.
func NewRegistry(children ...Delegate) (*Registry, error) {
	ordered := make([]Delegate, len(children))
	copy(ordered, children)

	for i, c := range ordered {
		if c == nil {
			return nil, fmt.Errorf("%w: argument %d", ErrNilChild, i)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index() < ordered[j].Index()
	})

	for pos, c := range ordered {
		idx := c.Index()
		if pos > 0 && ordered[pos-1].Index() == idx {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePosition, idx)
		}
		if idx != pos {
			return nil, fmt.Errorf("%w: expected index %d, got %d", ErrSparsePosition, pos, idx)
		}
	}

	return &Registry{children: ordered}, nil
}

// Len returns the number of children.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.children)
}

// ChildAt returns the child at position, or false if there is none.
func (r *Registry) ChildAt(position int) (Delegate, bool) {
	if position < 0 || position >= r.Len() {
		return nil, false
	}
	return r.children[position], true
}

// Children returns a copy of the children in position order.
func (r *Registry) Children() []Delegate {
	out := make([]Delegate, r.Len())
	if r != nil {
		copy(out, r.children)
	}
	return out
}

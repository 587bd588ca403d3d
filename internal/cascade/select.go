package cascade

import "fmt"

// Valid reports whether the selector component of path, chosen by mode,
// names a position in a registry of the given size.
func Valid(mode PropagationMode, path IndexPath, size int) bool {
	sel := mode.selector(path)
	return sel >= 0 && sel < size
}

// Select returns the child the path addresses under mode.
// Callers must check Valid first; an invalid path panics.
func Select(mode PropagationMode, path IndexPath, reg *Registry) Delegate {
	child, ok := reg.ChildAt(mode.selector(path))
	if !ok {
		panic(fmt.Sprintf("cascade: select %s in %s mode outside %d children", path, mode, reg.Len()))
	}
	return child
}

package logging

import "github.com/dshills/cascade/internal/cascade"

// Observer logs each dispatch outcome at debug level.
type Observer struct {
	log *Logger
}

// NewObserver creates an observer that writes to l.
func NewObserver(l *Logger) *Observer {
	return &Observer{log: l.WithComponent("cascade")}
}

// Observe implements cascade.Observer.
func (o *Observer) Observe(out cascade.Outcome) {
	if !o.log.Enabled(LevelDebug) {
		return
	}
	o.log.Debug("dispatch",
		"parent", out.Parent,
		"kind", out.Kind.String(),
		"path", out.Path.String(),
		"mode", out.Mode.String(),
		"result", out.Result.String(),
		"target", out.Target,
	)
}

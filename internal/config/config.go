package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/logging"
)

// Child types.
const (
	ChildBare       = "bare"
	ChildComplete   = "complete"
	ChildSelective  = "selective"
	ChildLua        = "lua"
	ChildPropagator = "propagator"
)

// Config is the complete cascade configuration.
type Config struct {
	Propagation Propagation   `toml:"propagation"`
	Table       Table         `toml:"table"`
	Children    []ChildConfig `toml:"children"`
	Logging     Logging       `toml:"logging"`
	Metrics     Metrics       `toml:"metrics"`

	// path is the file the config was loaded from, if any.
	path string
}

// Propagation holds the root propagator settings.
type Propagation struct {
	Mode cascade.PropagationMode `toml:"mode"`
}

// Table describes the simulated table.
type Table struct {
	Height   int       `toml:"height"`
	Sections []Section `toml:"sections"`
}

// Section describes one table section.
type Section struct {
	Rows   int    `toml:"rows"`
	Header bool   `toml:"header"`
	Footer bool   `toml:"footer"`
	Title  string `toml:"title"`
}

// ChildConfig describes one child delegate.
type ChildConfig struct {
	Index int    `toml:"index"`
	Type  string `toml:"type"`

	// Script is the Lua file for type "lua". Relative paths are resolved
	// against the config file's directory.
	Script string `toml:"script,omitempty"`

	// Kinds lists the supported kinds for type "selective".
	Kinds []cascade.Kind `toml:"kinds,omitempty"`

	// Mode and Children configure type "propagator".
	Mode     *cascade.PropagationMode `toml:"mode,omitempty"`
	Children []ChildConfig            `toml:"children,omitempty"`
}

// Logging configures the logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Metrics configures the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration: two children, the first
// supporting nothing and the second supporting everything.
func Default() *Config {
	return &Config{
		Propagation: Propagation{Mode: cascade.ModeRow},
		Table: Table{
			Height: 10,
			Sections: []Section{
				{Rows: 5, Header: true, Footer: true, Title: "First"},
				{Rows: 5, Header: true, Footer: true, Title: "Second"},
			},
		},
		Children: []ChildConfig{
			{Index: 0, Type: ChildBare},
			{Index: 1, Type: ChildComplete},
		},
		Logging: Logging{Level: "info", Format: string(logging.FormatText)},
	}
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// ResolvePath resolves p relative to the config file's directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Load reads path on top of the defaults, applies CASCADE_* environment
// overrides and validates the result. A missing file is not an error when
// path is empty; a named file that does not exist is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
		cfg.path = path
	}

	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults without reading the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode("<data>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	// Lists from the file replace the defaults rather than merging into them.
	var probe struct {
		Table struct {
			Sections []Section `toml:"sections"`
		} `toml:"table"`
		Children []ChildConfig `toml:"children"`
	}
	if err := toml.Unmarshal(data, &probe); err == nil {
		if probe.Table.Sections != nil {
			cfg.Table.Sections = nil
		}
		if probe.Children != nil {
			cfg.Children = nil
		}
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = serr.String()
		}
		return perr
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Propagation.Mode {
	case cascade.ModeRow, cascade.ModeSection:
	default:
		return &ValidationError{Path: "propagation.mode", Message: "must be row or section", Value: c.Propagation.Mode}
	}

	if c.Table.Height < 0 {
		return &ValidationError{Path: "table.height", Message: "must not be negative", Value: c.Table.Height}
	}
	for i, s := range c.Table.Sections {
		if s.Rows < 0 {
			return &ValidationError{Path: fmt.Sprintf("table.sections[%d].rows", i), Message: "must not be negative", Value: s.Rows}
		}
	}

	switch c.Logging.Format {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		return &ValidationError{Path: "logging.format", Message: "must be text or json", Value: c.Logging.Format}
	}

	return validateChildren("children", c.Children)
}

func validateChildren(prefix string, children []ChildConfig) error {
	seen := make(map[int]bool, len(children))
	for i, ch := range children {
		path := fmt.Sprintf("%s[%d]", prefix, i)

		if ch.Index < 0 || ch.Index >= len(children) {
			return &ValidationError{Path: path + ".index", Message: fmt.Sprintf("must be in 0..%d", len(children)-1), Value: ch.Index}
		}
		if seen[ch.Index] {
			return &ValidationError{Path: path + ".index", Message: "duplicate index", Value: ch.Index}
		}
		seen[ch.Index] = true

		switch ch.Type {
		case ChildBare, ChildComplete:
		case ChildSelective:
			if len(ch.Kinds) == 0 {
				return &ValidationError{Path: path + ".kinds", Message: "selective child needs at least one kind", Value: ch.Kinds}
			}
		case ChildLua:
			if ch.Script == "" {
				return &ValidationError{Path: path + ".script", Message: "lua child needs a script", Value: ch.Script}
			}
		case ChildPropagator:
			if err := validateChildren(path+".children", ch.Children); err != nil {
				return err
			}
		default:
			return &ValidationError{Path: path + ".type", Message: "unknown child type", Value: ch.Type}
		}
	}
	return nil
}

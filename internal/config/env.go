package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dshills/cascade/internal/cascade"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CASCADE_"

// EnvLoader applies environment variable overrides to a Config.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader reading variables that start with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader with a custom lookup function.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// Apply overrides fields of cfg from the environment:
//
//	<prefix>MODE          propagation.mode
//	<prefix>TABLE_HEIGHT  table.height
//	<prefix>LOG_LEVEL     logging.level
//	<prefix>LOG_FORMAT    logging.format
//	<prefix>METRICS_ADDR  metrics.addr
//
// Empty values count as set.
func (l *EnvLoader) Apply(cfg *Config) error {
	if v, ok := l.get("MODE"); ok {
		mode, err := cascade.ParseMode(v)
		if err != nil {
			return fmt.Errorf("%sMODE: %w", l.prefix, err)
		}
		cfg.Propagation.Mode = mode
	}

	if v, ok := l.get("TABLE_HEIGHT"); ok {
		h, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTABLE_HEIGHT: %w", l.prefix, err)
		}
		cfg.Table.Height = h
	}

	if v, ok := l.get("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := l.get("LOG_FORMAT"); ok {
		cfg.Logging.Format = v
	}
	if v, ok := l.get("METRICS_ADDR"); ok {
		cfg.Metrics.Addr = v
	}
	return nil
}

func (l *EnvLoader) get(name string) (string, bool) {
	return l.lookup(l.prefix + name)
}

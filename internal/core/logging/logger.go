package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field that names the emitting component.
const ComponentKey = "cmp"

// Component derives a logger from the global log.Logger tagged with name.
// The global logger is read at call time, so long-lived components must be
// created after the root command has configured logging.
func Component(name string) zerolog.Logger {
	return log.With().Str(ComponentKey, name).Logger()
}

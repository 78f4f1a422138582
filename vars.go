package cmdinput

import (
	"context"
	"sync"

	"lesiw.io/zeros"
)

// Names of the configuration variables read by a [Parser].
const (
	// CommandVar holds the command template.
	// An empty template disables the parser.
	CommandVar = "GCMD"

	// PlaceholderVar holds the marker that is replaced by the input name.
	PlaceholderVar = "GCRS"
)

// Default values of the configuration variables.
const (
	DefaultCommand     = ""
	DefaultPlaceholder = "{}"
)

// Vars is a table of named string values shared between a host and its
// parsers. It is safe for concurrent use.
//
// Values may change at any time. Readers must look values up each time
// they need them.
type Vars struct {
	mu   sync.Mutex
	vals zeros.Map[string, string]
}

// NewVars returns a table holding the default values of [CommandVar]
// and [PlaceholderVar].
func NewVars() *Vars {
	v := new(Vars)
	v.Set(CommandVar, DefaultCommand)
	v.Set(PlaceholderVar, DefaultPlaceholder)
	return v
}

// Lookup returns the value of name, or "" if name is unset.
func (v *Vars) Lookup(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	val, _ := v.vals.CheckGet(name)
	return val
}

// Set sets the value of name.
func (v *Vars) Set(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vals.Set(name, value)
}

// LoadEnv copies [CommandVar] and [PlaceholderVar] from the environment
// stored in ctx (see [WithEnv]). Variables absent from the environment
// keep their current value.
func (v *Vars) LoadEnv(ctx context.Context) {
	env := Envs(ctx)
	for _, name := range []string{CommandVar, PlaceholderVar} {
		if val, ok := env[name]; ok {
			v.Set(name, val)
		}
	}
}

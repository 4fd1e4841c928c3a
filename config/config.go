// Package config carries the process-wide, read-only configuration flags
// named in spec.md §6: RelationalDomainEnabled, DebugLevel, and WriteHTML.
// Following the teacher's utils/init.go options/optInterface split, flags
// are registered into a caller-supplied *flag.FlagSet (never into the
// global flag.CommandLine, and RegisterFlags never calls flag.Parse
// itself — this package is imported by the domain library, not only by a
// CLI main, so parsing must stay the caller's decision). A YAML overlay,
// grounded on awslabs-ar-go-tools's analysis/config.Load, lets a driver
// load the same flags from a checked-in file instead of argv.
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"
)

// Flags holds the recognized configuration keys from spec.md §6. Zero
// value is "relational domain off, no debug output, no HTML notes" — the
// least chatty, least expensive configuration.
type Flags struct {
	// RelationalDomainEnabled is loaded and registered here, but no code in
	// this module reads it: the relation.Store is always computed, and
	// ReachableMemory.String always prints it.
	RelationalDomainEnabled bool `yaml:"relational-domain-enabled"`
	// DebugLevel >= 1 enables the "weak update for ..." diagnostic notes.
	// No trace sets are printed at any level.
	DebugLevel int `yaml:"debug-level"`
	// WriteHTML enables "pruned a multi-valued slot" diagnostic notes.
	WriteHTML bool `yaml:"write-html"`
}

// Default returns the least chatty configuration.
func Default() *Flags { return &Flags{} }

// RegisterFlags registers this package's flags on fs, following the
// teacher's flag.BoolVar/flag.IntVar-into-a-struct-field style.
func (f *Flags) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.RelationalDomainEnabled, "relational-domain", false,
		"relational-domain setting (recorded only; not read by this module)")
	fs.IntVar(&f.DebugLevel, "debug-level", 0,
		"debug_level >= 1 prints \"weak update for ...\" diagnostic notes")
	fs.BoolVar(&f.WriteHTML, "write-html", false,
		"emit \"pruned a multi-valued slot\"-style diagnostic notes")
}

// Load reads a YAML file and overlays its keys onto a fresh default
// Flags, mirroring awslabs-ar-go-tools's config.Load.
func Load(path string) (*Flags, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := Default()
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DebugEnabled reports whether trace-set printing is on.
func (f *Flags) DebugEnabled() bool { return f != nil && f.DebugLevel >= 1 }

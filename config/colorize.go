package config

import "github.com/fatih/color"

// Colorize wraps a fatih/color SprintFunc so that debug-only callers can
// unconditionally call it without checking DebugEnabled first; color
// itself already turns off escapes on a non-tty, but we additionally
// respect an explicit opt-out the way the teacher's CanColorize does for
// its own -no-colorize flag.
func Colorize(noColorize bool, col func(a ...interface{}) string, args ...interface{}) string {
	if noColorize {
		color.NoColor = true
	}
	return col(args...)
}

var (
	// Pruned is used to flag "pruned a multi-valued slot" notes.
	Pruned = color.New(color.FgYellow).SprintFunc()
	// WeakUpdate is used to flag "weak update for ..." notes.
	WeakUpdate = color.New(color.FgCyan).SprintFunc()
)

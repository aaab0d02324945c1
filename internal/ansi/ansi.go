// Package ansi holds the SGR escape codes used to highlight CLI output.
package ansi

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"
	Red   = "\033[31m"
	Green = "\033[32m"
)

// Paint wraps s in code and Reset when enabled is true, and returns s
// unchanged otherwise.
func Paint(enabled bool, code, s string) string {
	if !enabled || s == "" {
		return s
	}
	return code + s + Reset
}

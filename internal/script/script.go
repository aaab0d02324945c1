// Package script parses TOML files describing a sequence of disjoint-set
// forest operations and replays them, checking any expectations the file
// declares along the way.
//
// A script looks like:
//
//	name = "demo"
//	seed = 7
//
//	[[op]]
//	kind  = "make"
//	elems = ["a", "b", "c"]
//
//	[[op]]
//	kind   = "union"
//	elems  = ["a", "b"]
//	groups = 2
//
//	[[op]]
//	kind   = "connected"
//	elems  = ["a", "b"]
//	expect = true
package script

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Operation kinds.
const (
	KindMake      = "make"
	KindUnion     = "union"
	KindFind      = "find"
	KindConnected = "connected"
	KindContains  = "contains"
	KindRemove    = "remove"
	KindClear     = "clear"
)

// ErrInvalidOp is returned when an operation has an unknown kind or the
// wrong number of elements.
var ErrInvalidOp = errors.New("invalid operation")

// Script is a parsed forest script.
type Script struct {
	Name string `toml:"name"`
	// Seed overrides the runner's seed for representative selection.
	Seed *uint64 `toml:"seed,omitempty"`
	Ops  []Op    `toml:"op"`
}

// Op is one step of a script.
//
// make and remove apply to every element; union merges the first element
// with each of the others; find, contains, and connected query the first
// one or two elements. Expect checks the result of contains or connected,
// Want checks the representative returned by find, and Groups checks the
// group count after the step.
type Op struct {
	Kind   string   `toml:"kind"`
	Elems  []string `toml:"elems"`
	Expect *bool    `toml:"expect,omitempty"`
	Want   string   `toml:"want,omitempty"`
	Groups *int     `toml:"groups,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for i, op := range s.Ops {
		if err := op.validate(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Marshal encodes s as TOML.
func Marshal(s *Script) ([]byte, error) {
	return toml.Marshal(s)
}

func (op Op) validate() error {
	n := len(op.Elems)
	var ok bool
	switch op.Kind {
	case KindMake, KindRemove:
		ok = n >= 1
	case KindUnion:
		ok = n >= 2
	case KindFind, KindContains:
		ok = n == 1
	case KindConnected:
		ok = n == 2
	case KindClear:
		ok = n == 0
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidOp, op.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s with %d elements", ErrInvalidOp, op.Kind, n)
	}
	if op.Expect != nil && op.Kind != KindContains && op.Kind != KindConnected {
		return fmt.Errorf("%w: expect is only valid for contains and connected", ErrInvalidOp)
	}
	if op.Want != "" && op.Kind != KindFind {
		return fmt.Errorf("%w: want is only valid for find", ErrInvalidOp)
	}
	return nil
}

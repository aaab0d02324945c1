package setop

import (
	"fmt"
	"iter"
)

// Op is a binary set operation.
type Op int

// Supported operations.
const (
	Union Op = iota
	Intersection
	Difference // members of a that are not in b
	SymmetricDifference
)

// String returns the lower-case name of the operation.
func (o Op) String() string {
	switch o {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case SymmetricDifference:
		return "symmetric-difference"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// ParseOp maps an operation name, as returned by Op.String, to its Op.
func ParseOp(name string) (Op, error) {
	switch name {
	case "union":
		return Union, nil
	case "intersection":
		return Intersection, nil
	case "difference":
		return Difference, nil
	case "symmetric-difference":
		return SymmetricDifference, nil
	}
	return 0, fmt.Errorf("setop: unknown operation %q", name)
}

// View is the lazy result of applying an Op to two sets. It holds no
// elements of its own.
//
// Mutations are translated into changes of the backing sets that make the
// view reflect them:
//
//	Union               Add inserts into a; Remove and Clear affect both.
//	Intersection        Add inserts into both; Clear removes b's members from a.
//	Difference          Add inserts into a and removes from b; Clear keeps in a
//	                    only what b also holds.
//	SymmetricDifference Add of a shared element removes it from b; Clear
//	                    reduces both sets to their intersection.
type View[E comparable] struct {
	op   Op
	a, b Set[E]
}

// NewView returns the lazy result of op applied to a and b.
func NewView[E comparable](op Op, a, b Set[E]) *View[E] {
	return &View[E]{op: op, a: a, b: b}
}

// Apply computes op over a and b into a new HashSet.
func Apply[E comparable](op Op, a, b Set[E]) *HashSet[E] {
	return Materialize[E](NewView(op, a, b))
}

// Op returns the view's operation.
func (v *View[E]) Op() Op { return v.op }

// A returns the left operand.
func (v *View[E]) A() Set[E] { return v.a }

// B returns the right operand.
func (v *View[E]) B() Set[E] { return v.b }

// Contains reports whether e is a member of the view.
func (v *View[E]) Contains(e E) bool {
	switch v.op {
	case Union:
		return v.a.Contains(e) || v.b.Contains(e)
	case Intersection:
		return v.a.Contains(e) && v.b.Contains(e)
	case Difference:
		return v.a.Contains(e) && !v.b.Contains(e)
	default:
		return v.a.Contains(e) != v.b.Contains(e)
	}
}

// Len counts the members of the view. It scans the operands.
func (v *View[E]) Len() int {
	switch v.op {
	case Union:
		return v.a.Len() + v.b.Len() - countIn(v.a, v.b)
	case Intersection:
		return countIn(v.a, v.b)
	case Difference:
		return v.a.Len() - countIn(v.a, v.b)
	default:
		shared := countIn(v.a, v.b)
		return v.a.Len() + v.b.Len() - 2*shared
	}
}

// countIn returns how many members of a are also in b.
func countIn[E comparable](a, b Set[E]) int {
	n := 0
	for e := range a.All() {
		if b.Contains(e) {
			n++
		}
	}
	return n
}

// All iterates the members of the view: first those drawn from a, then
// those drawn from b.
func (v *View[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for e := range v.a.All() {
			if v.Contains(e) && !yield(e) {
				return
			}
		}
		if v.op != Union && v.op != SymmetricDifference {
			return
		}
		for e := range v.b.All() {
			if !v.a.Contains(e) && !yield(e) {
				return
			}
		}
	}
}

// Add makes e a member of the view if possible and reports whether any
// backing set changed.
func (v *View[E]) Add(e E) bool {
	switch v.op {
	case Union:
		if v.Contains(e) {
			return false
		}
		return v.a.Add(e)
	case Intersection:
		addedA := v.a.Add(e)
		addedB := v.b.Add(e)
		return addedA || addedB
	case Difference:
		added := v.a.Add(e)
		removed := v.b.Remove(e)
		return added || removed
	default:
		inA, inB := v.a.Contains(e), v.b.Contains(e)
		switch {
		case inA && inB:
			return v.b.Remove(e)
		case !inA && !inB:
			return v.a.Add(e)
		}
		return false
	}
}

// Remove takes e out of the view and reports whether it was a member.
func (v *View[E]) Remove(e E) bool {
	switch v.op {
	case Union:
		removedA := v.a.Remove(e)
		removedB := v.b.Remove(e)
		return removedA || removedB
	case Intersection:
		if !v.Contains(e) {
			return false
		}
		v.a.Remove(e)
		v.b.Remove(e)
		return true
	case Difference:
		if !v.Contains(e) {
			return false
		}
		return v.a.Remove(e)
	default:
		switch inA, inB := v.a.Contains(e), v.b.Contains(e); {
		case inA && !inB:
			return v.a.Remove(e)
		case inB && !inA:
			return v.b.Remove(e)
		}
		return false
	}
}

// Clear empties the view by editing its operands.
func (v *View[E]) Clear() {
	switch v.op {
	case Union:
		v.a.Clear()
		v.b.Clear()
	case Intersection:
		removeAll(v.a, collect(v.a, v.b.Contains))
	case Difference:
		removeAll(v.a, collect(v.a, func(e E) bool { return !v.b.Contains(e) }))
	default:
		onlyA := collect(v.a, func(e E) bool { return !v.b.Contains(e) })
		onlyB := collect(v.b, func(e E) bool { return !v.a.Contains(e) })
		removeAll(v.a, onlyA)
		removeAll(v.b, onlyB)
	}
}

// collect snapshots the members of s matching keep, so s can be edited
// afterwards without disturbing iteration.
func collect[E comparable](s Set[E], keep func(E) bool) []E {
	var out []E
	for e := range s.All() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func removeAll[E comparable](s Set[E], elems []E) {
	for _, e := range elems {
		s.Remove(e)
	}
}

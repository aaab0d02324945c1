package setop

import (
	"slices"
	"testing"
)

func sorted(s Set[int]) []int {
	out := Slice(s)
	slices.Sort(out)
	return out
}

func TestViewQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   Op
		want []int
	}{
		{Union, []int{1, 2, 3, 4, 5, 6}},
		{Intersection, []int{3, 4}},
		{Difference, []int{1, 2}},
		{SymmetricDifference, []int{1, 2, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			t.Parallel()
			a := NewHashSet(1, 2, 3, 4)
			b := NewHashSet(3, 4, 5, 6)
			v := NewView[int](tt.op, a, b)

			if got := sorted(v); !slices.Equal(got, tt.want) {
				t.Errorf("members = %v, want %v", got, tt.want)
			}
			if got := v.Len(); got != len(tt.want) {
				t.Errorf("Len() = %d, want %d", got, len(tt.want))
			}
			for i := 0; i <= 7; i++ {
				if got, want := v.Contains(i), slices.Contains(tt.want, i); got != want {
					t.Errorf("Contains(%d) = %v, want %v", i, got, want)
				}
			}
			if got := sorted(Apply[int](tt.op, a, b)); !slices.Equal(got, tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewIsLazy(t *testing.T) {
	t.Parallel()
	a := NewHashSet(1)
	b := NewHashSet(2)
	v := NewView[int](Union, a, b)
	b.Add(3)
	if !v.Contains(3) || v.Len() != 3 {
		t.Errorf("view did not observe change to operand: %v", sorted(v))
	}
}

func TestViewAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      Op
		elem    int
		changed bool
		wantA   []int
		wantB   []int
	}{
		{"union new", Union, 9, true, []int{1, 2, 3, 9}, []int{2, 3, 4}},
		{"union existing in b", Union, 4, false, []int{1, 2, 3}, []int{2, 3, 4}},
		{"intersection", Intersection, 1, true, []int{1, 2, 3}, []int{1, 2, 3, 4}},
		{"difference shared", Difference, 2, true, []int{1, 2, 3}, []int{3, 4}},
		{"difference present", Difference, 1, false, []int{1, 2, 3}, []int{2, 3, 4}},
		{"symmetric shared", SymmetricDifference, 3, true, []int{1, 2, 3}, []int{2, 4}},
		{"symmetric new", SymmetricDifference, 7, true, []int{1, 2, 3, 7}, []int{2, 3, 4}},
		{"symmetric only b", SymmetricDifference, 4, false, []int{1, 2, 3}, []int{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := NewHashSet(1, 2, 3)
			b := NewHashSet(2, 3, 4)
			v := NewView[int](tt.op, a, b)
			if got := v.Add(tt.elem); got != tt.changed {
				t.Errorf("Add(%d) = %v, want %v", tt.elem, got, tt.changed)
			}
			if !v.Contains(tt.elem) {
				t.Errorf("Contains(%d) = false after Add", tt.elem)
			}
			if got := sorted(a); !slices.Equal(got, tt.wantA) {
				t.Errorf("a = %v, want %v", got, tt.wantA)
			}
			if got := sorted(b); !slices.Equal(got, tt.wantB) {
				t.Errorf("b = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestViewRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      Op
		elem    int
		changed bool
		wantA   []int
		wantB   []int
	}{
		{"union shared", Union, 2, true, []int{1, 3}, []int{3, 4}},
		{"intersection shared", Intersection, 3, true, []int{1, 2}, []int{2, 4}},
		{"intersection only a", Intersection, 1, false, []int{1, 2, 3}, []int{2, 3, 4}},
		{"difference member", Difference, 1, true, []int{2, 3}, []int{2, 3, 4}},
		{"difference shared", Difference, 2, false, []int{1, 2, 3}, []int{2, 3, 4}},
		{"symmetric only b", SymmetricDifference, 4, true, []int{1, 2, 3}, []int{2, 3}},
		{"symmetric shared", SymmetricDifference, 2, false, []int{1, 2, 3}, []int{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := NewHashSet(1, 2, 3)
			b := NewHashSet(2, 3, 4)
			v := NewView[int](tt.op, a, b)
			if got := v.Remove(tt.elem); got != tt.changed {
				t.Errorf("Remove(%d) = %v, want %v", tt.elem, got, tt.changed)
			}
			if v.Contains(tt.elem) {
				t.Errorf("Contains(%d) = true after Remove", tt.elem)
			}
			if got := sorted(a); !slices.Equal(got, tt.wantA) {
				t.Errorf("a = %v, want %v", got, tt.wantA)
			}
			if got := sorted(b); !slices.Equal(got, tt.wantB) {
				t.Errorf("b = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestViewClear(t *testing.T) {
	t.Parallel()

	for _, op := range []Op{Union, Intersection, Difference, SymmetricDifference} {
		t.Run(op.String(), func(t *testing.T) {
			t.Parallel()
			a := NewHashSet(1, 2, 3)
			b := NewHashSet(2, 3, 4)
			v := NewView[int](op, a, b)
			v.Clear()
			if n := v.Len(); n != 0 {
				t.Errorf("Len() = %d after Clear, members %v", n, sorted(v))
			}
		})
	}
}

func TestNestedViews(t *testing.T) {
	t.Parallel()
	a := NewHashSet(1, 2, 3)
	b := NewHashSet(3, 4)
	c := NewHashSet(1, 4, 5)
	// (a ∪ b) \ c
	v := NewView[int](Difference, NewView[int](Union, a, b), c)
	if got := sorted(v); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("members = %v, want [2 3]", got)
	}
}

func TestParseOp(t *testing.T) {
	t.Parallel()
	for _, op := range []Op{Union, Intersection, Difference, SymmetricDifference} {
		got, err := ParseOp(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOp(%q) = (%v, %v), want %v", op.String(), got, err, op)
		}
	}
	if _, err := ParseOp("xor"); err == nil {
		t.Error("ParseOp(xor) returned nil error")
	}
}

func TestHashSetZeroValue(t *testing.T) {
	t.Parallel()
	var s HashSet[string]
	if s.Contains("a") || s.Len() != 0 {
		t.Error("zero HashSet not empty")
	}
	if !s.Add("a") || s.Add("a") {
		t.Error("Add results wrong on zero HashSet")
	}
	if !s.Remove("a") || s.Remove("a") {
		t.Error("Remove results wrong")
	}
}

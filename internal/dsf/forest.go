// Package dsf provides a disjoint-set forest (union-find) that, in addition
// to union and path-compressing find, supports removing single elements.
//
// Every node carries the size of its current subtree, not only roots. Find
// keeps those sizes exact while it compresses paths, which is what lets
// Remove classify a node as leaf, root, or inner node in constant time.
//
// A Forest is not safe for concurrent use; Find mutates the forest.
package dsf

import "math/rand/v2"

// defaultSeed seeds the random source used to pick a new representative when
// a root is removed, unless the caller supplies one.
const defaultSeed = 0x5eed

// none marks an absent handle or child position.
const none = -1

type node[E comparable] struct {
	elem   E
	parent int
	size   int

	// children holds the handles of the direct children, in attachment
	// order. pos is this node's index in its parent's children.
	children []int
	pos      int
}

// Forest is a disjoint-set forest over elements of type E. Elements are
// stored in an arena and addressed by integer handles; the index maps each
// element to its handle using ordinary map-key equality.
type Forest[E comparable] struct {
	index  map[E]int
	nodes  []node[E]
	free   []int
	groups int
	rng    *rand.Rand
}

// Option configures a Forest.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed makes representative selection on root removal reproducible for
// the given seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand sets the random source used on root removal. A nil source is
// ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// New creates an empty Forest.
func New[E comparable](opts ...Option) *Forest[E] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(defaultSeed, defaultSeed))
	}
	return &Forest[E]{
		index: make(map[E]int),
		rng:   o.rng,
	}
}

// MakeSet adds e as a singleton group. It is a no-op if e is already
// present, or if e is a nil interface value.
func (f *Forest[E]) MakeSet(e E) {
	if any(e) == nil {
		return
	}
	if _, ok := f.index[e]; ok {
		return
	}
	h := f.alloc(e)
	f.index[e] = h
	f.groups++
}

// Contains reports whether e is in the forest.
func (f *Forest[E]) Contains(e E) bool {
	_, ok := f.index[e]
	return ok
}

// Len returns the number of elements in the forest.
func (f *Forest[E]) Len() int {
	return len(f.index)
}

// NumSets returns the number of disjoint groups.
func (f *Forest[E]) NumSets() int {
	return f.groups
}

// Clear removes every element. Options given to New stay in effect.
func (f *Forest[E]) Clear() {
	clear(f.index)
	clear(f.nodes)
	f.nodes = f.nodes[:0]
	f.free = f.free[:0]
	f.groups = 0
}

// Find returns the representative of e's group. The second result is false
// if e was never added.
//
// Every node on the path from e to the root is re-pointed directly at the
// root, and each node left behind has its size reduced by the subtree that
// moved out from under it.
func (f *Forest[E]) Find(e E) (E, bool) {
	h, ok := f.index[e]
	if !ok {
		var zero E
		return zero, false
	}
	return f.nodes[f.find(h)].elem, true
}

// Union merges the groups of e1 and e2 and reports whether a merge
// happened. Unknown elements and elements already in the same group leave
// the forest unchanged. The smaller group is attached under the larger; on
// a tie, e2's root goes under e1's root.
func (f *Forest[E]) Union(e1, e2 E) bool {
	h1, ok := f.index[e1]
	if !ok {
		return false
	}
	h2, ok := f.index[e2]
	if !ok {
		return false
	}
	r1, r2 := f.find(h1), f.find(h2)
	if r1 == r2 {
		return false
	}
	if f.nodes[r1].size < f.nodes[r2].size {
		r1, r2 = r2, r1
	}
	f.attach(r2, r1)
	f.nodes[r1].size += f.nodes[r2].size
	f.groups--
	return true
}

// Connected reports whether e1 and e2 are in the same group. It is false if
// either element is unknown.
func (f *Forest[E]) Connected(e1, e2 E) bool {
	h1, ok := f.index[e1]
	if !ok {
		return false
	}
	h2, ok := f.index[e2]
	if !ok {
		return false
	}
	return f.find(h1) == f.find(h2)
}

// SizeOf returns the number of elements in e's group, or 0 if e is unknown.
func (f *Forest[E]) SizeOf(e E) int {
	h, ok := f.index[e]
	if !ok {
		return 0
	}
	return f.nodes[f.find(h)].size
}

// Components returns the groups as a map from each representative to its
// members. Member order is unspecified.
func (f *Forest[E]) Components() map[E][]E {
	groups := make(map[E][]E, f.groups)
	for e, h := range f.index {
		root := f.nodes[f.find(h)].elem
		groups[root] = append(groups[root], e)
	}
	return groups
}

// find returns the root handle of h and compresses the path to it.
func (f *Forest[E]) find(h int) int {
	root := h
	for f.nodes[root].parent != root {
		root = f.nodes[root].parent
	}

	carried := 0
	cur := h
	for cur != root && f.nodes[cur].parent != root {
		old := f.nodes[cur].parent
		carried += f.nodes[cur].size
		f.detach(cur)
		f.attach(cur, root)
		f.nodes[old].size -= carried
		cur = old
	}
	return root
}

func (f *Forest[E]) alloc(e E) int {
	n := node[E]{elem: e, size: 1, pos: none}
	var h int
	if k := len(f.free); k > 0 {
		h = f.free[k-1]
		f.free = f.free[:k-1]
		n.children = f.nodes[h].children[:0]
		f.nodes[h] = n
	} else {
		h = len(f.nodes)
		f.nodes = append(f.nodes, n)
	}
	f.nodes[h].parent = h
	return h
}

func (f *Forest[E]) release(h int) {
	var zero E
	f.nodes[h].elem = zero
	f.nodes[h].parent = none
	f.nodes[h].size = 0
	f.nodes[h].children = f.nodes[h].children[:0]
	f.nodes[h].pos = none
	f.free = append(f.free, h)
}

// attach makes child a direct child of parent. child must be detached or
// a root.
func (f *Forest[E]) attach(child, parent int) {
	p := &f.nodes[parent]
	f.nodes[child].parent = parent
	f.nodes[child].pos = len(p.children)
	p.children = append(p.children, child)
}

// detach unlinks h from its parent's child list. h keeps a stale parent
// pointer until it is attached elsewhere or released.
func (f *Forest[E]) detach(h int) {
	parent := f.nodes[h].parent
	if parent == h {
		return
	}
	kids := f.nodes[parent].children
	i := f.nodes[h].pos
	last := len(kids) - 1
	if i != last {
		kids[i] = kids[last]
		f.nodes[kids[i]].pos = i
	}
	f.nodes[parent].children = kids[:last]
	f.nodes[h].pos = none
}

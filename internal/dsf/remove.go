package dsf

// Remove deletes e from the forest and reports whether it was present.
//
// Removing a root that has children promotes one of its direct children,
// chosen uniformly at random, to representative; the group survives with
// one member fewer. Removing the only member of a group removes the group.
// Removing any other node hands its children to its former parent.
func (f *Forest[E]) Remove(e E) bool {
	h, ok := f.index[e]
	if !ok {
		return false
	}
	parent := f.nodes[h].parent
	switch {
	case f.nodes[h].size == 1 && parent == h:
		f.groups--
	case f.nodes[h].size == 1:
		f.detach(h)
		f.decreaseSize(parent)
	case parent == h:
		f.removeRoot(h)
	default:
		f.removeInner(h, parent)
	}
	delete(f.index, e)
	f.release(h)
	return true
}

// removeRoot promotes a random direct child of root and reattaches the
// remaining children under it. Reattached children keep their subtree
// sizes.
func (f *Forest[E]) removeRoot(root int) {
	kids := f.nodes[root].children
	heir := kids[f.rng.IntN(len(kids))]
	f.detach(heir)
	f.nodes[heir].parent = heir
	f.nodes[heir].size = f.nodes[root].size - 1

	for len(f.nodes[root].children) > 0 {
		child := f.nodes[root].children[0]
		f.detach(child)
		f.attach(child, heir)
	}
}

// removeInner moves h's children to parent, which loses exactly one
// descendant, h itself.
func (f *Forest[E]) removeInner(h, parent int) {
	f.detach(h)
	f.decreaseSize(parent)
	for len(f.nodes[h].children) > 0 {
		child := f.nodes[h].children[0]
		f.detach(child)
		f.attach(child, parent)
	}
}

// decreaseSize decrements the size of start and every ancestor up to and
// including the root.
func (f *Forest[E]) decreaseSize(start int) {
	cur := start
	for {
		f.nodes[cur].size--
		next := f.nodes[cur].parent
		if next == cur {
			return
		}
		cur = next
	}
}

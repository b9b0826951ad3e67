package navigation

// Item is the registration hook for one navigable UI item. Call Mount when
// the item appears and Unmount when it goes away; the hook guarantees one
// registration per mount and never invokes the callback itself.
type Item struct {
	registry *Registry
	handle   Handle
}

// NewItem creates a hook that registers into r.
func NewItem(r *Registry) *Item {
	return &Item{registry: r}
}

// Mount registers cb as a leaf. Mounting an already mounted item is a no-op.
func (it *Item) Mount(cb Callback) Handle {
	if it.Mounted() {
		return it.handle
	}
	it.handle = it.registry.RegisterLeaf(cb)
	return it.handle
}

// Unmount deregisters the item. Unmounting twice is a no-op.
func (it *Item) Unmount() {
	if !it.Mounted() {
		return
	}
	h := it.handle
	it.handle = 0
	it.registry.Deregister(h)
}

// Update replaces the item's callback. The old registration is removed and
// cb is registered under a new handle, at the end of the sequence.
func (it *Item) Update(cb Callback) Handle {
	it.Unmount()
	return it.Mount(cb)
}

// Handle returns the live registration handle, or the zero Handle.
func (it *Item) Handle() Handle {
	return it.handle
}

// Mounted returns true while the item holds a registration.
func (it *Item) Mounted() bool {
	return !it.handle.IsZero()
}

// Group is the registration hook for a nested, navigable sub-list. It owns
// the child Registry and mounts it as a node of its parent.
type Group struct {
	parent *Registry
	child  *Registry
	handle Handle
}

// NewGroup creates a hook whose child Registry is built with opts.
func NewGroup(parent *Registry, opts ...Option) *Group {
	return &Group{
		parent: parent,
		child:  New(opts...),
	}
}

// Registry returns the child Registry that the group's items register into.
func (g *Group) Registry() *Registry {
	return g.child
}

// Mount registers the child Registry as a node of the parent.
func (g *Group) Mount() Handle {
	if g.Mounted() {
		return g.handle
	}
	g.handle = g.parent.RegisterNode(g.child)
	return g.handle
}

// Unmount deregisters the child Registry from the parent and resets it.
func (g *Group) Unmount() {
	if !g.Mounted() {
		return
	}
	h := g.handle
	g.handle = 0
	g.parent.Deregister(h)
	g.child.Reset()
}

// Handle returns the live registration handle, or the zero Handle.
func (g *Group) Handle() Handle {
	return g.handle
}

// Mounted returns true while the group holds a registration.
func (g *Group) Mounted() bool {
	return !g.handle.IsZero()
}

package navigation

import (
	"log/slog"
)

// inactive is the active position of a Registry with no current selection.
const inactive = -1

// Navigator is the navigation surface of a Registry. Key bindings and child
// registries hold parents through this interface only.
type Navigator interface {
	Next()
	Previous()
	Has(d Direction) bool
	Reset()
}

// entry pairs a slot with the handle it was registered under.
type entry struct {
	handle Handle
	slot   Slot
}

// Registry is an ordered, mutable sequence of slots with an active position.
type Registry struct {
	name    string
	slots   []entry
	active  int
	initial int // pending initial position, inactive once consumed
	parent  Navigator
	last    Handle
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithName sets the name reported in log lines.
func WithName(name string) Option {
	return func(r *Registry) {
		r.name = name
	}
}

// WithLogger sets the logger used for debug traces of navigation decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInitialIndex makes position i the starting point of the first move,
// without invoking it. The position is pending until the first Navigate
// consumes it: ActiveIndex reports it once the sequence is long enough to
// contain it, but Deregister does not treat it as focused. A Reset or any
// navigation before the position exists cancels it.
func WithInitialIndex(i int) Option {
	return func(r *Registry) {
		if i >= 0 {
			r.initial = i
		}
	}
}

// New creates an empty, inactive Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		active:  inactive,
		initial: inactive,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// Len returns the number of registered slots.
func (r *Registry) Len() int {
	return len(r.slots)
}

// ActiveIndex returns the active position, or -1 if inactive.
func (r *Registry) ActiveIndex() int {
	return r.position()
}

// IsActive returns true if the Registry has a current selection.
func (r *Registry) IsActive() bool {
	return r.position() != inactive
}

// position is the active index, falling back to a pending initial index
// that the sequence already contains.
func (r *Registry) position() int {
	if r.active == inactive && r.initial != inactive && r.initial < len(r.slots) {
		return r.initial
	}
	return r.active
}

// Parent returns the delegation link, or nil for a root Registry.
func (r *Registry) Parent() Navigator {
	return r.parent
}

// Index returns the current position of a live handle.
func (r *Registry) Index(h Handle) (int, bool) {
	if h.IsZero() {
		return 0, false
	}
	for i, e := range r.slots {
		if e.handle == h {
			return i, true
		}
	}
	return 0, false
}

// Slot returns the slot at position i.
func (r *Registry) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(r.slots) {
		return Slot{}, false
	}
	return r.slots[i].slot, true
}

// RegisterLeaf appends a leaf slot. See Register.
func (r *Registry) RegisterLeaf(cb Callback) Handle {
	return r.Register(Leaf(cb))
}

// RegisterNode appends a node slot. See Register.
func (r *Registry) RegisterNode(child *Registry) Handle {
	return r.Register(Node(child))
}

// Register appends s to the end of the sequence and returns its handle.
// A node slot records r as the child's parent. No callback is invoked.
//
// The zero Handle is returned, and nothing is registered, if s is the
// zero Slot, a node without a Registry, or a node that would make the tree
// cyclic.
func (r *Registry) Register(s Slot) Handle {
	if !s.valid() {
		return 0
	}
	if s.kind == SlotNode {
		if r.descendsFrom(s.node) {
			r.logger.Warn("rejected cyclic node registration", "registry", r.name, "child", s.node.name)
			return 0
		}
		s.node.parent = r
	}

	r.last++
	r.slots = append(r.slots, entry{handle: r.last, slot: s})

	r.logger.Debug("registered slot",
		"registry", r.name,
		"handle", uint64(r.last),
		"kind", s.kind.String(),
		"index", len(r.slots)-1)

	return r.last
}

// descendsFrom reports whether r is node itself or sits below it.
func (r *Registry) descendsFrom(node *Registry) bool {
	var cur Navigator = r
	for cur != nil {
		reg, ok := cur.(*Registry)
		if !ok {
			return false
		}
		if reg == node {
			return true
		}
		cur = reg.parent
	}
	return false
}

// Deregister removes the slot registered under h. Unknown or stale handles
// are ignored.
//
// Focus is kept coherent, in this order:
//  1. If the sequence is now empty and was active, r resets and asks its
//     parent to move: next if it can, otherwise previous.
//  2. If the active slot was removed, the nearest remaining slot is
//     focused and invoked, searching backward from the removal point
//     first and forward second. Removing the last slot while it is active
//     therefore lands on the new last slot, as a previous move would.
//     If nothing can take focus, r behaves as in 1.
//  3. Otherwise the same slot stays active; no callback runs. Removing a
//     slot before the active one shifts the active index down by one, so
//     the focused slot, and the handle that names it, keep focus. Clamping
//     and re-invoking would move focus to a different slot even though the
//     focused one is still registered.
//
// A pending initial index is not focus: removals never invoke anything
// while r has not navigated.
func (r *Registry) Deregister(h Handle) {
	idx, ok := r.Index(h)
	if !ok {
		return
	}

	removed := r.slots[idx].slot
	r.slots = append(r.slots[:idx], r.slots[idx+1:]...)
	if removed.kind == SlotNode && removed.node.parent == Navigator(r) {
		removed.node.parent = nil
	}

	r.logger.Debug("deregistered slot",
		"registry", r.name,
		"handle", uint64(h),
		"index", idx,
		"active", r.active)

	switch {
	case r.active == inactive:
		return
	case len(r.slots) == 0:
		r.abandon()
	case idx == r.active:
		r.refocus(idx)
	case idx < r.active:
		r.active--
	}
}

// refocus moves focus after the active slot at idx was removed.
func (r *Registry) refocus(idx int) {
	if i := r.scan(idx-1, Backward); i != inactive {
		r.land(i, Backward)
		return
	}
	if i := r.scan(idx, Forward); i != inactive {
		r.land(i, Forward)
		return
	}
	r.abandon()
}

// abandon resets r and hands navigation back to the parent.
func (r *Registry) abandon() {
	r.Reset()
	if r.parent == nil {
		return
	}
	r.logger.Debug("delegating to parent", "registry", r.name)
	switch {
	case r.parent.Has(Forward):
		r.parent.Next()
	case r.parent.Has(Backward):
		r.parent.Previous()
	}
}

// HasNext returns true if Next would invoke a callback.
func (r *Registry) HasNext() bool {
	return r.Has(Forward)
}

// HasPrevious returns true if Previous would invoke a callback.
func (r *Registry) HasPrevious() bool {
	return r.Has(Backward)
}

// Has returns true if navigating in direction d would invoke a callback,
// either inside the active node or at a later slot in that direction.
func (r *Registry) Has(d Direction) bool {
	if child := r.activeNode(); child != nil && child.Has(d) {
		return true
	}
	return r.scan(r.start(d), d) != inactive
}

// Next moves focus forward. See Navigate.
func (r *Registry) Next() {
	r.Navigate(Forward)
}

// Previous moves focus backward. See Navigate.
func (r *Registry) Previous() {
	r.Navigate(Backward)
}

// Navigate moves focus one step in direction d and invokes the slot it
// lands on. An active node that can still move absorbs the step. An active
// node exhausted in d is reset, and focus moves to the next slot in d that
// can take it, skipping empty nodes. A node landed on is entered from its
// first slot (Forward) or its last slot (Backward). When nothing can take
// focus no callback runs, but the exhausted node stays reset.
func (r *Registry) Navigate(d Direction) {
	r.active = r.position()
	r.initial = inactive

	child := r.activeNode()
	if child != nil && child.Has(d) {
		child.Navigate(d)
		return
	}
	if child != nil {
		child.Reset()
	}

	if i := r.scan(r.start(d), d); i != inactive {
		r.land(i, d)
	}
}

// Reset deactivates r and every nested Registry without invoking anything.
func (r *Registry) Reset() {
	r.active = inactive
	r.initial = inactive
	for _, e := range r.slots {
		if e.slot.kind == SlotNode {
			e.slot.node.Reset()
		}
	}
}

// land makes position i active and executes it.
func (r *Registry) land(i int, d Direction) {
	r.active = i
	s := r.slots[i].slot

	r.logger.Debug("navigation landed",
		"registry", r.name,
		"direction", d.String(),
		"index", i,
		"kind", s.kind.String())

	switch s.kind {
	case SlotLeaf:
		if s.callback != nil {
			s.callback()
		}
	case SlotNode:
		s.node.Reset()
		s.node.Navigate(d)
	}
}

// start is the first position a move in direction d examines.
func (r *Registry) start(d Direction) int {
	pos := r.position()
	if pos == inactive {
		return r.edge(d)
	}
	return pos + d.step()
}

// scan returns the first position from i onward in direction d whose slot
// can take focus, or -1.
func (r *Registry) scan(i int, d Direction) int {
	for ; i >= 0 && i < len(r.slots); i += d.step() {
		if r.slots[i].slot.enterable(d) {
			return i
		}
	}
	return inactive
}

// enterable reports whether landing on s moving in direction d invokes a
// callback. Nodes are entered after a reset, so they are judged from their
// natural start rather than their current position.
func (s Slot) enterable(d Direction) bool {
	switch s.kind {
	case SlotLeaf:
		return true
	case SlotNode:
		return s.node.scan(s.node.edge(d), d) != inactive
	default:
		return false
	}
}

// edge is the position a fresh move in direction d starts from.
func (r *Registry) edge(d Direction) int {
	if d == Backward {
		return len(r.slots) - 1
	}
	return 0
}

// activeNode returns the nested Registry under the active position, if any.
func (r *Registry) activeNode() *Registry {
	pos := r.position()
	if pos < 0 || pos >= len(r.slots) {
		return nil
	}
	s := r.slots[pos].slot
	if s.kind != SlotNode {
		return nil
	}
	return s.node
}

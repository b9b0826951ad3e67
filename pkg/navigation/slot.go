package navigation

import (
	"fmt"
	"strings"
)

// Callback is the action a leaf performs when navigation lands on it.
type Callback func()

// Handle identifies a registration for its whole lifetime.
// Handles are never reused within a Registry; the zero Handle is never issued.
type Handle uint64

// IsZero returns true if the Handle was never issued.
func (h Handle) IsZero() bool {
	return h == 0
}

// SlotKind discriminates the two kinds of slot.
type SlotKind int

const (
	// SlotLeaf is a slot holding a Callback
	SlotLeaf SlotKind = iota + 1
	// SlotNode is a slot holding a nested Registry
	SlotNode
)

// String returns the string representation of the SlotKind
func (k SlotKind) String() string {
	switch k {
	case SlotLeaf:
		return "leaf"
	case SlotNode:
		return "node"
	default:
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
}

// Slot is a single entry in a Registry: either a leaf or a node.
type Slot struct {
	kind     SlotKind
	callback Callback
	node     *Registry
}

// Leaf creates a leaf slot.
func Leaf(cb Callback) Slot {
	return Slot{kind: SlotLeaf, callback: cb}
}

// Node creates a node slot wrapping a nested Registry.
func Node(r *Registry) Slot {
	return Slot{kind: SlotNode, node: r}
}

// Kind returns the slot's discriminant. The zero Slot has kind 0.
func (s Slot) Kind() SlotKind {
	return s.kind
}

// Callback returns the leaf callback, or nil for a node.
func (s Slot) Callback() Callback {
	return s.callback
}

// Registry returns the nested Registry, or nil for a leaf.
func (s Slot) Registry() *Registry {
	return s.node
}

func (s Slot) valid() bool {
	switch s.kind {
	case SlotLeaf:
		return true
	case SlotNode:
		return s.node != nil
	default:
		return false
	}
}

// Direction is the way navigation moves through a Registry.
type Direction int

const (
	// Forward moves towards later slots ("next")
	Forward Direction = iota
	// Backward moves towards earlier slots ("previous")
	Backward
)

// String returns the string representation of the Direction
func (d Direction) String() string {
	if d == Backward {
		return "previous"
	}
	return "next"
}

// step is the index delta for one move in this direction.
func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// ParseDirection parses "next"/"forward" and "previous"/"prev"/"backward".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "forward":
		return Forward, nil
	case "previous", "prev", "backward":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("unknown direction: %q", s)
	}
}

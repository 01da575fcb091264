package parmap

// Node is one element of a Map: the serializable recipe that rebuilds a
// nested configuration value from a flat slot vector. Which fields are
// meaningful depends on Kind; constructors below keep the combinations
// consistent.
//
// The same slot index may legally appear in several nodes, within one Map or
// across sibling Maps sharing a Registry. That repetition is exactly how
// tied parameters are represented.
type Node struct {
	Kind NodeKind

	// Value is the opaque constant payload for KindConstant.
	Value any

	// Slot is the registry index for KindSlot.
	Slot int

	// Items are the ordered children for KindSequence.
	Items []*Node

	// Op selects the constructor for KindApply.
	Op Op

	// Args are the ordered constructor arguments for KindApply.
	Args []*Node

	// Keys name the Args for OpDict, in the same order.
	Keys []string

	// Dim and Coords describe the labelled axis for OpArray.
	Dim    string
	Coords []string
}

// Constant creates a fixed leaf returned verbatim by the reader.
func Constant(v any) *Node {
	return &Node{Kind: KindConstant, Value: v}
}

// SlotRef creates a placeholder for registry slot i.
func SlotRef(i int) *Node {
	return &Node{Kind: KindSlot, Slot: i}
}

// Sequence creates an ordered collection node.
func Sequence(items []*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

// Dict creates a deferred dictionary construction over keyed children.
func Dict(keys []string, args []*Node) *Node {
	return &Node{Kind: KindApply, Op: OpDict, Keys: keys, Args: args}
}

// Array creates a deferred labelled-array construction along a named axis.
func Array(dim string, coords []string, args []*Node) *Node {
	return &Node{Kind: KindApply, Op: OpArray, Dim: dim, Coords: coords, Args: args}
}

// Complex creates a deferred complex-number construction from real and
// imaginary children.
func Complex(real, imag *Node) *Node {
	return &Node{Kind: KindApply, Op: OpComplex, Args: []*Node{real, imag}}
}

// MaxSlot returns the largest slot index referenced anywhere in the tree, or
// -1 when the Map references no slots. Callers use it to check a values
// vector is long enough before a hot-path read loop.
func (n *Node) MaxSlot() int {
	if n == nil {
		return -1
	}

	maxSlot := -1
	if n.Kind == KindSlot {
		maxSlot = n.Slot
	}

	for _, child := range n.Items {
		if s := child.MaxSlot(); s > maxSlot {
			maxSlot = s
		}
	}

	for _, child := range n.Args {
		if s := child.MaxSlot(); s > maxSlot {
			maxSlot = s
		}
	}

	return maxSlot
}

package parmap

import (
	"github.com/PeBelle/holopy/internal/common"
)

// NodeKind discriminates the variants of a Map node.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindConstant
	KindSlot
	KindSequence
	KindApply
)

// String returns the serialized name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindSlot:
		return "slot"
	case KindSequence:
		return "sequence"
	case KindApply:
		return "apply"
	default:
		return common.UnknownStr
	}
}

// ParseNodeKind returns the kind named by s, or KindUnknown.
func ParseNodeKind(s string) NodeKind {
	switch s {
	case "constant":
		return KindConstant
	case "slot":
		return KindSlot
	case "sequence":
		return KindSequence
	case "apply":
		return KindApply
	default:
		return KindUnknown
	}
}

// Op selects the deferred constructor of an apply node. The set is closed:
// recipes stay serializable because they reference constructors by tag, not
// by code.
type Op int

const (
	OpUnknown Op = iota
	OpDict
	OpArray
	OpComplex
)

// String returns the serialized name of the op.
func (o Op) String() string {
	switch o {
	case OpDict:
		return "dict"
	case OpArray:
		return "array"
	case OpComplex:
		return "complex"
	default:
		return common.UnknownStr
	}
}

// ParseOp returns the op named by s, or OpUnknown.
func ParseOp(s string) Op {
	switch s {
	case "dict":
		return OpDict
	case "array":
		return OpArray
	case "complex":
		return OpComplex
	default:
		return OpUnknown
	}
}

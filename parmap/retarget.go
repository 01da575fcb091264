package parmap

// Retarget rewrites every slot reference in the Map through the renumbering
// produced by Registry.Merge, leaving constants and structure untouched. The
// input tree is not mutated; a new tree is returned so concurrent readers of
// the old one stay consistent until the owner swaps it out.
//
// An index absent from the renumbering keeps its value, but renumberings
// from Merge always cover every live index.
func Retarget(n *Node, ren Renumbering) *Node {
	if n == nil {
		return nil
	}

	out := *n

	if n.Kind == KindSlot {
		if mapped, ok := ren[n.Slot]; ok {
			out.Slot = mapped
		}

		return &out
	}

	if n.Items != nil {
		out.Items = retargetAll(n.Items, ren)
	}

	if n.Args != nil {
		out.Args = retargetAll(n.Args, ren)
	}

	return &out
}

func retargetAll(nodes []*Node, ren Renumbering) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = Retarget(n, ren)
	}

	return out
}

package parmap

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/PeBelle/holopy/internal/common"
	"github.com/PeBelle/holopy/prior"
)

// Registry assigns a stable integer slot to each distinct free prior and
// keeps a parallel list of unique human-readable names. Deduplication is by
// identity: a prior already present is never appended again.
type Registry struct {
	slots []prior.Prior
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the current slot count.
func (r *Registry) Len() int { return len(r.slots) }

// Names returns a copy of the slot names in slot order.
func (r *Registry) Names() []string {
	return append([]string{}, r.names...)
}

// Slots returns a copy of the priors in slot order.
func (r *Registry) Slots() []prior.Prior {
	return append([]prior.Prior{}, r.slots...)
}

// At returns the prior occupying slot i.
func (r *Registry) At(i int) prior.Prior { return r.slots[i] }

// NameAt returns the name of slot i.
func (r *Registry) NameAt(i int) string { return r.names[i] }

// Register returns the slot index for p, appending a new slot when p has not
// been seen before. On an identity hit the existing index is returned and
// the stored name may be simplified: a group prefix (everything up to the
// first ':') is dropped once the bare name no longer collides, since a prior
// shared across groups belongs to no single one of them.
//
// For new slots the name is p's own declared name when set, otherwise
// suggested. A colliding candidate gets "_0" appended; while it still
// collides its trailing numeric suffix is incremented.
func (r *Registry) Register(p prior.Prior, suggested string) int {
	for i, existing := range r.slots {
		if existing == p {
			r.simplifyName(i)
			return i
		}
	}

	name := suggested
	if own := p.Name(); own != "" {
		name = own
	}

	r.slots = append(r.slots, p)
	r.names = append(r.names, r.uniqueName(name))

	return len(r.slots) - 1
}

// Restore rebuilds a registry from previously saved priors and names, in
// slot order. Names must already be unique.
func Restore(slots []prior.Prior, names []string) (*Registry, error) {
	if len(slots) != len(names) {
		return nil, fmt.Errorf("registry needs one name per slot, got %d slots and %d names", len(slots), len(names))
	}

	for i, name := range names {
		if slices.Index(names, name) != i {
			return nil, fmt.Errorf("registry names must be unique, %q repeats", name)
		}
	}

	return &Registry{
		slots: append([]prior.Prior{}, slots...),
		names: append([]string{}, names...),
	}, nil
}

// IndexOf returns the slot occupied by p, matching by identity.
func (r *Registry) IndexOf(p prior.Prior) (int, bool) {
	for i, existing := range r.slots {
		if existing == p {
			return i, true
		}
	}

	return 0, false
}

// IndexOfName returns the slot carrying the given name.
func (r *Registry) IndexOfName(name string) (int, bool) {
	i := slices.Index(r.names, name)
	if i < 0 {
		return 0, false
	}

	return i, true
}

// Renumbering maps every pre-merge slot index to its post-merge index.
type Renumbering map[int]int

// Merge ties the given slots into one. All indexed priors must describe
// equal distributions up to renaming; otherwise a *TieError is returned and
// nothing is mutated. The lowest index survives, optionally renamed to
// newName (empty keeps the current name), the rest are removed, and the
// returned renumbering covers every original index: merged indices map to
// the survivor, lower untouched indices are unchanged, higher ones shift
// down by the number of removals below them.
func (r *Registry) Merge(indices []int, newName string) (Renumbering, error) {
	if common.IsEmpty(indices) {
		return nil, ErrEmptyTie
	}

	sorted := append([]int{}, indices...)
	sort.Ints(sorted)
	sorted = slices.Compact(sorted)

	for _, i := range sorted {
		if i < 0 || i >= len(r.slots) {
			return nil, &OutOfRangeError{Slot: i, Len: len(r.slots)}
		}
	}

	survivor := sorted[0]
	for _, i := range sorted[1:] {
		if !r.slots[survivor].EqualIgnoringName(r.slots[i]) {
			return nil, &TieError{First: r.names[survivor], Second: r.names[i]}
		}
	}

	ren := make(Renumbering, len(r.slots))
	for old := range r.slots {
		switch {
		case slices.Contains(sorted, old):
			ren[old] = survivor
		case old < survivor:
			ren[old] = old
		default:
			removedBelow := countLess(sorted, old) - 1
			ren[old] = old - removedBelow
		}
	}

	for k := len(sorted) - 1; k >= 1; k-- {
		i := sorted[k]
		r.slots = slices.Delete(r.slots, i, i+1)
		r.names = slices.Delete(r.names, i, i+1)
	}

	if newName != "" {
		r.names[survivor] = newName
	}

	return ren, nil
}

func (r *Registry) simplifyName(i int) {
	_, bare, found := strings.Cut(r.names[i], ":")
	if found && !slices.Contains(r.names, bare) {
		r.names[i] = bare
	}
}

func (r *Registry) uniqueName(name string) string {
	if !slices.Contains(r.names, name) {
		return name
	}

	name += "_0"
	for slices.Contains(r.names, name) {
		cut := strings.LastIndex(name, "_")

		n, err := strconv.Atoi(name[cut+1:])
		if err != nil {
			name += "_0"
			continue
		}

		name = name[:cut+1] + strconv.Itoa(n+1)
	}

	return name
}

// countLess returns how many elements of sorted are strictly below v.
func countLess(sorted []int, v int) int {
	count := 0
	for _, s := range sorted {
		if s < v {
			count++
		}
	}

	return count
}

// Package merkle implements the algebraic Merkle commitment over a sequence
// of field-valued leaves: the execution trace of a MiMC permutation. Every
// leaf, internal node, and path entry is encoded as a canonical decimal
// field.Value string, never hex, so the same parser validates every layer
// of the tree. The empty-sibling token is the empty string, which always
// parses as the field element 0.
package merkle

import (
	"errors"
	"fmt"

	"github.com/zkmimc/proofengine/pkg/field"
	"github.com/zkmimc/proofengine/pkg/mimc"
)

// EmptySibling is the distinguished token used to pad odd-length layers.
// It parses as field.Zero.
const EmptySibling = ""

var (
	// ErrEmptyTree is returned when building a tree from zero leaves.
	ErrEmptyTree = errors.New("merkle: cannot build tree from empty leaves")
	// ErrIndexOutOfRange is returned for a leaf/path lookup outside the tree.
	ErrIndexOutOfRange = errors.New("merkle: index out of range")
)

// Combiner folds a pair of sibling nodes into their parent. The default,
// Combine, is algebraic (MiMC-keyed); a production rework could substitute
// a collision-resistant sponge without touching Tree's construction logic.
type Combiner func(a, b field.Value) field.Value

// Combine is the default node combiner:
//
//	h(a, b) = mimc_hash((a + 2*b) mod p, key = 0)
//
// The factor of 2 on b breaks commutativity, so h(a,b) != h(b,a) whenever
// a != b; this is what makes path verification order-sensitive.
func Combine(a, b field.Value) field.Value {
	two := field.FromUint64(2)
	return mimc.Hash(a.Add(two.Mul(b)), field.Zero)
}

// ParseNode parses a node/leaf encoding into a field.Value. The empty string
// is accepted as the empty-sibling token and parses as field.Zero; every
// other input must be a canonical decimal literal.
func ParseNode(s string) (field.Value, error) {
	if s == EmptySibling {
		return field.Zero, nil
	}
	return field.Parse(s)
}

// Tree is a binary Merkle tree built bottom-up over an ordered leaf
// sequence. Layer 0 is the leaves; each subsequent layer pairs adjacent
// nodes left to right, padding a missing right sibling with EmptySibling on
// odd-length layers. It is immutable once built.
type Tree struct {
	levels  [][]string // levels[0] = leaves, in canonical decimal
	combine Combiner
}

// Build constructs a Tree over leaves using the default algebraic combiner.
func Build(leaves []field.Value) (*Tree, error) {
	return BuildWithCombiner(leaves, Combine)
}

// BuildWithCombiner constructs a Tree using a caller-supplied node combiner.
func BuildWithCombiner(leaves []field.Value, combine Combiner) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}

	level0 := make([]string, len(leaves))
	for i, leaf := range leaves {
		level0[i] = leaf.String()
	}

	t := &Tree{levels: [][]string{level0}, combine: combine}

	current := level0
	for len(current) > 1 {
		next := make([]string, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			var right string
			if i+1 < len(current) {
				right = current[i+1]
			} else {
				right = EmptySibling
			}
			a, err := ParseNode(current[i])
			if err != nil {
				return nil, err
			}
			b, err := ParseNode(right)
			if err != nil {
				return nil, err
			}
			next = append(next, combine(a, b).String())
		}
		t.levels = append(t.levels, next)
		current = next
	}

	return t, nil
}

// Root returns the canonical decimal encoding of the tree's root node.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// LeafCount returns the number of leaves the tree was built over.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// GetPath walks up from leaf i, returning the ordered sequence of sibling
// nodes encountered at each layer below the root (EmptySibling where the
// layer is odd-length and i has no real sibling).
func (t *Tree) GetPath(i int) ([]string, error) {
	if i < 0 || i >= t.LeafCount() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, t.LeafCount())
	}

	path := make([]string, 0, len(t.levels)-1)
	idx := i
	for layer := 0; layer < len(t.levels)-1; layer++ {
		nodes := t.levels[layer]
		siblingIdx := idx ^ 1
		if siblingIdx < len(nodes) {
			path = append(path, nodes[siblingIdx])
		} else {
			path = append(path, EmptySibling)
		}
		idx /= 2
	}
	return path, nil
}

// VerifyPath reconstructs the root from a leaf value and its authentication
// path using the default combiner, returning whether it matches root.
func VerifyPath(root string, index int, value field.Value, path []string) (bool, error) {
	return VerifyPathWithCombiner(root, index, value, path, Combine)
}

// VerifyPathWithCombiner is VerifyPath parameterized over the node combiner,
// so a verifier built against a non-default combiner can still reuse this
// folding logic.
func VerifyPathWithCombiner(root string, index int, value field.Value, path []string, combine Combiner) (bool, error) {
	current := value
	idx := index
	for _, entry := range path {
		sibling, err := ParseNode(entry)
		if err != nil {
			return false, fmt.Errorf("merkle: path entry %q: %w", entry, err)
		}
		if idx%2 == 0 {
			current = combine(current, sibling)
		} else {
			current = combine(sibling, current)
		}
		idx /= 2
	}
	return current.String() == root, nil
}

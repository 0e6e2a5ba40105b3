package trie

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gnolang/entitygen/entity"
)

/*
Arena-based Entity Trie

The trie is stored as a contiguous slice of nodes that reference each other
by index instead of by pointer:

 1. Shape:
    - A node is either a branch (an ordered edge list) or a leaf holding one
    resolved codepoint.
    - An edge key is a single character or the terminal marker, which means
    "no further characters, this path is a complete match".

 2. Ordering:
    - Edges keep the order in which their first entity was met while
    partitioning. The generated branches follow this order, so it is part
    of the output and never derived from a map.

 3. Construction:
    - Build partitions the entity list by the first character of each
    remaining suffix. A partition with a single entity becomes a leaf at
    once, even if characters remain. Larger partitions recurse on the
    suffix advanced by one character.
*/

// ErrEmptyTable is returned when Build receives no entities.
var ErrEmptyTable = errors.New("entity table is empty")

// DuplicateError reports two entities whose names collide fully.
type DuplicateError struct {
	Name   string
	First  uint32
	Second uint32
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate entity name %q (codepoints %d and %d)", e.Name, e.First, e.Second)
}

// NodeIndex represents the index of a trie node.
type NodeIndex int

// Root is the index of the root node.
const Root NodeIndex = 0

// Key discriminates the children of a branch node.
type Key struct {
	Char     rune
	Terminal bool
}

// TerminalKey marks a complete match.
var TerminalKey = Key{Terminal: true}

// CharKey returns the key consuming c.
func CharKey(c rune) Key { return Key{Char: c} }

func (k Key) String() string {
	if k.Terminal {
		return "*"
	}
	return string(k.Char)
}

// Edge links a branch node to one of its children.
type Edge struct {
	Key   Key
	Child NodeIndex
}

// arenaNode is the internal representation of a trie node stored in the arena.
type arenaNode struct {
	// children is nil for leaves.
	children []Edge
	leaf     bool
	// codepoint and name are only set on leaves.
	codepoint uint32
	name      string
}

// Trie is an immutable prefix tree over entity names.
type Trie struct {
	nodes []arenaNode
}

// suffix is an entity whose name is consumed up to offset.
type suffix struct {
	name      []rune
	offset    int
	codepoint uint32
}

func (s suffix) key() Key {
	if s.offset >= len(s.name) {
		return TerminalKey
	}
	return CharKey(s.name[s.offset])
}

// partition is one group of suffixes sharing a leading key.
type partition struct {
	key     Key
	members []suffix
}

// Build constructs the trie for entities. Entity order decides edge order.
func Build(entities []entity.Entity) (*Trie, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyTable
	}

	suffixes := make([]suffix, len(entities))
	for i, e := range entities {
		suffixes[i] = suffix{name: []rune(e.Name), codepoint: e.Codepoint}
	}

	t := &Trie{
		nodes: make([]arenaNode, 0, 2*len(entities)),
	}
	t.nodes = append(t.nodes, arenaNode{})

	if err := t.fill(Root, suffixes); err != nil {
		return nil, err
	}
	return t, nil
}

// fill partitions suffixes below the branch node idx.
func (t *Trie) fill(idx NodeIndex, suffixes []suffix) error {
	for _, p := range partitionSuffixes(suffixes) {
		if len(p.members) == 1 {
			m := p.members[0]
			child := t.newNode(arenaNode{leaf: true, codepoint: m.codepoint, name: string(m.name)})
			t.nodes[idx].children = append(t.nodes[idx].children, Edge{Key: p.key, Child: child})
			continue
		}

		if p.key.Terminal {
			// more than one name ends here, so the names are identical
			return &DuplicateError{
				Name:   string(p.members[0].name),
				First:  p.members[0].codepoint,
				Second: p.members[1].codepoint,
			}
		}

		child := t.newNode(arenaNode{})
		t.nodes[idx].children = append(t.nodes[idx].children, Edge{Key: p.key, Child: child})

		advanced := make([]suffix, len(p.members))
		for i, m := range p.members {
			m.offset++
			advanced[i] = m
		}
		if err := t.fill(child, advanced); err != nil {
			return err
		}
	}
	return nil
}

// partitionSuffixes groups suffixes by leading key, in first-seen order.
func partitionSuffixes(suffixes []suffix) []partition {
	var parts []partition
	position := make(map[Key]int)

	for _, s := range suffixes {
		k := s.key()
		i, ok := position[k]
		if !ok {
			i = len(parts)
			position[k] = i
			parts = append(parts, partition{key: k})
		}
		parts[i].members = append(parts[i].members, s)
	}
	return parts
}

// newNode adds a new node to the arena and returns its index.
func (t *Trie) newNode(n arenaNode) NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return idx
}

// Len returns the number of nodes, leaves included.
func (t *Trie) Len() int { return len(t.nodes) }

// IsLeaf reports whether idx is a leaf.
func (t *Trie) IsLeaf(idx NodeIndex) bool { return t.nodes[idx].leaf }

// Leaf returns the codepoint and full entity name stored at a leaf.
func (t *Trie) Leaf(idx NodeIndex) (codepoint uint32, name string) {
	n := t.nodes[idx]
	return n.codepoint, n.name
}

// Children returns the edges of a branch node in insertion order.
// The returned slice must not be modified.
func (t *Trie) Children(idx NodeIndex) []Edge { return t.nodes[idx].children }

// Terminal returns the terminal child of idx, if any.
func (t *Trie) Terminal(idx NodeIndex) (NodeIndex, bool) {
	for _, e := range t.nodes[idx].children {
		if e.Key.Terminal {
			return e.Child, true
		}
	}
	return 0, false
}

// Equal reports whether two tries are isomorphic: same keys and leaves at
// every node, regardless of edge order.
func (t *Trie) Equal(other *Trie) bool {
	if len(t.nodes) != len(other.nodes) {
		return false
	}

	return t.equalNodes(Root, other, Root)
}

// equalNodes recursively checks whether two nodes (and their subtrees) are identical.
func (t *Trie) equalNodes(aIdx NodeIndex, other *Trie, bIdx NodeIndex) bool {
	nodeA := t.nodes[aIdx]
	nodeB := other.nodes[bIdx]

	// Quick checks for obvious differences
	if nodeA.leaf != nodeB.leaf || len(nodeA.children) != len(nodeB.children) {
		return false
	}
	if nodeA.leaf {
		return nodeA.codepoint == nodeB.codepoint
	}

	byKey := make(map[Key]NodeIndex, len(nodeB.children))
	for _, e := range nodeB.children {
		byKey[e.Key] = e.Child
	}

	for _, e := range nodeA.children {
		childB, exists := byKey[e.Key]
		if !exists || !t.equalNodes(e.Child, other, childB) {
			return false
		}
	}

	return true
}

// String returns the trie in insertion order, e.g. "g(te(*q)g)".
// A leaf below a character key is printed as the key alone.
func (t *Trie) String() string {
	var sb strings.Builder
	t.writeNode(&sb, Root)
	return sb.String()
}

func (t *Trie) writeNode(sb *strings.Builder, idx NodeIndex) {
	for _, e := range t.nodes[idx].children {
		sb.WriteString(e.Key.String())
		if t.nodes[e.Child].leaf {
			continue
		}
		sb.WriteString("(")
		t.writeNode(sb, e.Child)
		sb.WriteString(")")
	}
}

// SortedString is like String but orders keys, so isomorphic tries print
// the same text.
func (t *Trie) SortedString() string {
	var sb strings.Builder
	t.writeSorted(&sb, Root)
	return sb.String()
}

func (t *Trie) writeSorted(sb *strings.Builder, idx NodeIndex) {
	edges := append([]Edge(nil), t.nodes[idx].children...)
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i].Key, edges[j].Key
		if a.Terminal != b.Terminal {
			return a.Terminal
		}
		return a.Char < b.Char
	})

	for _, e := range edges {
		sb.WriteString(e.Key.String())
		if t.nodes[e.Child].leaf {
			continue
		}
		sb.WriteString("(")
		t.writeSorted(sb, e.Child)
		sb.WriteString(")")
	}
}

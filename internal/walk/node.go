package walk

import (
	"errors"
	"fmt"
	"path/filepath"
)

// MaxPath bounds the length of a directory path, NUL terminator included.
const MaxPath = 4096

// ErrPathTooLong is returned when a child path would not fit in MaxPath.
var ErrPathTooLong = errors.New("path too long")

// Node is a directory waiting to be listed.
type Node struct {
	Path  string
	Depth int
	Last  bool // last among the entries of its parent
}

// Child returns the node for the subdirectory name of n.
func (n Node) Child(name string, last bool) (Node, error) {
	path := filepath.Join(n.Path, name)
	if len(path) >= MaxPath {
		return Node{}, fmt.Errorf("%s/%s: %w", n.Path, name, ErrPathTooLong)
	}
	return Node{Path: path, Depth: n.Depth + 1, Last: last}, nil
}

// LevelQueue holds the nodes of one depth in discovery order.
type LevelQueue struct {
	nodes []Node
}

// Enqueue appends n.
func (q *LevelQueue) Enqueue(n Node) {
	q.nodes = append(q.nodes, n)
}

// DrainAll removes and returns every node, leaving q empty.
func (q *LevelQueue) DrainAll() []Node {
	nodes := q.nodes
	q.nodes = nil
	return nodes
}

// IsEmpty reports whether q holds no nodes.
func (q *LevelQueue) IsEmpty() bool {
	return len(q.nodes) == 0
}

// Len is the number of queued nodes.
func (q *LevelQueue) Len() int {
	return len(q.nodes)
}

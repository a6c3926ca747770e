package avl

import (
	"errors"
	"sync"

	"gopkg.in/typ.v4"
)

var (
	ErrorTreeNodeDuplicate = errors.New("tree node is duplicated")
	ErrorTreeNodeNotFound  = errors.New("tree node is not found")
)

// Tree is a binary search tree (BST) for any key type ordered by a comparator,
// implemented as an AVL tree (Adelson-Velsky and Landis tree), a type of self-balancing BST.
// This guarantees O(log t) operations on insertion, searching, and deletion.
// Most left and most right nodes are cached so both ends are available in O(1).
// NOTE: Not thread-safe.
type Tree[K, V any] struct {
	compare   func(a, b K) int
	pool      *sync.Pool
	root      *Node[K, V]
	mostLeft  *Node[K, V]
	mostRight *Node[K, V]
	size      int
}

////////////////////////////////////////////////////////////////

// NewOrderedTree creates a new AVL tree using a default comparator function
// for any ordered type (ints, uints, floats, strings).
func NewOrderedTree[K typ.Ordered, V any]() Tree[K, V] {
	return NewTree[K, V](typ.Compare[K])
}

// NewTree creates a new AVL tree using a comparator function that is
// expected to return 0 if a == b, -1 if a < b, and +1 if a > b.
func NewTree[K, V any](compare func(a, b K) int) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
	}
}

// NewTreePooled creates a new AVL tree using a comparator function that is
// expected to return 0 if a == b, -1 if a < b, and +1 if a > b.
// Pooled tree uses given pool for nodes creating/releasing.
func NewTreePooled[K, V any](compare func(a, b K) int, pool *sync.Pool) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
		pool:    pool,
	}
}

////////////////////////////////////////////////////////////////

// Size returns the amount of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// Height returns the height of the tree, zero for an empty tree.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

// Contains checks if node with given key exists in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.Find(key) != nil
}

// Find finds the node with given key in the tree by iterating the binary search tree.
func (t *Tree[K, V]) Find(key K) *Node[K, V] {
	if t.root == nil {
		return nil
	}
	return t.root.find(key, t.compare)
}

// Add inserts a node with given key and value to the tree.
// Duplicate keys are not allowed so error will be returned on duplicate.
func (t *Tree[K, V]) Add(key K, value V) (*Node[K, V], error) {
	node := t.newNode(key, value)
	if t.root == nil {
		t.root = node
	} else {
		newRoot, err := t.root.add(node, t.compare)
		if err != nil {
			t.releaseNode(node)
			return nil, err
		}
		t.root = newRoot
	}
	t.size++
	if t.mostLeft == nil || t.compare(key, t.mostLeft.key) < 0 {
		t.mostLeft = node
	}
	if t.mostRight == nil || t.compare(key, t.mostRight.key) > 0 {
		t.mostRight = node
	}
	return node, nil
}

// Remove removes a node with given key from the tree and returns its value.
func (t *Tree[K, V]) Remove(key K) (value V, err error) {
	if t.root == nil {
		err = ErrorTreeNodeNotFound
		return
	}
	node, newRoot, err := t.root.remove(key, t.compare)
	if err != nil {
		return
	}
	t.root = newRoot
	t.size--
	if t.mostLeft == node {
		t.mostLeft = nil
		if t.root != nil {
			t.mostLeft = t.root.MostLeft()
		}
	}
	if t.mostRight == node {
		t.mostRight = nil
		if t.root != nil {
			t.mostRight = t.root.MostRight()
		}
	}
	value = node.value
	t.releaseNode(node)
	return
}

// MostLeft returns most left node.
func (t *Tree[K, V]) MostLeft() *Node[K, V] {
	return t.mostLeft
}

// MostRight returns most right node.
func (t *Tree[K, V]) MostRight() *Node[K, V] {
	return t.mostRight
}

// Clear will reset this tree to an empty tree releasing all nodes.
func (t *Tree[K, V]) Clear() {
	if t.root != nil {
		t.root.iteratePostOrder(t.releaseNode)
	}
	t.root = nil
	t.mostLeft = nil
	t.mostRight = nil
	t.size = 0
}

// IterateInOrder visits all values in key order (most left first) until f returns true.
// The tree must not be modified by f.
func (t *Tree[K, V]) IterateInOrder(f func(key K, value V) bool) {
	if t.root == nil {
		return
	}
	t.root.iterateInOrder(func(n *Node[K, V]) bool {
		return f(n.key, n.value)
	})
}

// IterateReverseOrder visits all values in reverse key order (most right first) until f returns true.
// The tree must not be modified by f.
func (t *Tree[K, V]) IterateReverseOrder(f func(key K, value V) bool) {
	if t.root == nil {
		return
	}
	t.root.iterateReverseOrder(func(n *Node[K, V]) bool {
		return f(n.key, n.value)
	})
}

////////////////////////////////////////////////////////////////

func (t *Tree[K, V]) newNode(key K, value V) *Node[K, V] {
	var node *Node[K, V]
	if t.pool != nil {
		node = t.pool.Get().(*Node[K, V])
	} else {
		node = new(Node[K, V])
	}
	*node = Node[K, V]{key: key, value: value, height: 1}
	return node
}

func (t *Tree[K, V]) releaseNode(node *Node[K, V]) {
	if t.pool == nil {
		return
	}
	*node = Node[K, V]{}
	t.pool.Put(node)
}

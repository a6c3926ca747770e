package avl

// Node is a single tree node holding a key and its value.
type Node[K, V any] struct {
	key    K
	value  V
	left   *Node[K, V]
	right  *Node[K, V]
	height int // height of nil is 0, height of a leaf is 1
}

// Key returns key of the tree node.
func (n *Node[K, V]) Key() K {
	return n.key
}

// Value returns value of the tree node.
func (n *Node[K, V]) Value() V {
	return n.value
}

// MostLeft returns the node with the smallest key in the subtree.
func (n *Node[K, V]) MostLeft() *Node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// MostRight returns the node with the largest key in the subtree.
func (n *Node[K, V]) MostRight() *Node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *Node[K, V]) find(key K, compare func(a, b K) int) *Node[K, V] {
	current := n
	for current != nil {
		cmp := compare(key, current.key)
		switch {
		case cmp == 0:
			return current
		case cmp < 0:
			current = current.left
		default:
			current = current.right
		}
	}
	return nil
}

func (n *Node[K, V]) add(node *Node[K, V], compare func(a, b K) int) (*Node[K, V], error) {
	cmp := compare(node.key, n.key)
	switch {
	case cmp < 0:
		if n.left == nil {
			n.left = node
		} else {
			newLeft, err := n.left.add(node, compare)
			if err != nil {
				return nil, err
			}
			n.left = newLeft
		}
	case cmp > 0:
		if n.right == nil {
			n.right = node
		} else {
			newRight, err := n.right.add(node, compare)
			if err != nil {
				return nil, err
			}
			n.right = newRight
		}
	default:
		return nil, ErrorTreeNodeDuplicate
	}
	return n.rebalance(), nil
}

// remove returns the removed node and the new root of the subtree.
func (n *Node[K, V]) remove(key K, compare func(a, b K) int) (*Node[K, V], *Node[K, V], error) {
	cmp := compare(key, n.key)
	switch {
	case cmp < 0:
		if n.left == nil {
			return nil, nil, ErrorTreeNodeNotFound
		}
		removed, replacement, err := n.left.remove(key, compare)
		if err != nil {
			return nil, nil, err
		}
		n.left = replacement
		return removed, n.rebalance(), nil
	case cmp > 0:
		if n.right == nil {
			return nil, nil, ErrorTreeNodeNotFound
		}
		removed, replacement, err := n.right.remove(key, compare)
		if err != nil {
			return nil, nil, err
		}
		n.right = replacement
		return removed, n.rebalance(), nil
	}

	switch {
	case n.left == nil:
		return n, n.right, nil
	case n.right == nil:
		return n, n.left, nil
	default:
		// Two children: the in-order successor takes this node's place
		newRight, successor := n.right.popMostLeft()
		successor.left = n.left
		successor.right = newRight
		return n, successor.rebalance(), nil
	}
}

func (n *Node[K, V]) popMostLeft() (child, mostLeft *Node[K, V]) {
	if n.left == nil {
		return n.right, n
	}
	newLeft, popped := n.left.popMostLeft()
	n.left = newLeft
	return n.rebalance(), popped
}

// iterateInOrder visits nodes in key order until f returns true.
// The returned flag reports whether the iteration was stopped.
func (n *Node[K, V]) iterateInOrder(f func(v *Node[K, V]) bool) bool {
	if n.left != nil && n.left.iterateInOrder(f) {
		return true
	}
	if f(n) {
		return true
	}
	return n.right != nil && n.right.iterateInOrder(f)
}

// iterateReverseOrder visits nodes in reverse key order until f returns true.
func (n *Node[K, V]) iterateReverseOrder(f func(v *Node[K, V]) bool) bool {
	if n.right != nil && n.right.iterateReverseOrder(f) {
		return true
	}
	if f(n) {
		return true
	}
	return n.left != nil && n.left.iterateReverseOrder(f)
}

func (n *Node[K, V]) iteratePostOrder(f func(v *Node[K, V])) {
	if n.left != nil {
		n.left.iteratePostOrder(f)
	}
	if n.right != nil {
		n.right.iteratePostOrder(f)
	}
	f(n)
}

////////////////////////////////////////////////////////////////
// Balancing
////////////////////////////////////////////////////////////////

func height[K, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *Node[K, V]) fixHeight() {
	n.height = 1 + max(height(n.left), height(n.right))
}

// balance is positive when the right subtree is taller.
func (n *Node[K, V]) balance() int {
	return height(n.right) - height(n.left)
}

func (n *Node[K, V]) rebalance() *Node[K, V] {
	n.fixHeight()
	switch bal := n.balance(); {
	case bal > 1:
		if n.right.balance() < 0 {
			n.right = n.right.rotateRight()
		}
		return n.rotateLeft()
	case bal < -1:
		if n.left.balance() > 0 {
			n.left = n.left.rotateLeft()
		}
		return n.rotateRight()
	}
	return n
}

func (n *Node[K, V]) rotateLeft() *Node[K, V] {
	newRoot := n.right
	n.right = newRoot.left
	newRoot.left = n
	n.fixHeight()
	newRoot.fixHeight()
	return newRoot
}

func (n *Node[K, V]) rotateRight() *Node[K, V] {
	newRoot := n.left
	n.left = newRoot.right
	newRoot.right = n
	n.fixHeight()
	newRoot.fixHeight()
	return newRoot
}

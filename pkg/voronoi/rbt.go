package voronoi

// rbTree is a red-black tree whose nodes are also threaded into a doubly linked list
// in key order. Callers position nodes themselves (insertAfter), so the tree carries
// no comparator: the beach line orders arcs by breakpoint, the queue by sweep key.
type rbTree[T any] struct {
	root *rbNode[T]
	head *rbNode[T]
	size int
}

type rbNode[T any] struct {
	value  T
	left   *rbNode[T]
	right  *rbNode[T]
	parent *rbNode[T]
	prev   *rbNode[T]
	next   *rbNode[T]
	red    bool
}

func (t *rbTree[T]) len() int { return t.size }

// insertAfter places value right after node in order; a nil node means "first".
func (t *rbTree[T]) insertAfter(node *rbNode[T], value T) *rbNode[T] {
	successor := &rbNode[T]{value: value, red: true}
	t.size++

	var parent *rbNode[T]
	switch {
	case node != nil:
		successor.prev = node
		successor.next = node.next
		if node.next != nil {
			node.next.prev = successor
		}
		node.next = successor
		if node.right != nil {
			node = leftmost(node.right)
			node.left = successor
		} else {
			node.right = successor
		}
		parent = node
	case t.root != nil:
		node = leftmost(t.root)
		successor.next = node
		node.prev = successor
		node.left = successor
		parent = node
		t.head = successor
	default:
		t.root = successor
		t.head = successor
	}
	successor.parent = parent

	node = successor
	for parent != nil && parent.red {
		grandpa := parent.parent
		if parent == grandpa.left {
			uncle := grandpa.right
			if uncle != nil && uncle.red {
				parent.red = false
				uncle.red = false
				grandpa.red = true
				node = grandpa
			} else {
				if node == parent.right {
					t.rotateLeft(parent)
					node = parent
					parent = node.parent
				}
				parent.red = false
				grandpa.red = true
				t.rotateRight(grandpa)
			}
		} else {
			uncle := grandpa.left
			if uncle != nil && uncle.red {
				parent.red = false
				uncle.red = false
				grandpa.red = true
				node = grandpa
			} else {
				if node == parent.left {
					t.rotateRight(parent)
					node = parent
					parent = node.parent
				}
				parent.red = false
				grandpa.red = true
				t.rotateLeft(grandpa)
			}
		}
		parent = node.parent
	}
	t.root.red = false
	return successor
}

func (t *rbTree[T]) remove(node *rbNode[T]) {
	t.size--
	if t.head == node {
		t.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node.prev != nil {
		node.prev.next = node.next
	}
	node.next = nil
	node.prev = nil

	parent := node.parent
	left := node.left
	right := node.right

	var next *rbNode[T]
	switch {
	case left == nil:
		next = right
	case right == nil:
		next = left
	default:
		next = leftmost(right)
	}

	if parent != nil {
		if parent.left == node {
			parent.left = next
		} else {
			parent.right = next
		}
	} else {
		t.root = next
	}

	var isRed bool
	if left != nil && right != nil {
		isRed = next.red
		next.red = node.red
		next.left = left
		left.parent = next
		if next != right {
			parent = next.parent
			next.parent = node.parent
			node = next.right
			parent.left = node
			next.right = right
			right.parent = next
		} else {
			next.parent = parent
			parent = next
			node = next.right
		}
	} else {
		isRed = node.red
		node = next
	}
	if node != nil {
		node.parent = parent
	}
	if isRed {
		return
	}
	if node != nil && node.red {
		node.red = false
		return
	}

	for node != t.root {
		var sibling *rbNode[T]
		if node == parent.left {
			sibling = parent.right
			if sibling.red {
				sibling.red = false
				parent.red = true
				t.rotateLeft(parent)
				sibling = parent.right
			}
			if isRedNode(sibling.left) || isRedNode(sibling.right) {
				if !isRedNode(sibling.right) {
					sibling.left.red = false
					sibling.red = true
					t.rotateRight(sibling)
					sibling = parent.right
				}
				sibling.red = parent.red
				parent.red = false
				sibling.right.red = false
				t.rotateLeft(parent)
				node = t.root
				break
			}
		} else {
			sibling = parent.left
			if sibling.red {
				sibling.red = false
				parent.red = true
				t.rotateRight(parent)
				sibling = parent.left
			}
			if isRedNode(sibling.left) || isRedNode(sibling.right) {
				if !isRedNode(sibling.left) {
					sibling.right.red = false
					sibling.red = true
					t.rotateLeft(sibling)
					sibling = parent.left
				}
				sibling.red = parent.red
				parent.red = false
				sibling.left.red = false
				t.rotateRight(parent)
				node = t.root
				break
			}
		}
		sibling.red = true
		node = parent
		parent = parent.parent
		if node.red {
			break
		}
	}
	if node != nil {
		node.red = false
	}
}

func (t *rbTree[T]) rotateLeft(p *rbNode[T]) {
	q := p.right
	parent := p.parent
	if parent != nil {
		if parent.left == p {
			parent.left = q
		} else {
			parent.right = q
		}
	} else {
		t.root = q
	}
	q.parent = parent
	p.parent = q
	p.right = q.left
	if p.right != nil {
		p.right.parent = p
	}
	q.left = p
}

func (t *rbTree[T]) rotateRight(p *rbNode[T]) {
	q := p.left
	parent := p.parent
	if parent != nil {
		if parent.left == p {
			parent.left = q
		} else {
			parent.right = q
		}
	} else {
		t.root = q
	}
	q.parent = parent
	p.parent = q
	p.left = q.right
	if p.left != nil {
		p.left.parent = p
	}
	q.right = p
}

func leftmost[T any](node *rbNode[T]) *rbNode[T] {
	for node.left != nil {
		node = node.left
	}
	return node
}

func isRedNode[T any](node *rbNode[T]) bool {
	return node != nil && node.red
}

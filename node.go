package kbucket

// node is either a leaf holding contacts or an inner node routing to two
// children. Children are addressed by index into tree.nodes.
type node struct {
	contacts Contacts
	far      bool // Leaf only; far leaves are never split.
	inner    bool
	left     int
	right    int
}

// tree is the binary trie of buckets. The root is always nodes[0].
type tree struct {
	nodes []node
}

func newTree() *tree {
	t := &tree{}
	t.newLeaf()

	return t
}

func (t *tree) newLeaf() int {
	t.nodes = append(t.nodes, node{contacts: Contacts{}})
	return len(t.nodes) - 1
}

// bitAt returns the bit of id at depth, most significant bit first.
// Ids that are too short have 0 at every missing position.
func bitAt(id []byte, depth int) int {
	i := depth >> 3
	if i >= len(id) {
		return 0
	}

	return int(id[i]>>(7-uint(depth&7))) & 1
}

// child returns the child of the inner node n selected by the bit of id at depth.
func (n *node) child(id []byte, depth int) int {
	if bitAt(id, depth) == 0 {
		return n.left
	}

	return n.right
}

// leaf returns the leaf that id routes to and the number of bits consumed to
// reach it.
func (t *tree) leaf(id []byte) (int, int) {
	i, depth := 0, 0

	for t.nodes[i].inner {
		i = t.nodes[i].child(id, depth)
		depth++
	}

	return i, depth
}

// split partitions the leaf at i by the bit at depth and turns it into an
// inner node. The child on the opposite side of localId is marked far.
func (t *tree) split(i, depth int, localId []byte) (int, int) {
	left, right := t.newLeaf(), t.newLeaf()

	for _, c := range t.nodes[i].contacts {
		if bitAt(c.Id, depth) == 0 {
			t.nodes[left].contacts = append(t.nodes[left].contacts, c)
		} else {
			t.nodes[right].contacts = append(t.nodes[right].contacts, c)
		}
	}

	n := &t.nodes[i]
	n.contacts = nil
	n.inner = true
	n.left, n.right = left, right

	if bitAt(localId, depth) == 0 {
		t.nodes[right].far = true
	} else {
		t.nodes[left].far = true
	}

	return left, right
}

// walk visits every leaf, left subtree before right.
func (t *tree) walk(fn func(n *node)) {
	for stack := []int{0}; len(stack) > 0; {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if n.inner {
			stack = append(stack, n.right, n.left)
		} else {
			fn(n)
		}
	}
}

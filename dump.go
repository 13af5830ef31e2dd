package kbucket

import (
	"encoding/hex"
	"strings"
)

// Obj is a condensed view of the tree used for debugging and tests.
// Inner nodes set L and R (empty leaves are left out), leaves set B to their
// contact ids in uppercase hex, prefixed with "!" when the leaf is far.
type Obj struct {
	L *Obj   `json:"l,omitempty"`
	R *Obj   `json:"r,omitempty"`
	B string `json:"b,omitempty"`
}

// Dump returns the condensed view of the whole tree.
func (b *KBucket) Dump() Obj {
	return b.tree.dump(0)
}

func (t *tree) dump(i int) Obj {
	n := &t.nodes[i]

	var o Obj
	if n.inner {
		if !t.empty(n.left) {
			l := t.dump(n.left)
			o.L = &l
		}
		if !t.empty(n.right) {
			r := t.dump(n.right)
			o.R = &r
		}

		return o
	}

	if len(n.contacts) == 0 {
		return o
	}

	ids := make([]string, len(n.contacts))
	for j, c := range n.contacts {
		ids[j] = strings.ToUpper(hex.EncodeToString(c.Id))
	}

	o.B = strings.Join(ids, ",")
	if n.far {
		o.B = "!" + o.B
	}

	return o
}

// empty reports whether i is a leaf without contacts.
func (t *tree) empty(i int) bool {
	n := &t.nodes[i]
	return !n.inner && len(n.contacts) == 0
}

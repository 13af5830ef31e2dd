package kbucket

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Distance is a big-endian unsigned integer of arbitrary width.
// Leading zero bytes do not affect its value.
type Distance []byte

// DistanceFunc returns the distance between two ids.
type DistanceFunc func(a, b []byte) Distance

// XORDistance returns the XOR distance between a and b.
//
// Ids of different lengths are aligned on their last byte: the shorter id is
// treated as if it were zero-extended on the left, so the extra leading bytes
// of the longer id are copied into the result unchanged.
//
// According to http://www.maymounkov.org/papers/maymounkov-kademlia-lncs.pdf
// the metric satisfies:
//
//	d(x,x) = 0
//	d(x,y) > 0, if x != y
//	d(x,y) = d(y,x)
//	d(x,z) <= d(x,y) + d(y,z)
func XORDistance(a, b []byte) Distance {
	if len(a) < len(b) {
		a, b = b, a
	}

	dist := make(Distance, len(a))
	offset := len(a) - len(b)

	copy(dist, a[:offset])
	for i := range b {
		dist[offset+i] = a[offset+i] ^ b[i]
	}

	return dist
}

// Cmp compares d and o numerically.
// It returns -1 if d < o, 0 if d == o and +1 if d > o.
func (d Distance) Cmp(o Distance) int {
	d, o = d.trim(), o.trim()

	switch {
	case len(d) < len(o):
		return -1
	case len(d) > len(o):
		return 1
	}

	return bytes.Compare(d, o)
}

// IsZero reports whether d equals zero.
func (d Distance) IsZero() bool {
	return len(d.trim()) == 0
}

// String returns d as uppercase hex without leading zero bytes ("0" for zero).
func (d Distance) String() string {
	t := d.trim()
	if len(t) == 0 {
		return "0"
	}

	return strings.TrimPrefix(strings.ToUpper(hex.EncodeToString(t)), "0")
}

func (d Distance) trim() Distance {
	for len(d) > 0 && d[0] == 0 {
		d = d[1:]
	}

	return d
}

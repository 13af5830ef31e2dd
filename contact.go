package kbucket

import (
	"bytes"
	"net/netip"
	"time"
)

type Contact struct {
	Id          []byte         // The node id.
	AddrPort    netip.AddrPort // The address and port of the node.
	SeenAt      time.Time      // SeenAt is the time this node was last seen.
	VectorClock int            // Logical clock consulted by the default arbiter.
	Metadata    map[string]any // Optional satellite data to include with the Contact.
}

// Contacts is a bucket's contact list in touch order: index 0 is the least
// recently touched contact.
type Contacts []*Contact

// Neighbor is a contact returned by Closest together with its distance to the
// query target. Distance is only meaningful for the query that produced it.
type Neighbor struct {
	*Contact
	Distance Distance
}

// ArbiterFunc selects which of two contacts with the same id is kept. It
// should return one of its arguments; nil keeps the incumbent.
type ArbiterFunc func(incumbent, candidate *Contact) *Contact

// MaxVectorClock is the default arbiter. The contact with the strictly larger
// VectorClock wins, on a tie the incumbent is kept.
func MaxVectorClock(incumbent, candidate *Contact) *Contact {
	if candidate.VectorClock > incumbent.VectorClock {
		return candidate
	}

	return incumbent
}

// Equal reports whether a and b carry the same id, vector clock and address.
// The table itself compares contacts by pointer, Equal is for callers that
// need to tell whether a contact's data changed, e.g. inside an ArbiterFunc.
func (a *Contact) Equal(b *Contact) bool {
	if !bytes.Equal(a.Id, b.Id) {
		return false
	}

	if a.VectorClock != b.VectorClock {
		return false
	}

	return CompareAddrPorts(a.AddrPort, b.AddrPort)
}

// Returns the index of the contact with provided id if it exists, returns -1 otherwise.
func (c Contacts) indexOf(id []byte) int {
	for i, v := range c {
		if bytes.Equal(v.Id, id) {
			return i
		}
	}

	return -1
}

// touch moves the contact at i to the most recently touched end, replacing it
// with next.
func (c Contacts) touch(i int, next *Contact) Contacts {
	c = append(c[:i], c[i+1:]...)
	return append(c, next)
}

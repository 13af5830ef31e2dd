package kbucket

// Kademlia DHT K-bucket implementation as a binary tree.
// KBucket was ported from Tristan Slominski's k-bucket (https://github.com/tristanls/k-bucket)
//
// KBucket stores Contact objects which represent locations and addresses of
// nodes in the decentralized distributed system. Node ids are byte slices of
// up to Options.MaxIdLength bytes, ids of different lengths can be compared.
//
//
// The MIT License (MIT)
//
// Copyright (c) 2022 Attila Buti
// Copyright (c) Tristan Slominski
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

import (
	"encoding/hex"
	"fmt"
	"math"
	"slices"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// KBucket is not safe for concurrent use. Callers serialize access.
type KBucket struct {
	id         []byte       // The local node ID.
	size       int          // The number of nodes that a bucket can contain before being full or split.
	ping       int          // The number of nodes to ping when a bucket that should not be split becomes full.
	maxIdLen   int          // The maximum accepted id length in bytes.
	tree       *tree        // The binary tree of buckets.
	distanceFn DistanceFunc // Returns the distance between two ids.
	arbiterFn  ArbiterFunc  // Given two contacts with the same id returns the one to keep.
	events     Events
	logger     *zap.Logger
	clock      clock.Clock
	metrics    *Metrics

	// Optional satellite data to include with the KBucket. Metadata property is
	// guaranteed not be altered, it is provided as an explicit container for users
	// of KBucket to store implementation-specific data.
	Metadata map[string]any
}

// New creates a new KBucket with the given options.
func New(options Options) (*KBucket, error) {
	options, err := setDefaults(options)
	if err != nil {
		return nil, err
	}

	return &KBucket{
		id:         options.LocalNodeId,
		size:       options.NodesPerKBucket,
		ping:       options.NodesToPing,
		maxIdLen:   options.MaxIdLength,
		tree:       newTree(),
		distanceFn: options.Distance,
		arbiterFn:  options.Arbiter,
		events:     options.Events,
		logger:     options.Logger,
		clock:      options.Clock,
		metrics:    options.Metrics,
		Metadata:   options.Metadata,
	}, nil
}

// GetId returns the local node id.
func (b *KBucket) GetId() []byte {
	return b.id
}

// Add stores contact in the bucket its id routes to.
//
// If a contact with the same id is already stored the arbiter decides which
// one is kept. If the bucket is full it is split when it is on the local id's
// side of the tree, otherwise Events.Ping is called and contact is not stored.
// The KBucket keeps contact's pointer and updates its SeenAt field.
func (b *KBucket) Add(contact *Contact) error {
	if contact == nil {
		return ErrNilContact
	}

	if len(contact.Id) > b.maxIdLen {
		return fmt.Errorf("%w: id has %d bytes, max %d", ErrIdTooLong, len(contact.Id), b.maxIdLen)
	}

	var i, depth int
	for {
		i, depth = b.tree.leaf(contact.Id)
		n := &b.tree.nodes[i]

		// Check if the contact already exists.
		if j := n.contacts.indexOf(contact.Id); j >= 0 {
			b.update(n, j, contact)
			return nil
		}

		if len(n.contacts) < b.size {
			contact.SeenAt = b.clock.Now()
			n.contacts = append(n.contacts, contact)

			b.metrics.added()
			b.events.Added(contact)

			return nil
		}

		// The bucket is full. Ids can't be told apart past maxIdLen bytes, so
		// such a bucket is treated like a "far away" one.
		if n.far || depth >= b.maxIdLen*8 {
			break
		}

		left, right := b.tree.split(i, depth, b.id)
		b.metrics.split()
		b.logger.Debug("split bucket",
			zap.Int("depth", depth),
			zap.Int("left", len(b.tree.nodes[left].contacts)),
			zap.Int("right", len(b.tree.nodes[right].contacts)),
		)
	}

	// We are not allowed to split the bucket. The least recently contacted
	// nodes have to be pinged, only if one of them does not respond can the
	// new contact be added (this prevents DoS flooding with new invalid
	// contacts).
	contacts := b.tree.nodes[i].contacts
	old := make(Contacts, min(b.ping, len(contacts)))
	copy(old, contacts)

	b.metrics.ping()
	b.logger.Debug("bucket full, ping required",
		zap.String("id", hex.EncodeToString(contact.Id)),
		zap.Int("ping", len(old)),
	)
	b.events.Ping(old, contact)

	return nil
}

// Updates the contact by using the arbiter function to compare the incumbent and
// the candidate. If arbiter function selects the old contact but the candidate is
// some new contact, then the new contact is abandoned. If arbiter function selects
// the old contact and the candidate is that same old contact, the contact is marked
// as most recently contacted (by being moved to the right/end of the bucket array).
// If arbiter function selects the new contact, the old contact is removed and the
// new contact is marked as most recently contacted. A nil selection keeps the
// incumbent untouched.
func (b *KBucket) update(n *node, i int, candidate *Contact) {
	incumbent := n.contacts[i]
	selection := b.arbiterFn(incumbent, candidate)

	if selection == nil || selection == incumbent && incumbent != candidate {
		return
	}

	selection.SeenAt = b.clock.Now()
	n.contacts = n.contacts.touch(i, selection)

	b.metrics.updated()
	b.events.Updated(incumbent, selection)
}

// Get a contact by its exact id. Returns nil if the contact is not found.
func (b *KBucket) Get(id []byte) *Contact {
	n, i := b.find(id)
	if i < 0 {
		return nil
	}

	return n.contacts[i]
}

// Has returns true if the contact with the given id is in the KBucket, false otherwise.
func (b *KBucket) Has(id []byte) bool {
	_, i := b.find(id)
	return i >= 0
}

// Removes contact with the provided id.
func (b *KBucket) Remove(id []byte) {
	n, i := b.find(id)
	if i < 0 {
		return
	}

	contact := n.contacts[i]
	n.contacts = slices.Delete(n.contacts, i, i+1)

	b.metrics.removed()
	b.events.Removed(contact)
}

// Seen updates the contact's last seen time and marks it as most recently
// contacted. Returns true if the contact was found, false otherwise.
func (b *KBucket) Seen(id []byte) bool {
	n, i := b.find(id)
	if i < 0 {
		return false
	}

	contact := n.contacts[i]
	contact.SeenAt = b.clock.Now()
	n.contacts = n.contacts.touch(i, contact)

	return true
}

// Clear removes all contacts from the KBucket. No events are emitted.
func (b *KBucket) Clear() {
	b.tree = newTree()
	b.metrics.reset()
}

// Closest returns at most n contacts closest to id according to the distance
// function, nearest first. n must be positive.
func (b *KBucket) Closest(id []byte, n int) ([]Neighbor, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	type frame struct {
		node  int
		depth int
	}

	var found []Neighbor
	stack := []frame{}
	cur := frame{}

	for {
		nd := &b.tree.nodes[cur.node]

		if nd.inner {
			next := frame{nd.child(id, cur.depth), cur.depth + 1}
			sibling := frame{nd.left, cur.depth + 1}
			if next.node == nd.left {
				sibling.node = nd.right
			}

			stack = append(stack, sibling)
			cur = next
			continue
		}

		// Take the whole bucket, it is sorted and trimmed below.
		for _, c := range nd.contacts {
			found = append(found, Neighbor{Contact: c, Distance: b.distanceFn(c.Id, id)})
		}

		if len(found) >= n || len(stack) == 0 {
			break
		}

		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

	slices.SortStableFunc(found, func(x, y Neighbor) int {
		return x.Distance.Cmp(y.Distance)
	})

	if len(found) > n {
		found = found[:n]
	}

	return found, nil
}

// ClosestAll returns every contact ordered by distance to id, nearest first.
func (b *KBucket) ClosestAll(id []byte) []Neighbor {
	found, _ := b.Closest(id, math.MaxInt)
	return found
}

// SetDistanceFn overrides the distance function. Nil restores XORDistance.
func (b *KBucket) SetDistanceFn(distanceFn DistanceFunc) {
	if distanceFn == nil {
		distanceFn = XORDistance
	}

	b.distanceFn = distanceFn
}

// Distance returns the distance between the two ids using the configured
// distance function.
func (b *KBucket) Distance(fid, sid []byte) Distance {
	return b.distanceFn(fid, sid)
}

// SetArbiterFn overrides the arbiter function. Nil restores MaxVectorClock.
func (b *KBucket) SetArbiterFn(arbiterFn ArbiterFunc) {
	if arbiterFn == nil {
		arbiterFn = MaxVectorClock
	}

	b.arbiterFn = arbiterFn
}

// Count returns the number of contacts in the KBucket.
func (b *KBucket) Count() int {
	count := 0
	b.tree.walk(func(n *node) {
		count += len(n.contacts)
	})

	return count
}

// ToSlice returns a slice with all contacts in the KBucket, from the lowest
// bucket to the highest. Within a bucket, contacts are in touch order.
func (b *KBucket) ToSlice() Contacts {
	contacts := Contacts{}
	b.tree.walk(func(n *node) {
		contacts = append(contacts, n.contacts...)
	})

	return contacts
}

// find returns the leaf id routes to and the index of the contact with that id
// in it, or -1.
func (b *KBucket) find(id []byte) (*node, int) {
	i, _ := b.tree.leaf(id)
	n := &b.tree.nodes[i]

	return n, n.contacts.indexOf(id)
}

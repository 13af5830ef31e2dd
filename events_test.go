package kbucket

import (
	"testing"
	"time"

	"github.com/attilabuti/eventemitter/v2"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFuncs(t *testing.T) {
	var added, removed Contacts
	var updated [][2]*Contact

	kbucket := newTestKBucket(t, Options{
		Events: EventFuncs{
			OnAdded:   func(c *Contact) { added = append(added, c) },
			OnUpdated: func(prev, next *Contact) { updated = append(updated, [2]*Contact{prev, next}) },
			OnRemoved: func(c *Contact) { removed = append(removed, c) },
		},
	})

	c1 := &Contact{Id: []byte("a")}
	c2 := &Contact{Id: []byte("a"), VectorClock: 1}
	require.NoError(t, kbucket.Add(c1))
	require.NoError(t, kbucket.Add(c2))
	kbucket.Remove(c2.Id)

	assert.Equal(t, Contacts{c1}, added)
	assert.Equal(t, [][2]*Contact{{c1, c2}}, updated)
	assert.Equal(t, Contacts{c2}, removed)
}

// Nil callbacks are skipped.
func TestEventFuncsPartial(t *testing.T) {
	var pinged int

	kbucket := newTestKBucket(t, Options{
		LocalNodeId:     []byte{0x00},
		NodesPerKBucket: 1,
		Events: EventFuncs{
			OnPing: func(old Contacts, candidate *Contact) { pinged++ },
		},
	})

	require.NoError(t, kbucket.Add(&Contact{Id: []byte{0x80}}))
	require.NoError(t, kbucket.Add(&Contact{Id: []byte{0x81}}))
	kbucket.Remove([]byte{0x80})

	assert.Equal(t, 1, pinged)
}

// Notifications are delivered before Add returns.
func TestEventsSynchronous(t *testing.T) {
	var count int

	kbucket := newTestKBucket(t, Options{})
	kbucket.events = EventFuncs{
		OnAdded: func(c *Contact) { count = kbucket.Count() },
	}

	require.NoError(t, kbucket.Add(&Contact{Id: []byte("a")}))
	assert.Equal(t, 1, count)
}

// The ping slice is a copy of the bucket's contacts.
func TestEventsPingCopy(t *testing.T) {
	events := &recorder{}
	kbucket := newTestKBucket(t, Options{
		LocalNodeId:     []byte{0x00},
		NodesPerKBucket: 2,
		NodesToPing:     2,
		Events:          events,
	})

	for _, id := range []byte{0x80, 0x81, 0x82} {
		require.NoError(t, kbucket.Add(&Contact{Id: []byte{id}}))
	}

	require.Len(t, events.pings, 1)
	events.pings[0].old[0] = nil

	assert.NotNil(t, kbucket.nodeAt("r").contacts[0])
}

func TestEmitterEvents(t *testing.T) {
	var added, updated, pinged, removed int

	emitter := eventemitter.New()
	kbucket := newTestKBucket(t, Options{
		LocalNodeId:     []byte{0x00},
		NodesPerKBucket: 1,
		NodesToPing:     3,
		Events:          EmitterEvents{Emitter: emitter},
	})

	c1 := &Contact{Id: []byte{0x80}}
	c2 := &Contact{Id: []byte{0x80}, VectorClock: 1}
	c3 := &Contact{Id: []byte{0x81}}

	emitter.On(EventAdded, func(c *Contact) {
		added++
		assert.Same(t, c1, c)
	})

	emitter.On(EventUpdated, func(old *Contact, new *Contact) {
		updated++
		assert.Same(t, c1, old)
		assert.Same(t, c2, new)
	})

	emitter.On(EventPing, func(old Contacts, new *Contact) {
		pinged++
		assert.Equal(t, Contacts{c2}, old)
		assert.Same(t, c3, new)
	})

	emitter.On(EventRemoved, func(c *Contact) {
		removed++
		assert.Same(t, c2, c)
	})

	// Every listener has run by the time the call returns.
	require.NoError(t, kbucket.Add(c1))
	assert.Equal(t, 1, added)

	require.NoError(t, kbucket.Add(c2))
	assert.Equal(t, 1, updated)

	require.NoError(t, kbucket.Add(c3))
	assert.Equal(t, 1, pinged)

	kbucket.Remove(c2.Id)
	assert.Equal(t, 1, removed)
}

// A listener reading a contact does not race with later updates of it.
func TestEmitterEventsSeen(t *testing.T) {
	var seenAt time.Time

	mock := clock.NewMock()
	emitter := eventemitter.New()
	kbucket := newTestKBucket(t, Options{
		Events: EmitterEvents{Emitter: emitter},
		Clock:  mock,
	})

	emitter.On(EventAdded, func(c *Contact) {
		seenAt = c.SeenAt
	})

	c := &Contact{Id: []byte("a")}
	added := mock.Now()
	require.NoError(t, kbucket.Add(c))

	mock.Add(time.Minute)
	require.True(t, kbucket.Seen(c.Id))

	assert.Equal(t, added, seenAt)
	assert.Equal(t, mock.Now(), c.SeenAt)
}

func TestNopEvents(t *testing.T) {
	var events Events = NopEvents{}

	assert.NotPanics(t, func() {
		events.Added(&Contact{})
		events.Updated(&Contact{}, &Contact{})
		events.Removed(&Contact{})
		events.Ping(nil, &Contact{})
	})
}

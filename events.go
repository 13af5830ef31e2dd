package kbucket

import "github.com/attilabuti/eventemitter/v2"

// Event names used by EmitterEvents.
const (
	EventAdded   = "kbucket.added"
	EventUpdated = "kbucket.updated"
	EventRemoved = "kbucket.removed"
	EventPing    = "kbucket.ping"
)

// Events receives KBucket notifications. Methods are called synchronously
// from within Add and Remove and must not modify the KBucket.
type Events interface {
	// Added is called when c was stored and no contact with its id existed.
	Added(c *Contact)

	// Updated is called when prev was replaced (or re-touched) by next.
	Updated(prev, next *Contact)

	// Removed is called when c was removed from the bucket.
	Removed(c *Contact)

	// Ping is called when candidate could not be stored because its bucket is
	// full and may not be split. old holds the least recently touched
	// contacts of that bucket. If one of them does not respond the caller
	// should remove it and add candidate again.
	Ping(old Contacts, candidate *Contact)
}

// NopEvents discards every notification.
type NopEvents struct{}

func (NopEvents) Added(*Contact)          {}
func (NopEvents) Updated(_, _ *Contact)   {}
func (NopEvents) Removed(*Contact)        {}
func (NopEvents) Ping(Contacts, *Contact) {}

// EventFuncs adapts plain functions to Events. Nil fields are skipped.
type EventFuncs struct {
	OnAdded   func(c *Contact)
	OnUpdated func(prev, next *Contact)
	OnRemoved func(c *Contact)
	OnPing    func(old Contacts, candidate *Contact)
}

func (e EventFuncs) Added(c *Contact) {
	if e.OnAdded != nil {
		e.OnAdded(c)
	}
}

func (e EventFuncs) Updated(prev, next *Contact) {
	if e.OnUpdated != nil {
		e.OnUpdated(prev, next)
	}
}

func (e EventFuncs) Removed(c *Contact) {
	if e.OnRemoved != nil {
		e.OnRemoved(c)
	}
}

func (e EventFuncs) Ping(old Contacts, candidate *Contact) {
	if e.OnPing != nil {
		e.OnPing(old, candidate)
	}
}

// EmitterEvents forwards notifications to an event emitter under the
// EventAdded, EventUpdated, EventRemoved and EventPing names. Listeners are
// called synchronously, before Add or Remove returns.
//
//	emitter := eventemitter.New()
//	emitter.On(kbucket.EventPing, func(old kbucket.Contacts, candidate *kbucket.Contact) {
//		// ping old, remove the dead ones, add candidate again
//	})
//	b, _ := kbucket.New(kbucket.Options{Events: kbucket.EmitterEvents{Emitter: emitter}})
type EmitterEvents struct {
	Emitter *eventemitter.Emitter
}

func (e EmitterEvents) Added(c *Contact) {
	e.Emitter.EmitSync(EventAdded, c)
}

func (e EmitterEvents) Updated(prev, next *Contact) {
	e.Emitter.EmitSync(EventUpdated, prev, next)
}

func (e EmitterEvents) Removed(c *Contact) {
	e.Emitter.EmitSync(EventRemoved, c)
}

func (e EmitterEvents) Ping(old Contacts, candidate *Contact) {
	e.Emitter.EmitSync(EventPing, old, candidate)
}

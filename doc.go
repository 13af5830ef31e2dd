/*
# KBucket

Kademlia DHT K-bucket implementation as a binary tree.
KBucket was ported from Tristan Slominski's k-bucket: github.com/tristanls/k-bucket

A Distributed Hash Table (DHT) is a decentralized distributed system that
provides a lookup table similar to a hash table.

KBucket is an implementation of a storage mechanism for keys within a DHT.
It stores Contact objects which represent locations and addresses of nodes in
the decentralized distributed system. Contact objects are typically identified
by a SHA-256 hash, however this restriction is lifted in this implementation.
Ids of up to Options.MaxIdLength bytes are accepted and ids of different
lengths can be compared.

The tree starts as a single bucket. A full bucket on the local node id's side
of the tree is split in two by the next bit of the id; the other half is
marked "far away" and is never split again. A contact that does not fit into a
full far bucket is not stored, instead the least recently contacted nodes of
that bucket are reported through Events.Ping.

A KBucket is not safe for concurrent use.

Without Options.LocalNodeId a fixed default id is used. GenerateId returns a
random 256-bit id for callers that want one:

	id, err := kbucket.GenerateId()
	if err != nil {
		return err
	}
	b, err := kbucket.New(kbucket.Options{LocalNodeId: id})

KBucket events (Events interface, or eventemitter names via EmitterEvents):

	Added / kbucket.added
		  	newContact *Contact: The new contact that was added.
		Emitted only when "newContact" was added to bucket and it was not stored
		in the bucket before.

	Ping / kbucket.ping
		  	old Contacts: The slice of contacts to ping.
			new *Contact: The new contact to be added if one of old contacts does not respond.
		Emitted every time a contact is added that would exceed the capacity of a
		"don't split" k-bucket it belongs to.

	Removed / kbucket.removed
		  	contact *Contact: The contact that was removed.
		Emitted when "contact" was removed from the bucket.

	Updated / kbucket.updated
		  	old *Contact: The contact that was stored prior to the update.
			new *Contact: The new contact that is now stored after the update.
		Emitted when a previously existing ("previously existing" means "oldContact.Id"
		equals "newContact.Id") contact was added to the bucket and it was replaced with
		"newContact", or re-added and marked as most recently contacted.
*/
package kbucket

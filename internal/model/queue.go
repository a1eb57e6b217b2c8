package model

// QueueRef is a composite key into BaseSnap, used instead of holding a
// live pointer into the snapshot. Spec section 9 ("Mixed ownership of
// queue items") notes the source keeps references into base_snap for
// new-item queues; Go maps offer no stable pointer into their storage
// once the map is mutated, so the queue instead carries the (dir, name)
// pair and the dispatch phase re-looks it up in BaseSnap at send time.
type QueueRef struct {
	DirKey string
	Name   string
}

// SyncQueue holds the four ordered work sequences populated during a
// pass and consumed by the dispatch phase, per spec section 3.
//
// LNew and RNew reference entries already copied into BaseSnap (upload
// and download targets respectively). LDel and RDel are stored by value
// because their snapshot home is about to disappear.
type SyncQueue struct {
	LNew []QueueRef
	RNew []QueueRef
	LDel []QueueEntry
	RDel []QueueEntry
}

// QueueEntry is a delete-queue item: the directory it lived in plus the
// file item itself, captured by value before removal from the snapshot.
type QueueEntry struct {
	DirKey string
	Item   FileItem
}

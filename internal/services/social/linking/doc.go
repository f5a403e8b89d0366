// Package linking shares loaded character records between the contacts that
// reference them.
//
// A Registry maps a resolved file path to one record and the set of
// referrers holding it. Records loaded because a contact links them live as
// long as a referrer outside the record itself remains; records opened
// directly by the host are pinned until closed.
//
// Loading is two-phase. The registry allocates the record and publishes it
// before populating it, so a record whose own contacts link back to it (A
// links B, B links A) finds the in-progress instance instead of recursing.
package linking

// Package id generates identifiers for persisted records and scratch files.
//
// GUIDs are random (v4) UUIDs in their canonical 36-character hyphenated
// form, which is what saved documents carry. File tokens are the same 16
// bytes rendered as 32 lowercase hex characters so they are safe to use as
// file names.
package id

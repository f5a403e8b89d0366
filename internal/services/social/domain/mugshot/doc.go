// Package mugshot holds portrait galleries: an ordered list of encoded images
// with one optional main entry.
//
// Images are kept in their encoded form so a gallery round-trips through a
// document without re-encoding. Identity is pointer identity; two images with
// the same bytes are still distinct gallery entries.
package mugshot

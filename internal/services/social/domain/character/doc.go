// Package character holds the character profile container: the native
// `.chum5` document, the contacts it owns, and the registry that shares
// loaded profiles between the contacts that link them.
package character

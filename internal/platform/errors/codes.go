// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Link resolution errors
	CodeLinkFileNotFound Code = "LINK_FILE_NOT_FOUND"
	CodeLinkUnloadFailed Code = "LINK_UNLOAD_FAILED"
	CodeLinkLoadFailed   Code = "LINK_LOAD_FAILED"

	// Document errors
	CodeDocumentMalformedField Code = "DOCUMENT_MALFORMED_FIELD"
	CodeDocumentUnreadable     Code = "DOCUMENT_UNREADABLE"

	// Contact errors
	CodeContactUnknownClassification Code = "CONTACT_UNKNOWN_CLASSIFICATION"

	// Filesystem errors
	CodeFilesystemPermission Code = "FILESYSTEM_PERMISSION"

	// Gallery errors
	CodeMugshotDecodeFailed Code = "MUGSHOT_DECODE_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Recoverable reports whether the code describes a condition that degrades
// to a default instead of aborting the surrounding document operation.
func (c Code) Recoverable() bool {
	switch c {
	case CodeLinkFileNotFound,
		CodeLinkUnloadFailed,
		CodeLinkLoadFailed,
		CodeDocumentMalformedField,
		CodeContactUnknownClassification,
		CodeFilesystemPermission,
		CodeMugshotDecodeFailed:
		return true
	default:
		return false
	}
}

package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeLinkFileNotFound             = "LINK_FILE_NOT_FOUND"
	CodeLinkUnloadFailed             = "LINK_UNLOAD_FAILED"
	CodeLinkLoadFailed               = "LINK_LOAD_FAILED"
	CodeDocumentMalformedField       = "DOCUMENT_MALFORMED_FIELD"
	CodeDocumentUnreadable           = "DOCUMENT_UNREADABLE"
	CodeContactUnknownClassification = "CONTACT_UNKNOWN_CLASSIFICATION"
	CodeFilesystemPermission         = "FILESYSTEM_PERMISSION"
	CodeMugshotDecodeFailed          = "MUGSHOT_DECODE_FAILED"
	CodeNotFound                     = "NOT_FOUND"
)

// Render returns the notice for code in locale.
func Render(locale string, code Code, metadata map[string]string) Notice {
	return GetCatalog(locale).Notice(code, metadata)
}

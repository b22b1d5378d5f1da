package errors

import stderrors "errors"

// Sentinel errors surfaced to users
var (
	// ErrNoFileSelected is returned when an upload is triggered before a file was chosen
	ErrNoFileSelected = stderrors.New(ErrMsgNoFileSelected)

	// ErrMissingCredential is returned by a storage provider built without an access token
	ErrMissingCredential = stderrors.New(ErrMsgMissingCredential)
)

// Error message constants
const (
	ErrMsgNoFileSelected    = "No file selected"
	ErrMsgMissingCredential = "storage access credential is not configured"
	ErrMsgUploadFailed      = "Upload failed"
	ErrMsgFileSize          = "File size exceeds maximum allowed size"
)

// ValidationError represents a validation error with a field and message
type ValidationError struct {
	Field   string
	Message string
}

// StorageError represents an error during storage operations
type StorageError struct {
	Message string
	Cause   error
}

package upload

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
)

// validateFile checks a posted file against the configured limits.
// Empty files are accepted.
func (h *Handler) validateFile(fh *multipart.FileHeader) error {
	if h.config.MaxSize > 0 && fh.Size > h.config.MaxSize {
		return apperrors.NewValidationError(formField, apperrors.ErrMsgFileSize)
	}

	if len(h.config.AllowedFormats) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, format := range h.config.AllowedFormats {
		if ext == strings.ToLower(format) {
			return nil
		}
	}
	return apperrors.NewValidationError(formField,
		fmt.Sprintf("unsupported file type: %q. Allowed types: %v", ext, h.config.AllowedFormats))
}

// validationMessage returns the user facing part of a validation error
func validationMessage(err error) string {
	if v, ok := err.(*apperrors.ValidationError); ok {
		return v.Message
	}
	return err.Error()
}

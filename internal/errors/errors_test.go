package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError(t *testing.T) {
	err := NewStorageError("failed to upload clip", ErrMissingCredential)

	assert.Equal(t, "failed to upload clip: "+ErrMsgMissingCredential, err.Error())
	assert.True(t, stderrors.Is(err, ErrMissingCredential))
	assert.True(t, IsStorage(fmt.Errorf("handler: %w", err)))
	assert.False(t, IsValidation(err))
}

func TestStorageError_NoCause(t *testing.T) {
	assert.Equal(t, "gateway rejected payload", NewStorageError("gateway rejected payload", nil).Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("video", ErrMsgFileSize)

	assert.Equal(t, "video: "+ErrMsgFileSize, err.Error())
	assert.True(t, IsValidation(err))
	assert.False(t, IsStorage(err))
}

func TestNoFileSelectedMessage(t *testing.T) {
	assert.Equal(t, "No file selected", ErrNoFileSelected.Error())
}

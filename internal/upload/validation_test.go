package upload

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
)

func TestValidateFile(t *testing.T) {
	h := &Handler{config: HandlerConfig{MaxSize: 10, AllowedFormats: []string{".mp4", ".MOV"}}}

	tests := []struct {
		name    string
		file    multipart.FileHeader
		wantErr string
	}{
		{name: "valid", file: multipart.FileHeader{Filename: "clip.mp4", Size: 10}},
		{name: "empty file", file: multipart.FileHeader{Filename: "clip.mp4", Size: 0}},
		{name: "case insensitive", file: multipart.FileHeader{Filename: "clip.mov", Size: 1}},
		{name: "too large", file: multipart.FileHeader{Filename: "clip.mp4", Size: 11}, wantErr: apperrors.ErrMsgFileSize},
		{name: "wrong format", file: multipart.FileHeader{Filename: "notes.txt", Size: 1}, wantErr: "unsupported file type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.validateFile(&tt.file)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, validationMessage(err), tt.wantErr)
		})
	}
}

func TestValidateFile_AnyFormat(t *testing.T) {
	h := &Handler{}
	assert.NoError(t, h.validateFile(&multipart.FileHeader{Filename: "anything", Size: 1 << 40}))
}

package cloudinary

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripImageTypes = []string{".jpg", ".jpeg", ".png", ".webp"}

func TestNewService_MissingCredentials(t *testing.T) {
	svc, err := NewService("", "key", "secret", "")
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewService_DefaultsFolder(t *testing.T) {
	svc, err := NewService("demo", "key", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "travlr", svc.uploadFolder)
	assert.Equal(t, "demo", svc.CloudName())
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name    string
		header  multipart.FileHeader
		wantErr string
	}{
		{name: "jpg", header: multipart.FileHeader{Filename: "beach.jpg", Size: 1024}},
		{name: "upper case", header: multipart.FileHeader{Filename: "BEACH.WEBP", Size: 1024}},
		{name: "gif rejected", header: multipart.FileHeader{Filename: "beach.gif", Size: 1024}, wantErr: "invalid image file type: .gif"},
		{name: "too large", header: multipart.FileHeader{Filename: "beach.png", Size: MaxImageSize + 1}, wantErr: "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageFile(&tt.header, tripImageTypes)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// jpegHeader is enough of a JPEG preamble for content sniffing.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func jpegPayload(size int) []byte {
	data := make([]byte, size)
	copy(data, jpegHeader)
	return data
}

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"a.png", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.gif", true},
		{"a.bmp", true},
		{"photo.webp", true},
		{"a", false},
		{"a.exe", false},
		{"a.txt", false},
		{"", false},
		{".jpg", true},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedExtension(tt.filename))
		})
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErrs []string
	}{
		{
			name:     "valid jpeg",
			filename: "face.jpg",
			data:     jpegPayload(2048),
			wantErrs: nil,
		},
		{
			name:     "valid png",
			filename: "face.png",
			data:     append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...),
			wantErrs: nil,
		},
		{
			name:     "bad extension still sniffs fine",
			filename: "face.exe",
			data:     jpegPayload(2048),
			wantErrs: []string{"Invalid file type. Only images are allowed."},
		},
		{
			name:     "spoofed content",
			filename: "face.jpg",
			data:     []byte("#!/bin/sh\nrm -rf /\n"),
			wantErrs: []string{"Invalid file format detected."},
		},
		{
			name:     "empty file",
			filename: "face.jpg",
			data:     nil,
			wantErrs: []string{"Invalid file format detected.", "File is empty."},
		},
		{
			name:     "exactly at the size limit",
			filename: "face.jpg",
			data:     jpegPayload(MaxFileSize),
			wantErrs: nil,
		},
		{
			name:     "one byte over the size limit",
			filename: "face.jpg",
			data:     jpegPayload(MaxFileSize + 1),
			wantErrs: []string{"File too large. Maximum size is 5MB."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateUpload(tt.filename, tt.data)
			assert.Equal(t, tt.wantErrs, errs)
		})
	}
}

package validation

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxFileSize is the upload ceiling in bytes.
	MaxFileSize = 5 * 1024 * 1024

	// sniffLen bounds how much of the payload is handed to the sniffer.
	sniffLen = 2048
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

// AllowedExtension reports whether the filename carries a permitted image
// extension. A filename without a dot never passes.
func AllowedExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[idx+1:])]
}

// ValidateUpload runs the structural checks on an uploaded file and returns
// every triggered message. The content type is sniffed from the leading bytes;
// the client-declared header is never trusted. Pixel content is not inspected
// here, so a passing file can still fail to decode later.
func ValidateUpload(filename string, data []byte) []string {
	var errs []string

	if !AllowedExtension(filename) {
		errs = append(errs, "Invalid file type. Only images are allowed.")
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !allowedMIMETypes[mimetype.Detect(head).String()] {
		errs = append(errs, "Invalid file format detected.")
	}

	if len(data) > MaxFileSize {
		errs = append(errs, "File too large. Maximum size is 5MB.")
	}
	if len(data) == 0 {
		errs = append(errs, "File is empty.")
	}

	return errs
}

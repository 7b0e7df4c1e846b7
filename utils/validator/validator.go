package validator

import (
	"io"
	"net/http"
	"strings"
)

// allowedImageMimeTypes Allowed image types
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg":     true,
	"image/png":      true,
	"image/gif":      true,
	"image/webp":     true,
	"image/bmp":      true,
	"image/x-ms-bmp": true,
}

// IsImage sniffs the stream content and reports whether it is an allowed
// image type. The stream is rewound to the start afterwards.
func IsImage(file io.ReadSeeker) (bool, string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false, "", err
	}

	mimeType := http.DetectContentType(buffer[:n])
	return allowedImageMimeTypes[mimeType], mimeType, nil
}

// IsImageContentType checks a caller-declared content type. Used by the
// trusting upload policy which does not sniff bytes.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

package util

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedFile = newKind(ErrInvalidInput, "unsupported file type")

// SniffImage detects the MIME type from the content and rejects anything
// that is not an image. The returned reader replays the sniffed bytes.
func SniffImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), MimeImage) {
		return mt.String(), nil, ErrUnsupportedFile
	}
	return mt.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// HasImageExtension checks the file name against AllowedImageExtensions.
func HasImageExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

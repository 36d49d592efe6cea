package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageStore keeps tweet attachments and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Sniff checks the filename extension and the leading bytes of body and
// returns the content type plus a reader that replays the sniffed bytes.
func Sniff(filename string, body io.Reader) (string, io.Reader, error) {
	ext := strings.ToLower(path.Ext(filename))
	want, ok := allowedExtensions[ext]
	if !ok {
		return "", nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]

	if got := http.DetectContentType(head); got != want {
		return "", nil, fmt.Errorf("%w: content %q", ErrUnsupportedFormat, got)
	}

	// Seekable bodies are rewound rather than wrapped.
	if seeker, ok := body.(io.ReadSeeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err == nil {
			return want, seeker, nil
		}
	}
	return want, io.MultiReader(bytes.NewReader(head), body), nil
}

// Key builds an object key under prefix with the extension of the content type.
func Key(prefix, id, contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	return path.Join(prefix, id+ext)
}

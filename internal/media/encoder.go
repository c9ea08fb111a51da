// Package media prepares local files for submission to the detector service:
// size admission, content sniffing, and base64 data-URL encoding.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/synthscan/synthscan/internal/faults"
	"github.com/synthscan/synthscan/internal/models"
)

// MaxUploadBytes is the fixed admission ceiling for submitted files.
const MaxUploadBytes int64 = 20 << 20

// fallbackMIME labels content the sniffer does not recognize. Such media is
// still submitted; rejecting it is the detector's call, not ours.
const fallbackMIME = "application/octet-stream"

// Encoder turns a file on disk into an UploadedMedia ready for analysis.
type Encoder struct {
	maxBytes int64
}

// NewEncoder returns an Encoder with the given size ceiling in bytes.
// A non-positive limit selects MaxUploadBytes.
func NewEncoder(maxBytes int64) *Encoder {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &Encoder{maxBytes: maxBytes}
}

// Encode reads the file at path and produces its data-URL representation.
//
// The size ceiling is enforced from file metadata before any content is read,
// so an oversized file is rejected without the cost of reading it. Read
// problems and oversize are distinct failures: faults.ErrReadFailure wraps
// the former, faults.ErrFileTooLarge the latter.
func (e *Encoder) Encode(ctx context.Context, path string) (*models.UploadedMedia, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat: %v", faults.ErrReadFailure, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", faults.ErrReadFailure, path)
	}
	if info.Size() > e.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes over the %d byte limit", faults.ErrFileTooLarge, info.Size(), e.maxBytes)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", faults.ErrReadFailure, err)
	}
	// The file may have grown between stat and read.
	if int64(len(raw)) > e.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes over the %d byte limit", faults.ErrFileTooLarge, len(raw), e.maxBytes)
	}

	mime, ok := DetectMIME(raw)
	if !ok {
		mime = fallbackMIME
	}

	preview := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)

	// The content type and payload handed to the detector are read back out
	// of the envelope, so the three fields can never drift apart.
	contentType, payload, err := ParseDataURL(preview)
	if err != nil {
		return nil, err
	}

	return &models.UploadedMedia{
		FileName:    filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
		Preview:     preview,
		Payload:     payload,
	}, nil
}

// ParseDataURL splits a "data:<mime>;base64,<payload>" string into its MIME
// type and base64 payload.
func ParseDataURL(dataURL string) (mime, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", fmt.Errorf("not a data URL")
	}
	mime, payload, ok = strings.Cut(rest, ";base64,")
	if !ok || mime == "" {
		return "", "", fmt.Errorf("not a base64 data URL")
	}
	return mime, payload, nil
}

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want string
		ok   bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "image/jpeg", true},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, "image/png", true},
		{"gif87", []byte("GIF87a......"), "image/gif", true},
		{"gif89", []byte("GIF89a......"), "image/gif", true},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), "image/webp", true},
		{"avi", []byte("RIFF\x10\x00\x00\x00AVI LIST"), "video/x-msvideo", true},
		{"webm", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42}, "video/webm", true},
		{"avif", []byte("\x00\x00\x00\x1cftypavif....."), "image/avif", true},
		{"mp4 isom", []byte("\x00\x00\x00\x18ftypisom....."), "video/mp4", true},
		{"mp4 mp42", []byte("\x00\x00\x00\x18ftypmp42....."), "video/mp4", true},
		{"quicktime", []byte("\x00\x00\x00\x14ftypqt  ....."), "video/quicktime", true},
		{"unknown brand", []byte("\x00\x00\x00\x14ftypzzzz....."), "", false},
		{"plain text", []byte("hello world, definitely not media"), "", false},
		{"empty", nil, "", false},
		{"short jpeg prefix", []byte{0xFF, 0xD8}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, ok := DetectMIME(tt.head)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, mime)
		})
	}
}

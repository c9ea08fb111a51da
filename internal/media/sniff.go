package media

import "bytes"

// MIME detection from leading file bytes. Extensions are never consulted:
// the detector service cares about what the bytes are, not what the file is
// called.

func isJPEG(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF
}

func isPNG(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A})
}

func isGIF(b []byte) bool {
	return bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a"))
}

func isRIFF(b []byte, kind string) bool {
	return len(b) >= 12 && bytes.HasPrefix(b, []byte("RIFF")) && string(b[8:12]) == kind
}

// ftypBrand returns the ISO base media major brand ("avif", "qt  ", ...) or
// "" when b is not an ISO container.
func ftypBrand(b []byte) string {
	if len(b) >= 12 && string(b[4:8]) == "ftyp" {
		return string(b[8:12])
	}
	return ""
}

func isEBML(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0x1A, 0x45, 0xDF, 0xA3})
}

var mp4Brands = map[string]bool{
	"isom": true,
	"iso2": true,
	"iso5": true,
	"mp41": true,
	"mp42": true,
	"avc1": true,
	"dash": true,
	"M4V ": true,
}

// DetectMIME sniffs the MIME type from the head of a file. It recognizes the
// image and video containers the detector service accepts; ok is false for
// anything else.
func DetectMIME(head []byte) (mime string, ok bool) {
	switch {
	case isJPEG(head):
		return "image/jpeg", true
	case isPNG(head):
		return "image/png", true
	case isGIF(head):
		return "image/gif", true
	case isRIFF(head, "WEBP"):
		return "image/webp", true
	case isRIFF(head, "AVI "):
		return "video/x-msvideo", true
	case isEBML(head):
		return "video/webm", true
	}

	switch brand := ftypBrand(head); {
	case brand == "avif" || brand == "avis":
		return "image/avif", true
	case brand == "qt  ":
		return "video/quicktime", true
	case mp4Brands[brand]:
		return "video/mp4", true
	}

	return "", false
}

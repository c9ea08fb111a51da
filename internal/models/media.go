package models

// UploadedMedia describes a media file prepared for analysis.
//
// Preview is a full data URL ("data:<mime>;base64,<payload>") suitable for
// rendering or archiving; Payload is the same base64 body without the
// envelope prefix, which is what the detector service consumes. The two
// always describe the same bytes.
type UploadedMedia struct {
	// FileName is the base name of the submitted file.
	FileName string

	// Size is the on-disk size in bytes. Zero for media reconstructed from
	// an archived record, where the original file is no longer available.
	Size int64

	// ContentType is the MIME type declared by the Preview envelope.
	ContentType string

	// Preview is the complete data URL representation.
	Preview string

	// Payload is the base64 body of Preview, without the envelope prefix.
	Payload string
}

// IsVideo reports whether the media carries a video MIME type.
func (m *UploadedMedia) IsVideo() bool {
	return len(m.ContentType) > 6 && m.ContentType[:6] == "video/"
}

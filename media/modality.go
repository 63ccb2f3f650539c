// Package media maps uploaded bytes onto a content modality so the caller
// knows which extraction service (OCR, transcription) to route them through.
package media

import (
	"strings"

	"feedwatch/domain"

	"github.com/gabriel-vasile/mimetype"
)

// DetectModality sniffs the magic bytes of an upload. Anything that is not
// clearly image, audio or video is treated as plain text; detection never
// fails.
func DetectModality(data []byte) domain.Modality {
	mt := mimetype.Detect(data)
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		return domain.ImageModality
	case strings.HasPrefix(mt.String(), "audio/"):
		return domain.AudioModality
	case strings.HasPrefix(mt.String(), "video/"):
		return domain.VideoModality
	default:
		return domain.TextModality
	}
}

package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultBitrate is the default bitrate for audio conversion
const DefaultBitrate = "192k"

// VideoExtension is the container extension the converter accepts as input
const VideoExtension = ".mp4"

// ConversionRequest represents a request to convert a video file to audio
type ConversionRequest struct {
	SourcePath string
	Bitrate    string
}

// NewConversionRequest creates a new ConversionRequest with validation
func NewConversionRequest(sourcePath, bitrate string) (*ConversionRequest, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source video path is required")
	}

	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	return &ConversionRequest{
		SourcePath: sourcePath,
		Bitrate:    bitrate,
	}, nil
}

// OutputPath returns the audio output path: the source path with its
// extension replaced by .mp3
func (r *ConversionRequest) OutputPath() string {
	ext := filepath.Ext(r.SourcePath)
	return strings.TrimSuffix(r.SourcePath, ext) + ".mp3"
}

// IsVideo reports whether the given path has the supported video extension
func IsVideo(path string) bool {
	return strings.EqualFold(filepath.Ext(path), VideoExtension)
}

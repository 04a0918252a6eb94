package media

import "context"

// AudioConverter defines the interface for video-to-audio conversion
// This is a port that can be implemented by different infrastructure adapters
type AudioConverter interface {
	// Convert transcodes the source video according to the request and saves to outputPath
	Convert(ctx context.Context, req *ConversionRequest, outputPath string) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// DurationProber reports the duration of a media file
type DurationProber interface {
	// Duration returns the duration of the media file in seconds
	Duration(ctx context.Context, path string) (float64, error)
}

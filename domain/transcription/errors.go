package transcription

import "errors"

var (
	// ErrNoResult is returned when the service response contains no entry
	// for the requested object URI
	ErrNoResult = errors.New("recognition response contains no result for the requested uri")

	// ErrEmptyTranscript is returned when recognition completed but produced
	// no transcript alternatives
	ErrEmptyTranscript = errors.New("recognition produced no transcript")
)

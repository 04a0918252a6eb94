package transcription

import "context"

// Recognizer defines the interface for speech recognition services
// This is a port that can be implemented by different infrastructure adapters
type Recognizer interface {
	// Recognize submits the request and blocks until the service has
	// finished processing the audio, returning the transcript
	Recognize(ctx context.Context, req *Request) (*Result, error)
}

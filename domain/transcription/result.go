package transcription

import "strings"

// Result holds the transcript segments returned by the recognition service,
// in the order the service produced them
type Result struct {
	Segments []string
}

// Text returns the segments joined by newlines. The pipeline writes this
// value to the output file byte-for-byte.
func (r *Result) Text() string {
	return strings.Join(r.Segments, "\n")
}

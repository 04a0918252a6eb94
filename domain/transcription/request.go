package transcription

import "fmt"

// Default recognition settings used when the caller does not override them
const (
	// DefaultModel is the recognition model used when none is configured
	DefaultModel = "long"

	// DefaultLocation is the service location hosting the recognizer
	DefaultLocation = "global"
)

// DefaultLanguageCodes returns the language codes used when none are configured
func DefaultLanguageCodes() []string {
	return []string{"ru-RU"}
}

// Request represents a request to transcribe an uploaded audio object
type Request struct {
	URI           string   // gs:// reference to the audio object
	ProjectID     string   // Google Cloud project owning the recognizer
	Location      string   // Service location (e.g. "global")
	Model         string   // Recognition model name
	LanguageCodes []string // Expected languages of the audio
}

// NewRequest creates a new Request with validation and defaults applied
func NewRequest(uri, projectID string) (*Request, error) {
	if uri == "" {
		return nil, fmt.Errorf("object uri is required")
	}
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	return &Request{
		URI:           uri,
		ProjectID:     projectID,
		Location:      DefaultLocation,
		Model:         DefaultModel,
		LanguageCodes: DefaultLanguageCodes(),
	}, nil
}

// Recognizer returns the fully qualified recognizer resource name
func (r *Request) Recognizer() string {
	return fmt.Sprintf("projects/%s/locations/%s/recognizers/_", r.ProjectID, r.Location)
}

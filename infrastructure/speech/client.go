package speech

import (
	"context"
	"fmt"
	"os"

	speechv2 "cloud.google.com/go/speech/apiv2"
	"cloud.google.com/go/speech/apiv2/speechpb"

	"github.com/nprime496/gcp-audio/domain/transcription"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// cloudPlatformScope is the OAuth scope required by the Speech-to-Text API
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// BatchAPI defines the slice of the Speech-to-Text v2 API used by the client
// This allows mocking the API in tests
type BatchAPI interface {
	// BatchRecognize submits the request and blocks until the long-running
	// operation completes, returning the final response
	BatchRecognize(ctx context.Context, req *speechpb.BatchRecognizeRequest) (*speechpb.BatchRecognizeResponse, error)
}

// GoogleSpeechService is the production implementation using the Speech-to-Text v2 API
type GoogleSpeechService struct {
	client *speechv2.Client
}

// BatchRecognize submits the batch request and waits for the operation result
func (s *GoogleSpeechService) BatchRecognize(ctx context.Context, req *speechpb.BatchRecognizeRequest) (*speechpb.BatchRecognizeResponse, error) {
	op, err := s.client.BatchRecognize(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

// Client implements transcription.Recognizer using Speech-to-Text v2
// batch recognition with an inline response
type Client struct {
	api BatchAPI
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithBatchAPI sets a custom batch API (for testing)
func WithBatchAPI(api BatchAPI) ClientOption {
	return func(c *Client) {
		c.api = api
	}
}

// NewClient creates a new Speech-to-Text client
// If no options are provided, it initializes a real Speech-to-Text service
func NewClient(ctx context.Context, credentialsPath string, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	// If no custom batch API was provided, create a real one
	if c.api == nil {
		api, err := newGoogleSpeechService(ctx, credentialsPath)
		if err != nil {
			return nil, err
		}
		c.api = api
	}

	return c, nil
}

// newGoogleSpeechService creates a production Speech-to-Text service
// An empty credentialsPath falls back to application default credentials
func newGoogleSpeechService(ctx context.Context, credentialsPath string) (*GoogleSpeechService, error) {
	var clientOpts []option.ClientOption

	if credentialsPath != "" {
		b, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}

		creds, err := google.CredentialsFromJSON(ctx, b, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}

		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}

	client, err := speechv2.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create speech client: %w", err)
	}

	return &GoogleSpeechService{client: client}, nil
}

// Recognize implements transcription.Recognizer
func (c *Client) Recognize(ctx context.Context, req *transcription.Request) (*transcription.Result, error) {
	batchReq := &speechpb.BatchRecognizeRequest{
		Recognizer: req.Recognizer(),
		Config: &speechpb.RecognitionConfig{
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			LanguageCodes: req.LanguageCodes,
			Model:         req.Model,
		},
		Files: []*speechpb.BatchRecognizeFileMetadata{
			{
				AudioSource: &speechpb.BatchRecognizeFileMetadata_Uri{Uri: req.URI},
			},
		},
		RecognitionOutputConfig: &speechpb.RecognitionOutputConfig{
			Output: &speechpb.RecognitionOutputConfig_InlineResponseConfig{
				InlineResponseConfig: &speechpb.InlineOutputConfig{},
			},
		},
	}

	resp, err := c.api.BatchRecognize(ctx, batchReq)
	if err != nil {
		return nil, fmt.Errorf("batch recognition failed: %w", err)
	}

	fileResult, ok := resp.GetResults()[req.URI]
	if !ok {
		return nil, fmt.Errorf("%w: %s", transcription.ErrNoResult, req.URI)
	}
	if fileResult.GetError() != nil {
		return nil, fmt.Errorf("recognition failed for %s: %s", req.URI, fileResult.GetError().GetMessage())
	}

	var segments []string
	for _, r := range fileResult.GetTranscript().GetResults() {
		alternatives := r.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		segments = append(segments, alternatives[0].GetTranscript())
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s", transcription.ErrEmptyTranscript, req.URI)
	}

	return &transcription.Result{Segments: segments}, nil
}

// Ensure Client implements transcription.Recognizer
var _ transcription.Recognizer = (*Client)(nil)

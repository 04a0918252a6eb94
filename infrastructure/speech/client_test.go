package speech

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/speech/apiv2/speechpb"

	"github.com/nprime496/gcp-audio/domain/transcription"

	statuspb "google.golang.org/genproto/googleapis/rpc/status"
)

// fakeBatchAPI records requests and returns configured responses
type fakeBatchAPI struct {
	requests []*speechpb.BatchRecognizeRequest
	response *speechpb.BatchRecognizeResponse
	err      error
}

func (f *fakeBatchAPI) BatchRecognize(ctx context.Context, req *speechpb.BatchRecognizeRequest) (*speechpb.BatchRecognizeResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// inlineResponse builds a response carrying the given transcripts for uri
func inlineResponse(uri string, transcripts ...string) *speechpb.BatchRecognizeResponse {
	var results []*speechpb.SpeechRecognitionResult
	for _, tr := range transcripts {
		results = append(results, &speechpb.SpeechRecognitionResult{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: tr},
			},
		})
	}

	return &speechpb.BatchRecognizeResponse{
		Results: map[string]*speechpb.BatchRecognizeFileResult{
			uri: {
				Transcript: &speechpb.BatchRecognizeResults{Results: results},
			},
		},
	}
}

func newTestRequest(t *testing.T, uri string) *transcription.Request {
	t.Helper()
	req, err := transcription.NewRequest(uri, "my-project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestClient_Recognize(t *testing.T) {
	uri := "gs://test-bucket/sample.mp3"
	api := &fakeBatchAPI{response: inlineResponse(uri, "hello", "world")}
	client, err := NewClient(context.Background(), "", WithBatchAPI(api))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	result, err := client.Recognize(context.Background(), newTestRequest(t, uri))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if got := result.Text(); got != "hello\nworld" {
		t.Errorf("Text() = %q, want %q", got, "hello\nworld")
	}
}

func TestClient_RecognizeRequestShape(t *testing.T) {
	uri := "gs://test-bucket/sample.mp3"
	api := &fakeBatchAPI{response: inlineResponse(uri, "hello")}
	client, _ := NewClient(context.Background(), "", WithBatchAPI(api))

	req := newTestRequest(t, uri)
	req.Model = "chirp"
	req.LanguageCodes = []string{"en-US"}

	if _, err := client.Recognize(context.Background(), req); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if len(api.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(api.requests))
	}
	sent := api.requests[0]

	if want := "projects/my-project/locations/global/recognizers/_"; sent.GetRecognizer() != want {
		t.Errorf("Recognizer = %q, want %q", sent.GetRecognizer(), want)
	}
	if sent.GetConfig().GetModel() != "chirp" {
		t.Errorf("Model = %q, want %q", sent.GetConfig().GetModel(), "chirp")
	}
	if codes := sent.GetConfig().GetLanguageCodes(); len(codes) != 1 || codes[0] != "en-US" {
		t.Errorf("LanguageCodes = %v, want [en-US]", codes)
	}
	if sent.GetConfig().GetAutoDecodingConfig() == nil {
		t.Error("expected auto decoding config to be set")
	}
	if len(sent.GetFiles()) != 1 || sent.GetFiles()[0].GetUri() != uri {
		t.Errorf("Files = %v, want single file with uri %q", sent.GetFiles(), uri)
	}
	if sent.GetRecognitionOutputConfig().GetInlineResponseConfig() == nil {
		t.Error("expected inline response config to be set")
	}
}

func TestClient_RecognizeServiceError(t *testing.T) {
	api := &fakeBatchAPI{err: errors.New("quota exceeded")}
	client, _ := NewClient(context.Background(), "", WithBatchAPI(api))

	if _, err := client.Recognize(context.Background(), newTestRequest(t, "gs://b/a.mp3")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestClient_RecognizeMissingFileResult(t *testing.T) {
	api := &fakeBatchAPI{response: inlineResponse("gs://b/other.mp3", "text")}
	client, _ := NewClient(context.Background(), "", WithBatchAPI(api))

	_, err := client.Recognize(context.Background(), newTestRequest(t, "gs://b/a.mp3"))
	if !errors.Is(err, transcription.ErrNoResult) {
		t.Errorf("error = %v, want ErrNoResult", err)
	}
}

func TestClient_RecognizeFileError(t *testing.T) {
	uri := "gs://b/a.mp3"
	api := &fakeBatchAPI{
		response: &speechpb.BatchRecognizeResponse{
			Results: map[string]*speechpb.BatchRecognizeFileResult{
				uri: {
					Error: &statuspb.Status{Code: 3, Message: "unsupported audio encoding"},
				},
			},
		},
	}
	client, _ := NewClient(context.Background(), "", WithBatchAPI(api))

	if _, err := client.Recognize(context.Background(), newTestRequest(t, uri)); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestClient_RecognizeEmptyTranscript(t *testing.T) {
	uri := "gs://b/a.mp3"
	api := &fakeBatchAPI{response: inlineResponse(uri)}
	client, _ := NewClient(context.Background(), "", WithBatchAPI(api))

	_, err := client.Recognize(context.Background(), newTestRequest(t, uri))
	if !errors.Is(err, transcription.ErrEmptyTranscript) {
		t.Errorf("error = %v, want ErrEmptyTranscript", err)
	}
}

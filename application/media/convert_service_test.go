package media

import (
	"context"
	"errors"
	"testing"

	dommedia "github.com/nprime496/gcp-audio/domain/media"
)

// mockConverter implements media.AudioConverter for testing
type mockConverter struct {
	calls      []convertCall
	shouldFail bool
	failError  error
}

type convertCall struct {
	req        *dommedia.ConversionRequest
	outputPath string
}

func (m *mockConverter) Convert(ctx context.Context, req *dommedia.ConversionRequest, outputPath string) error {
	if m.shouldFail {
		return m.failError
	}
	m.calls = append(m.calls, convertCall{req: req, outputPath: outputPath})
	return nil
}

// mockFileChecker implements media.FileChecker for testing
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

func TestConvertService_Convert(t *testing.T) {
	converter := &mockConverter{}
	checker := &mockFileChecker{existingFiles: map[string]bool{"sample.mp4": true}}
	service := NewConvertService(converter, checker, "")

	result, err := service.Convert(context.Background(), ConvertInput{SourcePath: "sample.mp4"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if result.OutputPath != "sample.mp3" {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, "sample.mp3")
	}
	if len(converter.calls) != 1 {
		t.Fatalf("expected 1 conversion, got %d", len(converter.calls))
	}
	if converter.calls[0].req.Bitrate != dommedia.DefaultBitrate {
		t.Errorf("Bitrate = %q, want default %q", converter.calls[0].req.Bitrate, dommedia.DefaultBitrate)
	}
}

func TestConvertService_ConvertExplicitOutput(t *testing.T) {
	converter := &mockConverter{}
	checker := &mockFileChecker{existingFiles: map[string]bool{"sample.mp4": true}}
	service := NewConvertService(converter, checker, "128k")

	result, err := service.Convert(context.Background(), ConvertInput{
		SourcePath: "sample.mp4",
		OutputPath: "/tmp/audio.mp3",
		Bitrate:    "64k",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if result.OutputPath != "/tmp/audio.mp3" {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, "/tmp/audio.mp3")
	}
	if converter.calls[0].req.Bitrate != "64k" {
		t.Errorf("Bitrate = %q, want %q", converter.calls[0].req.Bitrate, "64k")
	}
}

func TestConvertService_ConvertMissingSource(t *testing.T) {
	converter := &mockConverter{}
	checker := &mockFileChecker{existingFiles: map[string]bool{}}
	service := NewConvertService(converter, checker, "")

	if _, err := service.Convert(context.Background(), ConvertInput{SourcePath: "missing.mp4"}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(converter.calls) != 0 {
		t.Errorf("converter was called for a missing source")
	}
}

func TestConvertService_ConvertFailure(t *testing.T) {
	converter := &mockConverter{shouldFail: true, failError: errors.New("ffmpeg exited with status 1")}
	checker := &mockFileChecker{existingFiles: map[string]bool{"sample.mp4": true}}
	service := NewConvertService(converter, checker, "")

	if _, err := service.Convert(context.Background(), ConvertInput{SourcePath: "sample.mp4"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

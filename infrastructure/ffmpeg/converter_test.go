package ffmpeg

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nprime496/gcp-audio/domain/media"
)

// fakeRunner records invocations and returns configured results
type fakeRunner struct {
	runCalls    [][]string
	outputCalls [][]string
	runErr      error
	output      []byte
	outputErr   error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.runCalls = append(f.runCalls, append([]string{name}, args...))
	return f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.outputCalls = append(f.outputCalls, append([]string{name}, args...))
	return f.output, f.outputErr
}

func TestConverter_Convert(t *testing.T) {
	runner := &fakeRunner{}
	converter := NewConverter(WithCommandRunner(runner))

	req, err := media.NewConversionRequest("sample.mp4", "128k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := converter.Convert(context.Background(), req, "sample.mp3"); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := []string{
		"ffmpeg",
		"-i", "sample.mp4",
		"-vn",
		"-acodec", "libmp3lame",
		"-ab", "128k",
		"-y",
		"sample.mp3",
	}
	if len(runner.runCalls) != 1 {
		t.Fatalf("expected 1 ffmpeg invocation, got %d", len(runner.runCalls))
	}
	if !reflect.DeepEqual(runner.runCalls[0], want) {
		t.Errorf("ffmpeg args = %v, want %v", runner.runCalls[0], want)
	}
}

func TestConverter_ConvertFailure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1")}
	converter := NewConverter(WithCommandRunner(runner))

	req, _ := media.NewConversionRequest("missing.mp4", "")
	err := converter.Convert(context.Background(), req, "missing.mp3")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestConverter_CustomFFmpegPath(t *testing.T) {
	runner := &fakeRunner{}
	converter := NewConverter(
		WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"),
		WithCommandRunner(runner),
	)

	req, _ := media.NewConversionRequest("sample.mp4", "")
	if err := converter.Convert(context.Background(), req, "sample.mp3"); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if runner.runCalls[0][0] != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg path = %q, want %q", runner.runCalls[0][0], "/opt/ffmpeg/bin/ffmpeg")
	}
}

func TestConverter_VerifyInstalled(t *testing.T) {
	tests := []struct {
		name    string
		runner  *fakeRunner
		wantErr bool
	}{
		{
			name:   "ffmpeg available",
			runner: &fakeRunner{output: []byte("ffmpeg version 6.0")},
		},
		{
			name:    "ffmpeg missing",
			runner:  &fakeRunner{outputErr: errors.New("executable file not found")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converter := NewConverter(WithCommandRunner(tt.runner))
			err := converter.VerifyInstalled(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyInstalled() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

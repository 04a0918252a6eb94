package media

import "testing"

func TestNewConversionRequest(t *testing.T) {
	tests := []struct {
		name        string
		sourcePath  string
		bitrate     string
		wantErr     bool
		wantBitrate string
	}{
		{
			name:        "valid request with explicit bitrate",
			sourcePath:  "/videos/talk.mp4",
			bitrate:     "128k",
			wantBitrate: "128k",
		},
		{
			name:        "empty bitrate uses default",
			sourcePath:  "/videos/talk.mp4",
			wantBitrate: DefaultBitrate,
		},
		{
			name:    "missing source path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewConversionRequest(tt.sourcePath, tt.bitrate)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Bitrate != tt.wantBitrate {
				t.Errorf("Bitrate = %q, want %q", req.Bitrate, tt.wantBitrate)
			}
		})
	}
}

func TestConversionRequest_OutputPath(t *testing.T) {
	tests := []struct {
		name       string
		sourcePath string
		want       string
	}{
		{"mp4 source", "/videos/talk.mp4", "/videos/talk.mp3"},
		{"uppercase extension", "/videos/TALK.MP4", "/videos/TALK.mp3"},
		{"no extension", "/videos/talk", "/videos/talk.mp3"},
		{"relative path", "sample.mp4", "sample.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ConversionRequest{SourcePath: tt.sourcePath}
			if got := req.OutputPath(); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"sample.mp4", true},
		{"SAMPLE.MP4", true},
		{"sample.mp3", false},
		{"sample", false},
		{"dir.mp4/sample.wav", false},
	}

	for _, tt := range tests {
		if got := IsVideo(tt.path); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

package media

import (
	"context"
	"fmt"

	"github.com/nprime496/gcp-audio/domain/media"
)

// ConvertResult contains the result of a conversion operation
type ConvertResult struct {
	OutputPath string
}

// ConvertService coordinates standalone conversion operations
type ConvertService struct {
	converter   media.AudioConverter
	fileChecker media.FileChecker
	bitrate     string
}

// NewConvertService creates a new ConvertService
func NewConvertService(converter media.AudioConverter, fileChecker media.FileChecker, bitrate string) *ConvertService {
	if bitrate == "" {
		bitrate = media.DefaultBitrate
	}
	return &ConvertService{
		converter:   converter,
		fileChecker: fileChecker,
		bitrate:     bitrate,
	}
}

// ConvertInput represents the input for a conversion operation
type ConvertInput struct {
	SourcePath string
	OutputPath string // Optional, defaults to the source path with .mp3
	Bitrate    string // Optional, uses service default if empty
}

// Convert converts a video file to audio according to the input parameters
func (s *ConvertService) Convert(ctx context.Context, input ConvertInput) (*ConvertResult, error) {
	// Verify source file exists
	if !s.fileChecker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source file does not exist: %s", input.SourcePath)
	}

	// Use service default bitrate if not specified
	bitrate := input.Bitrate
	if bitrate == "" {
		bitrate = s.bitrate
	}

	req, err := media.NewConversionRequest(input.SourcePath, bitrate)
	if err != nil {
		return nil, err
	}

	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = req.OutputPath()
	}

	if err := s.converter.Convert(ctx, req, outputPath); err != nil {
		return nil, err
	}

	return &ConvertResult{OutputPath: outputPath}, nil
}

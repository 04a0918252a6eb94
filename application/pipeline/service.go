package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/domain/storage"
	"github.com/nprime496/gcp-audio/domain/transcription"
)

// DefaultOutputFile is the transcript destination when none is configured
const DefaultOutputFile = "transcription.txt"

// Service orchestrates the convert, upload, transcribe and write stages
type Service struct {
	converter   media.AudioConverter
	uploader    storage.Uploader
	recognizer  transcription.Recognizer
	fileChecker media.FileChecker
	output      io.Writer
}

// NewService creates a new pipeline service
func NewService(
	converter media.AudioConverter,
	uploader storage.Uploader,
	recognizer transcription.Recognizer,
	fileChecker media.FileChecker,
	output io.Writer,
) *Service {
	if output == nil {
		output = io.Discard
	}
	return &Service{
		converter:   converter,
		uploader:    uploader,
		recognizer:  recognizer,
		fileChecker: fileChecker,
		output:      output,
	}
}

// Input contains all input parameters for one pipeline run
type Input struct {
	InputPath     string   // Source audio or video path
	OutputFile    string   // Transcript destination (default transcription.txt)
	Bucket        string   // Destination bucket name
	Model         string   // Recognition model (optional, config default otherwise)
	Convert       bool     // Force conversion before upload
	Bitrate       string   // Audio bitrate for conversion (optional)
	ProjectID     string   // Google Cloud project ID
	Location      string   // Recognizer location (optional)
	LanguageCodes []string // Expected languages (optional)
}

// Result contains the results of a successful pipeline run
type Result struct {
	AudioPath  string // Local audio artifact that was uploaded
	ObjectURI  string // gs:// reference of the uploaded object
	OutputFile string // Path the transcript was written to
	Transcript string // Transcript text, exactly as written
}

// NeedsConversion reports whether the input will be converted before upload:
// either the flag was set or the input has the supported video extension
func NeedsConversion(input Input) bool {
	return input.Convert || media.IsVideo(input.InputPath)
}

// Run executes the full pipeline. Any stage failure aborts the run; the
// output file is only written after transcription succeeded.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	// Stage 1: conversion
	audioPath := input.InputPath
	if NeedsConversion(input) {
		fmt.Fprintf(s.output, "[1/4] Converting %s to audio...\n", filepath.Base(input.InputPath))
		converted, err := s.convert(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("conversion failed: %w", err)
		}
		audioPath = converted
		fmt.Fprintf(s.output, "      Created: %s\n\n", audioPath)
	} else {
		fmt.Fprintf(s.output, "[1/4] Conversion not needed, input is audio\n\n")
	}

	// Stage 2: upload
	fmt.Fprintf(s.output, "[2/4] Uploading %s to bucket %s...\n", filepath.Base(audioPath), input.Bucket)
	uploadReq, err := storage.NewUploadRequest(audioPath, input.Bucket)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	ref, err := s.uploader.Upload(ctx, uploadReq)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Uploaded: %s\n\n", ref.URI())

	// Stage 3: transcription
	fmt.Fprintf(s.output, "[3/4] Transcribing %s...\n", ref.URI())
	recognizeReq, err := s.buildRecognizeRequest(ref.URI(), input)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	result, err := s.recognizer.Recognize(ctx, recognizeReq)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Received %d segment(s)\n\n", len(result.Segments))

	// Stage 4: write transcript
	outputFile := input.OutputFile
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}
	fmt.Fprintf(s.output, "[4/4] Writing transcript to %s...\n", outputFile)
	if err := os.WriteFile(outputFile, []byte(result.Text()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write transcript: %w", err)
	}

	return &Result{
		AudioPath:  audioPath,
		ObjectURI:  ref.URI(),
		OutputFile: outputFile,
		Transcript: result.Text(),
	}, nil
}

// validate checks all preconditions before any external call is made
func (s *Service) validate(input Input) error {
	if input.InputPath == "" {
		return fmt.Errorf("input file is required")
	}
	if input.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}
	if input.ProjectID == "" {
		return fmt.Errorf("project id is required")
	}
	if input.Convert && !media.IsVideo(input.InputPath) {
		return fmt.Errorf("--convert is set but %s does not have an %s extension", input.InputPath, media.VideoExtension)
	}
	if !s.fileChecker.Exists(input.InputPath) {
		return fmt.Errorf("input file does not exist: %s", input.InputPath)
	}
	return nil
}

// convert runs the conversion stage and returns the audio artifact path
func (s *Service) convert(ctx context.Context, input Input) (string, error) {
	req, err := media.NewConversionRequest(input.InputPath, input.Bitrate)
	if err != nil {
		return "", err
	}

	outputPath := req.OutputPath()
	if err := s.converter.Convert(ctx, req, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

// buildRecognizeRequest builds the recognition request, applying the
// input's optional overrides on top of the service defaults
func (s *Service) buildRecognizeRequest(uri string, input Input) (*transcription.Request, error) {
	req, err := transcription.NewRequest(uri, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.Model != "" {
		req.Model = input.Model
	}
	if input.Location != "" {
		req.Location = input.Location
	}
	if len(input.LanguageCodes) > 0 {
		req.LanguageCodes = input.LanguageCodes
	}

	return req, nil
}

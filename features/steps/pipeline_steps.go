//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apppipeline "github.com/nprime496/gcp-audio/application/pipeline"
	"github.com/nprime496/gcp-audio/cmd"
	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/domain/storage"
	"github.com/nprime496/gcp-audio/domain/transcription"

	"github.com/cucumber/godog"
)

// mockConverter records conversions for verification
type mockConverter struct {
	outputs    []string
	shouldFail bool
}

func (m *mockConverter) Convert(ctx context.Context, req *media.ConversionRequest, outputPath string) error {
	if m.shouldFail {
		return errors.New("ffmpeg exited with status 1")
	}
	m.outputs = append(m.outputs, outputPath)
	return nil
}

// mockUploader records upload requests for verification
type mockUploader struct {
	refs []*storage.ObjectRef
}

func (m *mockUploader) Upload(ctx context.Context, req *storage.UploadRequest) (*storage.ObjectRef, error) {
	ref := &storage.ObjectRef{Bucket: req.Bucket, Name: req.ObjectName()}
	m.refs = append(m.refs, ref)
	return ref, nil
}

// mockRecognizer returns a pre-seeded transcript
type mockRecognizer struct {
	segments []string
}

func (m *mockRecognizer) Recognize(ctx context.Context, req *transcription.Request) (*transcription.Result, error) {
	return &transcription.Result{Segments: m.segments}, nil
}

// mockFileChecker reports existence from a seeded map
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// pipelineContext holds test state for pipeline scenarios
type pipelineContext struct {
	converter  *mockConverter
	uploader   *mockUploader
	recognizer *mockRecognizer
	checker    *mockFileChecker
	output     *bytes.Buffer
	outputFile string
	err        error
}

// SharedPipelineContext is reset before each scenario via Before hook
var SharedPipelineContext *pipelineContext

func getPipelineContext() *pipelineContext {
	return SharedPipelineContext
}

func InitializePipelineScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "pipeline-feature")
		if err != nil {
			return c, err
		}
		SharedPipelineContext = &pipelineContext{
			converter:  &mockConverter{},
			uploader:   &mockUploader{},
			recognizer: &mockRecognizer{},
			checker:    &mockFileChecker{existingFiles: make(map[string]bool)},
			output:     &bytes.Buffer{},
			outputFile: filepath.Join(tempDir, "out.txt"),
		}
		return c, nil
	})
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedPipelineContext != nil {
			os.RemoveAll(filepath.Dir(SharedPipelineContext.outputFile))
		}
		return c, nil
	})

	ctx.Step(`^a source file "([^"]*)" exists$`, aSourceFileExists)
	ctx.Step(`^the recognition service returns "([^"]*)"$`, theRecognitionServiceReturns)
	ctx.Step(`^the converter fails$`, theConverterFails)
	ctx.Step(`^I run the pipeline for "([^"]*)" with conversion into bucket "([^"]*)"$`, iRunThePipelineWithConversion)
	ctx.Step(`^I run the pipeline for "([^"]*)" into bucket "([^"]*)"$`, iRunThePipeline)
	ctx.Step(`^I run the pipeline for "([^"]*)" without a bucket$`, iRunThePipelineWithoutABucket)
	ctx.Step(`^the pipeline succeeds$`, thePipelineSucceeds)
	ctx.Step(`^the pipeline fails$`, thePipelineFails)
	ctx.Step(`^the converter produced "([^"]*)"$`, theConverterProduced)
	ctx.Step(`^no conversion was performed$`, noConversionWasPerformed)
	ctx.Step(`^the uploaded object reference is "([^"]*)"$`, theUploadedObjectReferenceIs)
	ctx.Step(`^no upload was attempted$`, noUploadWasAttempted)
	ctx.Step(`^the output file contains exactly "([^"]*)"$`, theOutputFileContainsExactly)
	ctx.Step(`^no output file was written$`, noOutputFileWasWritten)
}

func aSourceFileExists(path string) error {
	getPipelineContext().checker.existingFiles[path] = true
	return nil
}

func theRecognitionServiceReturns(text string) error {
	getPipelineContext().recognizer.segments = []string{text}
	return nil
}

func theConverterFails() error {
	getPipelineContext().converter.shouldFail = true
	return nil
}

func runPipeline(inputPath, bucket string, convert bool) error {
	tc := getPipelineContext()
	tc.err = cmd.RunPipelineWithDependencies(
		context.Background(),
		tc.converter,
		tc.uploader,
		tc.recognizer,
		tc.checker,
		apppipeline.Input{
			InputPath:  inputPath,
			OutputFile: tc.outputFile,
			Bucket:     bucket,
			Convert:    convert,
			ProjectID:  "test-project",
		},
		tc.output,
	)
	return nil
}

func iRunThePipelineWithConversion(inputPath, bucket string) error {
	return runPipeline(inputPath, bucket, true)
}

func iRunThePipeline(inputPath, bucket string) error {
	return runPipeline(inputPath, bucket, false)
}

func iRunThePipelineWithoutABucket(inputPath string) error {
	return runPipeline(inputPath, "", false)
}

func thePipelineSucceeds() error {
	if err := getPipelineContext().err; err != nil {
		return fmt.Errorf("expected success, got error: %w", err)
	}
	return nil
}

func thePipelineFails() error {
	if getPipelineContext().err == nil {
		return fmt.Errorf("expected the pipeline to fail, but it succeeded")
	}
	return nil
}

func theConverterProduced(outputPath string) error {
	tc := getPipelineContext()
	for _, out := range tc.converter.outputs {
		if out == outputPath {
			return nil
		}
	}
	return fmt.Errorf("converter outputs %v do not include %q", tc.converter.outputs, outputPath)
}

func noConversionWasPerformed() error {
	tc := getPipelineContext()
	if len(tc.converter.outputs) != 0 {
		return fmt.Errorf("expected no conversions, got %v", tc.converter.outputs)
	}
	return nil
}

func theUploadedObjectReferenceIs(uri string) error {
	tc := getPipelineContext()
	for _, ref := range tc.uploader.refs {
		if ref.URI() == uri {
			return nil
		}
	}
	return fmt.Errorf("uploaded references %v do not include %q", tc.uploader.refs, uri)
}

func noUploadWasAttempted() error {
	tc := getPipelineContext()
	if len(tc.uploader.refs) != 0 {
		return fmt.Errorf("expected no uploads, got %v", tc.uploader.refs)
	}
	return nil
}

func theOutputFileContainsExactly(text string) error {
	tc := getPipelineContext()
	data, err := os.ReadFile(tc.outputFile)
	if err != nil {
		return fmt.Errorf("failed to read output file: %w", err)
	}
	if string(data) != text {
		return fmt.Errorf("output file contains %q, want %q", data, text)
	}
	return nil
}

func noOutputFileWasWritten() error {
	tc := getPipelineContext()
	if _, err := os.Stat(tc.outputFile); !os.IsNotExist(err) {
		return fmt.Errorf("output file %s should not exist", tc.outputFile)
	}
	return nil
}

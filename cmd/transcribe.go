package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	apppipeline "github.com/nprime496/gcp-audio/application/pipeline"
	"github.com/nprime496/gcp-audio/domain/transcription"
	"github.com/nprime496/gcp-audio/infrastructure/speech"

	"github.com/spf13/cobra"
)

var (
	transcribeOutputFile string
	transcribeModel      string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <gs://bucket/object>",
	Short: "Transcribe an already-uploaded audio object",
	Long: `Transcribe an audio object that already lives in Cloud Storage,
skipping the conversion and upload stages.

The command blocks until the batch recognition operation completes.

Example:
  gcp-audio transcribe gs://recordings/sample.mp3 --output_file=out.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringVar(&transcribeOutputFile, "output_file", "", "Output file for the transcript (default "+apppipeline.DefaultOutputFile+")")
	transcribeCmd.Flags().StringVar(&transcribeModel, "model", "", "Recognition model (default from config)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded; check config/config.yaml")
	}
	if cfg.Google.ProjectID == "" {
		return fmt.Errorf("project id is required; set PROJECT_ID or google.project_id in the config")
	}

	req, err := transcription.NewRequest(args[0], cfg.Google.ProjectID)
	if err != nil {
		return err
	}
	if transcribeModel != "" {
		req.Model = transcribeModel
	} else if cfg.Transcription.Model != "" {
		req.Model = cfg.Transcription.Model
	}
	if cfg.Transcription.Location != "" {
		req.Location = cfg.Transcription.Location
	}
	if len(cfg.Transcription.LanguageCodes) > 0 {
		req.LanguageCodes = cfg.Transcription.LanguageCodes
	}

	ctx := cmd.Context()
	recognizer, err := speech.NewClient(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to create speech client: %w", err)
	}

	outputFile := transcribeOutputFile
	if outputFile == "" {
		outputFile = apppipeline.DefaultOutputFile
	}

	return RunTranscribeWithDependencies(ctx, recognizer, req, outputFile, os.Stdout)
}

// RunTranscribeWithDependencies runs the transcribe command with injected dependencies (for testing)
func RunTranscribeWithDependencies(
	ctx context.Context,
	recognizer transcription.Recognizer,
	req *transcription.Request,
	outputFile string,
	output io.Writer,
) error {
	fmt.Fprintf(output, "Transcribing %s...\n", req.URI)
	fmt.Fprintln(output, "Waiting for the recognition operation to complete...")

	result, err := recognizer.Recognize(ctx, req)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	if err := os.WriteFile(outputFile, []byte(result.Text()), 0644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	fmt.Fprintf(output, "Transcript written to %s\n", outputFile)
	return nil
}

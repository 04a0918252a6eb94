package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	apppipeline "github.com/nprime496/gcp-audio/application/pipeline"
	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/domain/storage"
	"github.com/nprime496/gcp-audio/domain/transcription"
	"github.com/nprime496/gcp-audio/infrastructure/ffmpeg"
	"github.com/nprime496/gcp-audio/infrastructure/filesystem"
	"github.com/nprime496/gcp-audio/infrastructure/gcs"
	"github.com/nprime496/gcp-audio/infrastructure/speech"

	"github.com/spf13/cobra"
)

var (
	runOutputFile string
	runBucket     string
	runModel      string
	runConvertFlag bool
	runBitrate    string
)

var runCmd = &cobra.Command{
	Use:   "run <input_file>",
	Short: "Convert, upload and transcribe a media file",
	Long: `Run the full transcription pipeline on an audio or video file.

A video input (or --convert) is first converted to MP3 with ffmpeg. The
audio is uploaded to the configured Cloud Storage bucket and submitted to
the Speech-to-Text batch API; the transcript is written to the output file.

The uploaded object is left in the bucket after the run.

Example:
  gcp-audio run sample.mp4 --convert --bucket=test-bucket --output_file=out.txt
  gcp-audio run lecture.mp3 --bucket=recordings --model=long`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runOutputFile, "output_file", "", "Output file for the transcript (default "+apppipeline.DefaultOutputFile+")")
	runCmd.Flags().StringVar(&runBucket, "bucket", "", "Bucket name for uploading (required unless set in config)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Recognition model (default from config)")
	runCmd.Flags().BoolVar(&runConvertFlag, "convert", false, "Convert the input from MP4 to MP3 before uploading")
	runCmd.Flags().StringVar(&runBitrate, "bitrate", "", "Audio bitrate for conversion (default from config or 192k)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded; check config/config.yaml")
	}

	// Resolve required settings before touching any external service
	bucket := runBucket
	if bucket == "" {
		bucket = cfg.Google.Bucket
	}
	if bucket == "" {
		return fmt.Errorf("bucket name is required; pass --bucket or set google.bucket in the config")
	}
	if cfg.Google.ProjectID == "" {
		return fmt.Errorf("project id is required; set PROJECT_ID or google.project_id in the config")
	}

	model := runModel
	if model == "" {
		model = cfg.Transcription.Model
	}

	bitrate := runBitrate
	if bitrate == "" {
		bitrate = cfg.Audio.Bitrate
	}

	input := apppipeline.Input{
		InputPath:     args[0],
		OutputFile:    runOutputFile,
		Bucket:        bucket,
		Model:         model,
		Convert:       runConvertFlag,
		Bitrate:       bitrate,
		ProjectID:     cfg.Google.ProjectID,
		Location:      cfg.Transcription.Location,
		LanguageCodes: cfg.Transcription.LanguageCodes,
	}

	ctx := cmd.Context()

	uploader, err := gcs.NewUploader(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	recognizer, err := speech.NewClient(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to create speech client: %w", err)
	}

	return RunPipelineWithDependencies(
		ctx,
		ffmpeg.NewConverter(),
		uploader,
		recognizer,
		filesystem.NewChecker(),
		input,
		os.Stdout,
	)
}

// RunPipelineWithDependencies runs the pipeline with injected dependencies (for testing)
func RunPipelineWithDependencies(
	ctx context.Context,
	converter media.AudioConverter,
	uploader storage.Uploader,
	recognizer transcription.Recognizer,
	fileChecker media.FileChecker,
	input apppipeline.Input,
	output io.Writer,
) error {
	// Verify ffmpeg is available if the conversion stage will run
	if apppipeline.NeedsConversion(input) {
		if verifiable, ok := converter.(interface{ VerifyInstalled(context.Context) error }); ok {
			verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
				return fmt.Errorf("ffmpeg verification failed: %w", err)
			}
		}
	}

	service := apppipeline.NewService(converter, uploader, recognizer, fileChecker, output)

	result, err := service.Run(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Transcript written to %s\n", result.OutputFile)
	return nil
}

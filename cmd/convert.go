package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appmedia "github.com/nprime496/gcp-audio/application/media"
	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/infrastructure/ffmpeg"
	"github.com/nprime496/gcp-audio/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	convertOutputPath string
	convertBitrate    string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_file>",
	Short: "Convert a video file to MP3 audio",
	Long: `Convert a video file to MP3 audio with ffmpeg, without uploading.

By default the output is written next to the input with the extension
replaced by .mp3.

Example:
  gcp-audio convert sample.mp4
  gcp-audio convert sample.mp4 --output /tmp/audio.mp3 --bitrate 128k`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertOutputPath, "output", "", "Output audio path (default is the input with .mp3)")
	convertCmd.Flags().StringVar(&convertBitrate, "bitrate", "", "Audio bitrate (default from config or 192k)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	// Determine bitrate
	bitrate := convertBitrate
	if bitrate == "" && GetConfig() != nil {
		bitrate = GetConfig().Audio.Bitrate
	}
	if bitrate == "" {
		bitrate = media.DefaultBitrate
	}

	return RunConvertWithDependencies(
		cmd.Context(),
		ffmpeg.NewConverter(),
		ffmpeg.NewProber(),
		filesystem.NewChecker(),
		args[0],
		convertOutputPath,
		bitrate,
		os.Stdout,
	)
}

// RunConvertWithDependencies runs the convert command with injected dependencies (for testing)
func RunConvertWithDependencies(
	ctx context.Context,
	converter media.AudioConverter,
	prober media.DurationProber,
	fileChecker media.FileChecker,
	sourcePath string,
	outputPath string,
	bitrate string,
	output io.Writer,
) error {
	// Verify ffmpeg is available if the converter supports it
	if verifiable, ok := converter.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	service := appmedia.NewConvertService(converter, fileChecker, bitrate)

	fmt.Fprintf(output, "Converting %s with bitrate %s...\n", sourcePath, bitrate)

	result, err := service.Convert(ctx, appmedia.ConvertInput{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Bitrate:    bitrate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s\n", result.OutputPath)

	// Duration is informational; probing failure does not fail the command
	if seconds, err := prober.Duration(ctx, result.OutputPath); err == nil {
		fmt.Fprintf(output, "Duration: %s\n", time.Duration(seconds*float64(time.Second)).Round(time.Second))
	}

	return nil
}

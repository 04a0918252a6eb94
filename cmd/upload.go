package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nprime496/gcp-audio/domain/storage"
	"github.com/nprime496/gcp-audio/infrastructure/filesystem"
	"github.com/nprime496/gcp-audio/infrastructure/gcs"

	"github.com/spf13/cobra"
)

var uploadBucket string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an audio file to a Cloud Storage bucket",
	Long: `Upload a local audio file to a Cloud Storage bucket and print the
resulting gs:// object reference.

An object that already exists under the same name is reused. The uploaded
object is not deleted afterwards.

Example:
  gcp-audio upload sample.mp3 --bucket=recordings`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "", "Bucket name for uploading (required unless set in config)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded; check config/config.yaml")
	}

	bucket := uploadBucket
	if bucket == "" {
		bucket = cfg.Google.Bucket
	}
	if bucket == "" {
		return fmt.Errorf("bucket name is required; pass --bucket or set google.bucket in the config")
	}

	ctx := cmd.Context()
	uploader, err := gcs.NewUploader(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	return RunUploadWithDependencies(ctx, uploader, args[0], bucket, os.Stdout)
}

// RunUploadWithDependencies runs the upload command with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	uploader storage.Uploader,
	localPath string,
	bucket string,
	output io.Writer,
) error {
	req, err := storage.NewUploadRequest(localPath, bucket)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Uploading %s to bucket %s...\n", filepath.Base(localPath), bucket)

	ref, err := uploader.Upload(ctx, req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	sizer := filesystem.NewChecker()
	fmt.Fprintf(output, "Uploaded successfully!\n")
	fmt.Fprintf(output, "  Size: %.2f MB\n", float64(sizer.Size(localPath))/1024/1024)
	fmt.Fprintf(output, "  Object URI: %s\n", ref.URI())
	return nil
}

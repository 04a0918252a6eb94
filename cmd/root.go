package cmd

import (
	"fmt"
	"os"

	"github.com/nprime496/gcp-audio/infrastructure/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gcp-audio",
	Short: "Transcribe audio and video files with Google Cloud Speech-to-Text",
	Long: `gcp-audio turns a local media file into a text transcript:

  - Convert video to MP3 audio with ffmpeg
  - Upload the audio to a Cloud Storage bucket
  - Transcribe the uploaded object with the Speech-to-Text batch API
  - Write the transcript to a local file

Example:
  gcp-audio run sample.mp4 --convert --bucket=test-bucket --output_file=out.txt`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	// Environment variables may come from a local .env file
	_ = godotenv.Load()

	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// A broken config file is only fatal for commands that need it;
		// those commands check and error appropriately
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

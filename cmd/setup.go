package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/domain/transcription"
	"github.com/nprime496/gcp-audio/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up your configuration file with
the Google Cloud project, credentials, bucket and recognition settings.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to gcp-audio setup!")
	fmt.Println()

	cfg := &config.Config{}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}

	if err := promptTranscription(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Save configuration
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	projectID, err := prompter.Input("Google Cloud project ID:", os.Getenv("PROJECT_ID"))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.ProjectID = projectID

	credentialsFile, err := prompter.Input("Service account credentials file:", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.CredentialsFile = credentialsFile

	bucket, err := prompter.Input("Default upload bucket:", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.Bucket = bucket

	return nil
}

func promptAudio(prompter Prompter, cfg *config.Config) error {
	bitrate, err := prompter.Input("Audio bitrate for conversion:", media.DefaultBitrate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Audio.Bitrate = bitrate

	return nil
}

func promptTranscription(prompter Prompter, cfg *config.Config) error {
	model, err := prompter.Input("Recognition model:", transcription.DefaultModel)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Model = model

	location, err := prompter.Input("Recognizer location:", transcription.DefaultLocation)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Location = location

	languages, err := prompter.Input("Language codes (comma separated):", strings.Join(transcription.DefaultLanguageCodes(), ","))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.LanguageCodes = splitLanguageCodes(languages)

	return nil
}

// splitLanguageCodes parses a comma separated language list, dropping blanks
func splitLanguageCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

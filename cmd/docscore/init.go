package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/docscore/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/docscore.yaml
var configTemplate embed.FS

const templatePath = "templates/docscore.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a docscore configuration file",
		Long: `Init writes a .docscore.yaml configuration file with every option set to
its default value, ready to be edited.

The generated file covers:
- Fetch timeouts, retries and content thresholds
- The AI model, timeout and per-criterion prompt templates
- Criterion weights, recommendation tiers and analyzer thresholds
- Batch concurrency

Examples:
  # Create .docscore.yaml in the current directory
  docscore init

  # Create the file at a specific path
  docscore init -o ~/.config/docscore/config.yaml

  # Overwrite an existing file
  docscore init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, content, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nThe AI API key is never read from this file. Set it in the environment:")
	fmt.Fprintf(out, "  export %s=...\n", config.EnvAPIKey)
	return nil
}

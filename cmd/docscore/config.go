package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/log"
	"github.com/spf13/cobra"
)

// addConfigFlags registers the flags shared by analyze and serve.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docscore.yaml in current, XDG config or home directory)")
	cmd.Flags().String("env-file", ".env",
		"Load environment variables such as the AI API key from this file if it exists")
	cmd.Flags().Bool("no-ai", false,
		"Disable AI supplements even when an API key is set")
	cmd.Flags().String("model", config.DefaultAIModel,
		"Gemini model used for AI supplements")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Time budget for fetching one URL, including retries")
	cmd.Flags().Int("retries", config.DefaultMaxRetries,
		"Number of fetch retries after the first attempt")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of URLs analyzed concurrently")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the configuration file, the environment
// and explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly named file must exist; the default locations are optional.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	envFile, err := flags.GetString("env-file")
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	cfg.AIAPIKey = config.APIKeyFromEnv()

	if flags.Changed("no-ai") {
		if cfg.DisableAI, err = flags.GetBool("no-ai"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("model") {
		if cfg.AIModel, err = flags.GetString("model"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.FetchTimeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("retries") {
		if cfg.MaxRetries, err = flags.GetInt("retries"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// setupLogger creates the credential-redacting logger. Warnings and
// errors are always shown; verbose adds debug output.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(w, verbose)
	slog.SetDefault(logger)
	return logger
}

// readURLList reads one URL per line. Blank lines and lines starting
// with # are skipped.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	if len(urls) == 0 {
		return nil, errors.New("URL list is empty: " + path)
	}
	return urls, nil
}

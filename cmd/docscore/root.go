package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docscore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docscore",
		Short: "Documentation quality analyzer",
		Long: `docscore analyzes documentation pages and scores them from 0 to 10 on
readability, structure, completeness and style.

Each page gets a per-criterion breakdown, suggestions ordered by severity and
an overall recommendation. Set DOCSCORE_GEMINI_API_KEY (or GEMINI_API_KEY) to
add AI reviewer findings; without a key the analysis is fully deterministic.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

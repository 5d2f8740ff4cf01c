package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/ai-exec/internal/config"
	"github.com/quocvuong92/ai-exec/internal/display"
)

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the resolved configuration",
		Long: `Show which provider, model and shell a session would use, and where
the configuration came from. API keys are never printed.

Examples:
  ai-exec status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return display.ShowContentRendered(cmd.OutOrStdout(), statusReport(app.cfg, app.cfg.Validate()))
		},
	}
}

// statusReport formats the configuration as markdown
func statusReport(cfg *config.Config, validateErr error) string {
	var b strings.Builder
	b.WriteString("# ai-exec status\n\n")

	if validateErr != nil {
		fmt.Fprintf(&b, "**Configuration error:** %s\n\n", validateErr)
	}

	fmt.Fprintf(&b, "- **Provider:** %s\n", cfg.ProviderName())
	fmt.Fprintf(&b, "- **Model:** %s\n", orNone(cfg.Model))
	fmt.Fprintf(&b, "- **Shell:** %s\n", orNone(cfg.Shell))

	switch cfg.Provider {
	case "gemini":
		keys := 0
		if cfg.GeminiKeys != nil {
			keys = cfg.GeminiKeys.GetKeyCount()
		}
		fmt.Fprintf(&b, "- **Gemini API keys:** %d\n", keys)
	case "azure":
		fmt.Fprintf(&b, "- **Azure endpoint:** %s\n", orNone(cfg.AzureEndpoint))
	}

	b.WriteString("\n## Config file\n\n")
	path := config.FindConfigFile()
	if path == "" {
		b.WriteString("No config file found. Run `ai-exec config init` to create one.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- **Path:** %s\n", path)
	if _, err := config.LoadConfigFile(); err != nil {
		fmt.Fprintf(&b, "- **Error:** %s\n", err)
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a commented default configuration file to the user config
directory. An existing file is left untouched.

Examples:
  ai-exec config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
			return nil
		},
	})

	return configCmd
}

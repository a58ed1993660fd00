package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/moments/internal/config"
	"github.com/javiermolinar/moments/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  moments config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.API.BaseURL = promptValue(reader, out, "API base URL", cfg.API.BaseURL)
	cfg.API.Timeout = promptValue(reader, out, "API timeout", cfg.API.Timeout)
	cfg.Refresh.Interval = promptValue(reader, out, "Refresh interval", cfg.Refresh.Interval)
	cfg.Language.Default = promptValue(reader, out, "Default language", cfg.Language.Default)
	cfg.Language.DefaultCountry = promptValue(reader, out, "Default country", cfg.Language.DefaultCountry)
	cfg.Language.CatalogPath = promptValue(reader, out, "Catalog path (empty for built-in)", cfg.Language.CatalogPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Catalog(); err != nil {
		return err
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	catalogPath := cfg.Language.CatalogPath
	if catalogPath == "" {
		catalogPath = "(built-in)"
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[api]")
	fmt.Fprintf(out, "  base_url         = %s\n", cfg.API.BaseURL)
	fmt.Fprintf(out, "  timeout          = %s\n", cfg.API.Timeout)
	fmt.Fprintln(out, "\n[refresh]")
	fmt.Fprintf(out, "  interval         = %s\n", cfg.Refresh.Interval)
	fmt.Fprintln(out, "\n[language]")
	fmt.Fprintf(out, "  default          = %s\n", cfg.Language.Default)
	fmt.Fprintf(out, "  default_country  = %s\n", cfg.Language.DefaultCountry)
	fmt.Fprintf(out, "  catalog_path     = %s\n", catalogPath)
	fmt.Fprintln(out, "\n[session]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Session.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

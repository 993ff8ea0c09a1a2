package cmd

import (
	"fmt"
	"os"

	"media-transcribe/infrastructure/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
	Long: `Inspect the configuration after defaults, config/config.yaml, and
environment overrides have been applied.

Examples:
  media-transcribe config show
  media-transcribe config validate`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	// Add subcommands
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

// --- SHOW command ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	source := cfgFile
	if !cfgFromFile {
		source = "defaults (no " + cfgFile + ")"
	}
	return RunConfigShowWithDependencies(cfg, source, DefaultOutput)
}

// RunConfigShowWithDependencies prints cfg with injected dependencies.
// The API key is never printed, only whether it is set.
func RunConfigShowWithDependencies(cfg *config.Config, source string, out OutputWriter) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	fmt.Fprintf(out, "# source: %s\n", source)
	if cfg.OpenAI.APIKey != "" {
		fmt.Fprintln(out, "# OPENAI_API_KEY: set")
	} else {
		fmt.Fprintln(out, "# OPENAI_API_KEY: not set")
	}
	_, err = out.Write(data)
	return err
}

// --- VALIDATE command ---

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the effective configuration for invalid values",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunConfigValidateWithDependencies(cfg, DefaultOutput)
}

// RunConfigValidateWithDependencies validates cfg with injected dependencies
func RunConfigValidateWithDependencies(cfg *config.Config, out OutputWriter) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

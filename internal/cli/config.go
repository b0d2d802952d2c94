package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/diogenes-ai-code/timeago/internal/config"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/spf13/cobra"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after applying the config file and TIMEAGO_*
environment variables. Command-line flags are not included.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if IsJSON() {
		return printJSON(map[string]interface{}{
			"path":             config.DefaultConfigPath(),
			"db":               displayDBPath(cfg.DB),
			"no_color":         cfg.NoColor,
			"assume_utc":       cfg.AssumeUTC,
			"selector":         cfg.Selector,
			"refresh_interval": cfg.RefreshInterval,
			"host":             cfg.Host,
			"port":             cfg.Port,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return werrors.WrapInternal(err, "failed to encode config")
	}
	VerboseOutput("# %s\n", config.DefaultConfigPath())
	fmt.Print(buf.String())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigPath()
	if path == "" {
		return werrors.General("cannot determine home directory")
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return werrors.InvalidArgs("config file already exists at %s", path).
			WithSuggestion(SuggestForce)
	}

	if err := config.WriteConfigFile(path); err != nil {
		return werrors.WrapInternal(err, "failed to write config file")
	}

	if IsJSON() {
		return printJSON(map[string]string{"path": path})
	}
	OutputLine("Wrote sample config to %s", path)
	return nil
}

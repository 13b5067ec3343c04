package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
)

var (
	configPath   string
	configFormat string
)

// ConfigCmd groups the generator configuration commands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect generator configuration",
	Long: `Display the generator configuration.

Configuration sources (in order of precedence):
1. Environment variables (VKGEN_* prefix, e.g. VKGEN_GEN_RAII=false)
2. --config, or the nearest vkgen.toml walking up from the working directory
3. Default values`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configShowCmd.Flags().StringVarP(&configPath, "config", "c", "", "Generator config (default: nearest vkgen.toml)")
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load(configPath)
	if err != nil {
		return err
	}
	data, err := am.Marshal(cfg, configFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

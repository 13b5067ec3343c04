package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/cmd/vkgen/commands"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vkgen",
	Short: "vkgen - C++ bindings generator for the Vulkan registry",
	Long: `vkgen reads the Vulkan registry (vk.xml) and generates C++ headers:
a primary header with handle classes, enums and structs, unique handle
wrappers, and an RAII header whose objects own their dispatch tables.

Available commands:
  generate - Write headers for a registry
  check    - Verify headers in a directory are up to date
  profile  - Save selection profiles
  config   - Show the generator configuration
  version  - Show build information

Examples:
  vkgen generate -r vk.xml -s prelude -d include/vk
  vkgen check -r vk.xml -s prelude -d include/vk
  vkgen profile save -r vk.xml -o all.toml
  vkgen config show --format yaml`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON logs and results")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ProfileCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hints)
		}
		stop()
		os.Exit(1)
	}
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/display"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
)

var generateOpts options

// GenerateCmd writes the C++ headers for a registry
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate C++ bindings from a registry",
	Long: `Generate the primary and RAII C++ headers from a Vulkan registry.

The selection comes from --profile when given; otherwise every supported
element is generated. gen.force_required and gen.max_api_version from the
config adjust the selection before the pass runs.

Examples:
  vkgen generate -r vk.xml -s prelude -d include/vk
  vkgen generate -r vk.xml -s prelude -d include/vk -p minimal.toml
  vkgen generate -r github.com/KhronosGroup/Vulkan-Docs//xml/vk.xml -s prelude -d out`,
	RunE: runGenerate,
}

func init() {
	addOutputFlags(GenerateCmd, &generateOpts)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := generateOpts.validateOutput(); err != nil {
		return err
	}

	report, err := generate(cmd.Context(), generateOpts)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), report)
	}
	display.Summary(cmd.OutOrStdout(), report)
	return nil
}

func generate(ctx context.Context, o options) (display.Report, error) {
	out, err := render(ctx, o)
	if err != nil {
		return display.Report{}, err
	}
	if err := generator.WriteFiles(ctx, o.dest, out.files); err != nil {
		return display.Report{}, err
	}
	return display.Report{
		Registry: o.registry,
		Dest:     o.dest,
		Files:    out.files.Names(),
		Stats:    out.result.Stats,
	}, nil
}

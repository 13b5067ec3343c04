package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/display"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/profile"
)

var (
	profileOpts    options
	profileOutput  string
	profileEnable  []string
	profileDisable []string
)

// ProfileCmd groups the selection profile commands
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage selection profiles",
	Long: `A profile records which platforms, extensions, types and commands are
selected for generation. It is written as TOML, or YAML for .yaml paths.`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current selection as a profile",
	Long: `Load the registry, apply --profile if given, toggle the extensions named
by --enable and --disable, and write the resulting selection to --output.
An existing output file is rotated into .back1 through .back3.

Examples:
  vkgen profile save -r vk.xml -o all.toml
  vkgen profile save -r vk.xml -p all.toml --disable VK_KHR_xlib_surface -o core.yaml`,
	RunE: runProfileSave,
}

func init() {
	addRegistryFlags(profileSaveCmd, &profileOpts)
	profileSaveCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "Profile file to write")
	profileSaveCmd.Flags().StringSliceVar(&profileEnable, "enable", nil, "Extensions to enable")
	profileSaveCmd.Flags().StringSliceVar(&profileDisable, "disable", nil, "Extensions to disable")

	ProfileCmd.AddCommand(profileSaveCmd)
}

type profileReport struct {
	Path       string `json:"path"`
	Platforms  int    `json:"platforms"`
	Extensions int    `json:"extensions"`
	Types      int    `json:"types"`
	Commands   int    `json:"commands"`
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	if err := profileOpts.validateRegistry(); err != nil {
		return err
	}
	if err := required(profileOutput, "output", "pass the profile path with -o"); err != nil {
		return err
	}

	p, err := saveProfile(cmd.Context(), profileOpts, profileOutput, profileEnable, profileDisable)
	if err != nil {
		return err
	}

	report := profileReport{
		Path:       profileOutput,
		Platforms:  len(p.Platforms),
		Extensions: len(p.Extensions),
		Types:      len(p.Types),
		Commands:   len(p.Commands),
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), report)
	}
	pterm.Fprintln(cmd.OutOrStdout(), pterm.LightGreen("✓ Saved profile:"), report.Path)
	return nil
}

func saveProfile(ctx context.Context, o options, path string, enable, disable []string) (*profile.Profile, error) {
	_, reg, err := loadRegistry(ctx, o)
	if err != nil {
		return nil, err
	}

	for _, name := range enable {
		if err := reg.SetExtensionEnabled(name, true); err != nil {
			return nil, errors.Wrapf(err, "cannot enable %s", name)
		}
	}
	for _, name := range disable {
		if err := reg.SetExtensionEnabled(name, false); err != nil {
			return nil, errors.Wrapf(err, "cannot disable %s", name)
		}
	}

	p := profile.FromRegistry(reg)
	if err := profile.Save(p, path); err != nil {
		return nil, err
	}
	return p, nil
}

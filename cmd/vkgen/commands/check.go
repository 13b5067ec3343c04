package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/display"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
)

var checkOpts options

// ErrOutOfDate is returned by check when the destination differs.
var ErrOutOfDate = errors.New("generated headers are out of date")

// CheckCmd compares freshly generated headers with the destination
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether generated headers are up to date",
	Long: `Run the generator in memory and compare the result with the files in
--dest. Version and registry header lines are ignored. Exits non-zero when
anything differs, which makes it usable as a CI gate.

Examples:
  vkgen check -r vk.xml -s prelude -d include/vk`,
	RunE: runCheck,
}

func init() {
	addOutputFlags(CheckCmd, &checkOpts)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := checkOpts.validateOutput(); err != nil {
		return err
	}

	report, err := check(cmd.Context(), checkOpts)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		display.Check(cmd.OutOrStdout(), report)
	}

	if !report.UpToDate {
		cmd.SilenceUsage = true
		return ErrOutOfDate
	}
	return nil
}

func check(ctx context.Context, o options) (display.CheckReport, error) {
	out, err := render(ctx, o)
	if err != nil {
		return display.CheckReport{}, err
	}
	res, err := generator.Check(o.dest, out.files)
	if err != nil {
		return display.CheckReport{}, err
	}
	return display.CheckReport{
		Dest:        o.dest,
		UpToDate:    res.UpToDate,
		Differences: res.Differences,
	}, nil
}

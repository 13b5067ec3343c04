package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/emit"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/profile"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/version"
	"github.com/Vulkan-FIT/vkcpp-gen/vkxml"
)

// options are the paths shared by the commands that run the generator.
type options struct {
	registry string
	source   string
	dest     string
	config   string
	profile  string
}

func addRegistryFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVarP(&o.registry, "registry", "r", "", "Registry document (path or URL, e.g. vk.xml)")
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "Generator config (default: nearest vkgen.toml)")
	cmd.Flags().StringVarP(&o.profile, "profile", "p", "", "Selection profile (.toml or .yaml); all elements when omitted")
}

func addOutputFlags(cmd *cobra.Command, o *options) {
	addRegistryFlags(cmd, o)
	cmd.Flags().StringVarP(&o.source, "source", "s", "", "Directory holding the prelude fragments")
	cmd.Flags().StringVarP(&o.dest, "dest", "d", "", "Directory the headers are written to")
}

func required(value, flag, hint string) error {
	if value != "" {
		return nil
	}
	return errors.WithHint(errors.NewConfigurationError("--%s is required", flag), hint)
}

func (o *options) validateRegistry() error {
	return required(o.registry, "registry", "pass the registry with -r path/to/vk.xml")
}

func (o *options) validateOutput() error {
	if err := o.validateRegistry(); err != nil {
		return err
	}
	if err := required(o.source, "source", "pass the prelude directory with -s"); err != nil {
		return err
	}
	return required(o.dest, "dest", "pass the output directory with -d")
}

// loadRegistry reads config and registry and applies the selection: the
// API version cap first, then the profile, then force_required.
func loadRegistry(ctx context.Context, o options) (*am.Config, *registry.Registry, error) {
	log := logger.ComponentLogger("pipeline")

	cfg, err := am.Load(o.config)
	if err != nil {
		return nil, nil, err
	}

	src, err := vkxml.Resolve(ctx, o.registry)
	if err != nil {
		return nil, nil, err
	}
	defer src.Cleanup()

	reg, err := vkxml.Load(src.Path)
	if err != nil {
		return nil, nil, err
	}

	if limit := cfg.APIVersion(); limit != nil {
		n := reg.ApplyAPIVersion(limit)
		log.Infow("API version capped", "max_api_version", limit.String(), logger.FieldCount, n)
	}

	if o.profile != "" {
		p, err := profile.Load(o.profile)
		if err != nil {
			return nil, nil, err
		}
		if err := profile.Apply(reg, p); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to apply profile %s", o.profile)
		}
	} else {
		reg.EnableAll(true)
	}
	reg.SetForceRequired(cfg.Gen.ForceRequired)

	return cfg, reg, nil
}

type rendered struct {
	files  generator.Files
	result *generator.Result
}

// render runs the whole generator without touching the destination.
func render(ctx context.Context, o options) (*rendered, error) {
	cfg, reg, err := loadRegistry(ctx, o)
	if err != nil {
		return nil, err
	}

	sources, err := emit.ReadSources(o.source)
	if err != nil {
		return nil, err
	}

	res, err := generator.New(cfg, reg).Pass()
	if err != nil {
		return nil, errors.Wrap(err, "generation pass failed")
	}

	meta := emit.Meta{
		Version:  version.Get().Stamp(),
		Registry: filepath.Base(o.registry),
	}
	files, err := emit.New(cfg, reg, sources, meta).Render(res)
	if err != nil {
		return nil, err
	}
	return &rendered{files: files, result: res}, nil
}

package am

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	macros := map[string]Macro{
		"namespace.namespace":      c.Namespace.Namespace,
		"namespace.namespace_raii": c.Namespace.NamespaceRAII,
		"namespace.dispatch":       c.Namespace.Dispatch,
		"namespace.dispatch_type":  c.Namespace.DispatchType,
	}
	for key, m := range macros {
		if strings.TrimSpace(m.Get()) == "" {
			return errors.NewConfigurationError("%s must not be empty", key)
		}
	}

	if c.Gen.UseStaticCommands && !c.Gen.VulkanCommands {
		return errors.NewConfigurationError("gen.use_static_commands requires gen.vulkan_commands")
	}

	if c.Gen.MaxAPIVersion != "" {
		if _, err := semver.NewVersion(c.Gen.MaxAPIVersion); err != nil {
			return errors.WithHint(
				errors.NewConfigurationError("gen.max_api_version %q is not a version", c.Gen.MaxAPIVersion),
				"use a dotted version such as \"1.3\"")
		}
	}

	if c.Output.HeaderFile == "" {
		return errors.NewConfigurationError("output.header_file must not be empty")
	}
	if c.Gen.RAII && c.Output.RAIIFile == "" {
		return errors.NewConfigurationError("output.raii_file must not be empty when gen.raii is set")
	}
	if c.Output.HeaderFile == c.Output.RAIIFile {
		return errors.NewConfigurationError("output.header_file and output.raii_file must differ")
	}

	return nil
}

// APIVersion returns the parsed version cap, or nil when uncapped.
func (c *Config) APIVersion() *semver.Version {
	if c.Gen.MaxAPIVersion == "" {
		return nil
	}
	v, err := semver.NewVersion(c.Gen.MaxAPIVersion)
	if err != nil {
		return nil
	}
	return v
}

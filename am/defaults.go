package am

import (
	"github.com/spf13/viper"
)

func setMacroDefault(v *viper.Viper, key, value, define string) {
	v.SetDefault("namespace."+key+".value", value)
	v.SetDefault("namespace."+key+".define", define)
	v.SetDefault("namespace."+key+".use_define", true)
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	setMacroDefault(v, "namespace", "vk", "VULKAN_HPP_NAMESPACE")
	setMacroDefault(v, "namespace_raii", "raii", "VULKAN_HPP_RAII_NAMESPACE")
	setMacroDefault(v, "namespace_std", "std", "VULKAN_HPP_NAMESPACE_STD")
	setMacroDefault(v, "constexpr", "constexpr", "VULKAN_HPP_CONSTEXPR")
	setMacroDefault(v, "inline", "inline", "VULKAN_HPP_INLINE")
	setMacroDefault(v, "noexcept", "noexcept", "VULKAN_HPP_NOEXCEPT")
	setMacroDefault(v, "explicit", "explicit", "VULKAN_HPP_TYPESAFE_EXPLICIT")
	setMacroDefault(v, "dispatch", "VULKAN_HPP_DEFAULT_DISPATCHER", "VULKAN_HPP_DEFAULT_DISPATCHER")
	setMacroDefault(v, "dispatch_type", "VULKAN_HPP_DEFAULT_DISPATCHER_TYPE", "VULKAN_HPP_DEFAULT_DISPATCHER_TYPE")

	v.SetDefault("gen.cpp_modules", false)
	v.SetDefault("gen.struct_noinit", false)
	v.SetDefault("gen.vulkan_commands", true)
	v.SetDefault("gen.dispatch_param", true)
	v.SetDefault("gen.dispatch_loader_static", true)
	v.SetDefault("gen.use_static_commands", false)
	v.SetDefault("gen.allocator_param", true)
	v.SetDefault("gen.smart_handles", true)
	v.SetDefault("gen.exceptions", true)
	v.SetDefault("gen.result_value_type", true)
	v.SetDefault("gen.raii", true)
	v.SetDefault("gen.force_required", []string{"VkResult", "VkStructureType", "VkObjectType"})
	v.SetDefault("gen.max_api_version", "")

	v.SetDefault("debug.method_tags", false)
	v.SetDefault("debug.show_suppressed", false)

	v.SetDefault("output.file_protect", "VULKAN_HPP")
	v.SetDefault("output.loader_class_name", "LibraryLoader")
	v.SetDefault("output.header_file", "vulkan.hpp")
	v.SetDefault("output.raii_file", "vulkan_raii.hpp")
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// Package am holds the generator options: namespace macros, generation
// switches and debug toggles. Options are read from TOML through viper with
// VKGEN_* environment overrides.
package am

// Config represents the generator configuration
type Config struct {
	Namespace MacroConfig  `mapstructure:"namespace" toml:"namespace" yaml:"namespace" json:"namespace"`
	Gen       GenConfig    `mapstructure:"gen" toml:"gen" yaml:"gen" json:"gen"`
	Debug     DebugConfig  `mapstructure:"debug" toml:"debug" yaml:"debug" json:"debug"`
	Output    OutputConfig `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
}

// Macro is a token that is either emitted literally or through a
// preprocessor define the user can override.
type Macro struct {
	Value     string `mapstructure:"value" toml:"value" yaml:"value" json:"value"`
	Define    string `mapstructure:"define" toml:"define" yaml:"define" json:"define"`
	UseDefine bool   `mapstructure:"use_define" toml:"use_define" yaml:"use_define" json:"use_define"`
}

// Get returns the spelling used in generated code.
func (m Macro) Get() string {
	if m.UseDefine {
		return m.Define
	}
	return m.Value
}

// MacroConfig lists every configurable token.
type MacroConfig struct {
	Namespace     Macro `mapstructure:"namespace" toml:"namespace" yaml:"namespace" json:"namespace"`
	NamespaceRAII Macro `mapstructure:"namespace_raii" toml:"namespace_raii" yaml:"namespace_raii" json:"namespace_raii"`
	NamespaceSTD  Macro `mapstructure:"namespace_std" toml:"namespace_std" yaml:"namespace_std" json:"namespace_std"`
	Constexpr     Macro `mapstructure:"constexpr" toml:"constexpr" yaml:"constexpr" json:"constexpr"`
	Inline        Macro `mapstructure:"inline" toml:"inline" yaml:"inline" json:"inline"`
	Noexcept      Macro `mapstructure:"noexcept" toml:"noexcept" yaml:"noexcept" json:"noexcept"`
	Explicit      Macro `mapstructure:"explicit" toml:"explicit" yaml:"explicit" json:"explicit"`
	Dispatch      Macro `mapstructure:"dispatch" toml:"dispatch" yaml:"dispatch" json:"dispatch"`
	DispatchType  Macro `mapstructure:"dispatch_type" toml:"dispatch_type" yaml:"dispatch_type" json:"dispatch_type"`
}

// GenConfig holds the generation switches
type GenConfig struct {
	CppModules           bool `mapstructure:"cpp_modules" toml:"cpp_modules" yaml:"cpp_modules" json:"cpp_modules"`
	StructNoinit         bool `mapstructure:"struct_noinit" toml:"struct_noinit" yaml:"struct_noinit" json:"struct_noinit"`
	VulkanCommands       bool `mapstructure:"vulkan_commands" toml:"vulkan_commands" yaml:"vulkan_commands" json:"vulkan_commands"`
	DispatchParam        bool `mapstructure:"dispatch_param" toml:"dispatch_param" yaml:"dispatch_param" json:"dispatch_param"`
	DispatchLoaderStatic bool `mapstructure:"dispatch_loader_static" toml:"dispatch_loader_static" yaml:"dispatch_loader_static" json:"dispatch_loader_static"`
	UseStaticCommands    bool `mapstructure:"use_static_commands" toml:"use_static_commands" yaml:"use_static_commands" json:"use_static_commands"`
	AllocatorParam       bool `mapstructure:"allocator_param" toml:"allocator_param" yaml:"allocator_param" json:"allocator_param"`
	SmartHandles         bool `mapstructure:"smart_handles" toml:"smart_handles" yaml:"smart_handles" json:"smart_handles"`
	Exceptions           bool `mapstructure:"exceptions" toml:"exceptions" yaml:"exceptions" json:"exceptions"`
	ResultValueType      bool `mapstructure:"result_value_type" toml:"result_value_type" yaml:"result_value_type" json:"result_value_type"`
	RAII                 bool `mapstructure:"raii" toml:"raii" yaml:"raii" json:"raii"`

	// ForceRequired names elements that are generated regardless of profile
	ForceRequired []string `mapstructure:"force_required" toml:"force_required" yaml:"force_required" json:"force_required"`
	// MaxAPIVersion caps core features, e.g. "1.2". Empty means no cap.
	MaxAPIVersion string `mapstructure:"max_api_version" toml:"max_api_version" yaml:"max_api_version" json:"max_api_version"`
}

// DebugConfig controls diagnostic markup in generated code
type DebugConfig struct {
	MethodTags     bool `mapstructure:"method_tags" toml:"method_tags" yaml:"method_tags" json:"method_tags"`
	ShowSuppressed bool `mapstructure:"show_suppressed" toml:"show_suppressed" yaml:"show_suppressed" json:"show_suppressed"`
}

// OutputConfig names the generated files
type OutputConfig struct {
	FileProtect     string `mapstructure:"file_protect" toml:"file_protect" yaml:"file_protect" json:"file_protect"`
	LoaderClassName string `mapstructure:"loader_class_name" toml:"loader_class_name" yaml:"loader_class_name" json:"loader_class_name"`
	HeaderFile      string `mapstructure:"header_file" toml:"header_file" yaml:"header_file" json:"header_file"`
	RAIIFile        string `mapstructure:"raii_file" toml:"raii_file" yaml:"raii_file" json:"raii_file"`
}

// UseDispatchLoader reports whether calls go through a loader object
// rather than the statically linked entry points.
func (c *Config) UseDispatchLoader() bool {
	return c.Gen.DispatchLoaderStatic && !c.Gen.UseStaticCommands
}

// File permission constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ConfigFileName is the project-local configuration file searched for by Load.
const ConfigFileName = "vkgen.toml"

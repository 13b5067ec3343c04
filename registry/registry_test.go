package registry

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

func p(prefix, typ, suffix, name string) *param.Param {
	return param.New(param.Type{Prefix: prefix, Name: typ, Suffix: suffix}, name)
}

// fixture builds a registry with core Device/Buffer, a surface extension on
// the xlib platform and a disabled extension.
func fixture(t *testing.T) *Registry {
	t.Helper()
	r := New()

	require.NoError(t, r.AddPlatform(&Platform{Name: "xlib", Protect: "VK_USE_PLATFORM_XLIB_KHR"}))
	require.NoError(t, r.AddHandle(&Handle{Name: "VkInstance", Dispatchable: true}))
	require.NoError(t, r.AddHandle(&Handle{Name: "VkDevice", Parent: "VkInstance", Dispatchable: true}))
	require.NoError(t, r.AddHandle(&Handle{Name: "VkBuffer", Parent: "VkDevice"}))
	require.NoError(t, r.AddHandle(&Handle{Name: "VkSurfaceKHR", Parent: "VkInstance"}))
	require.NoError(t, r.AddStruct(&Struct{Name: "VkBufferCreateInfo", Members: []*param.Param{
		p("", "VkStructureType", "", "sType"),
		p("", "VkDeviceSize", "", "size"),
	}}))
	require.NoError(t, r.AddStruct(&Struct{Name: "VkAllocationCallbacks"}))
	require.NoError(t, r.AddStruct(&Struct{Name: "VkXlibSurfaceCreateInfoKHR"}))
	require.NoError(t, r.AddStruct(&Struct{Name: "VkExperimentalInfo"}))
	require.NoError(t, r.AddEnum(&Enum{Name: "VkResult", Values: []*EnumValue{
		{Name: "VK_SUCCESS", Value: "0"},
		{Name: "VK_INCOMPLETE", Value: "5"},
	}}))
	require.NoError(t, r.AddEnum(&Enum{Name: "VkStructureType"}))

	create := NewCommand("vkCreateBuffer", "VkResult", []*param.Param{
		p("", "VkDevice", "", "device"),
		p("const ", "VkBufferCreateInfo", "*", "pCreateInfo"),
		p("const ", "VkAllocationCallbacks", "*", "pAllocator"),
		p("", "VkBuffer", "*", "pBuffer"),
	})
	require.NoError(t, r.AddCommand(create))
	require.NoError(t, r.AddCommand(NewCommand("vkCreateXlibSurfaceKHR", "VkResult", []*param.Param{
		p("", "VkInstance", "", "instance"),
		p("const ", "VkXlibSurfaceCreateInfoKHR", "*", "pCreateInfo"),
		p("", "VkSurfaceKHR", "*", "pSurface"),
	})))
	require.NoError(t, r.AddCommand(NewCommand("vkExperimentalNV", "void", []*param.Param{
		p("", "VkDevice", "", "device"),
		p("const ", "VkExperimentalInfo", "*", "pInfo"),
	})))
	alias := NewCommand("vkCreateBufferKHR", "", nil)
	alias.Alias = "vkCreateBuffer"
	require.NoError(t, r.AddCommand(alias))

	core := &Feature{Name: "VK_VERSION_1_0", API: "vulkan", Number: semver.MustParse("1.0")}
	for _, name := range []string{"VkInstance", "VkDevice", "VkBuffer", "VkBufferCreateInfo", "VkResult", "vkCreateBuffer"} {
		require.NoError(t, r.RequireFeature(core, name))
	}
	r.AddFeature(core)
	v11 := &Feature{Name: "VK_VERSION_1_1", API: "vulkan", Number: semver.MustParse("1.1")}
	require.NoError(t, r.RequireFeature(v11, "vkCreateBufferKHR"))
	r.AddFeature(v11)

	surface := &Extension{Name: "VK_KHR_xlib_surface", Platform: "xlib", Supported: true}
	require.NoError(t, r.AddExtension(surface))
	for _, name := range []string{"VkSurfaceKHR", "VkXlibSurfaceCreateInfoKHR", "vkCreateXlibSurfaceKHR"} {
		require.NoError(t, r.Require(surface, name))
	}

	disabled := &Extension{Name: "VK_NV_experimental", Supported: false}
	require.NoError(t, r.AddExtension(disabled))
	require.NoError(t, r.Require(disabled, "vkExperimentalNV"))
	require.NoError(t, r.Require(disabled, "VkExperimentalInfo"))
	require.NoError(t, r.Require(disabled, "VkBuffer"))

	require.NoError(t, r.Link())
	return r
}

func gen(r *Registry, name string) bool {
	id, ok := r.NodeID(name)
	if !ok {
		return false
	}
	return r.Graph.CanGenerate(id)
}

func TestLookups(t *testing.T) {
	r := fixture(t)

	h, err := r.Handle("VkDevice")
	require.NoError(t, err)
	assert.Equal(t, "Device", h.ClassName())
	assert.Equal(t, "m_device", h.MemberVar())

	loader, err := r.Handle(LoaderName)
	require.NoError(t, err)
	assert.True(t, loader.IsLoader)

	_, err = r.Handle("VkMissing")
	assert.True(t, errors.IsLookupError(err))
	_, ok := r.LookupHandle("VkMissing")
	assert.False(t, ok)

	_, err = r.Command("vkMissing")
	assert.True(t, errors.IsLookupError(err))

	assert.Equal(t, param.KindHandle, r.ParamKind("VkBuffer"))
	assert.Equal(t, param.KindStruct, r.ParamKind("VkBufferCreateInfo"))
	assert.Equal(t, param.KindEnum, r.ParamKind("VkResult"))
	assert.Equal(t, param.KindBasic, r.ParamKind("uint32_t"))
}

func TestDuplicateElementIsStructural(t *testing.T) {
	r := New()
	require.NoError(t, r.AddHandle(&Handle{Name: "VkDevice"}))
	err := r.AddStruct(&Struct{Name: "VkDevice"})
	assert.True(t, errors.IsStructuralError(err))
}

func TestCommandClassifiedOnCreation(t *testing.T) {
	r := fixture(t)
	c, err := r.Command("vkCreateBuffer")
	require.NoError(t, err)

	assert.Equal(t, classify.Create, c.Category)
	assert.Equal(t, classify.ReturnStatus, c.ReturnKind)
	assert.Equal(t, []string{"VK_SUCCESS"}, c.SuccessCodes)
	assert.True(t, c.Params[3].IsHandle())
	assert.True(t, c.Params[1].IsStruct())
}

func TestAliasTakesTargetShape(t *testing.T) {
	r := fixture(t)
	alias, err := r.Command("vkCreateBufferKHR")
	require.NoError(t, err)

	assert.True(t, alias.HasFlag(FlagAlias))
	assert.Equal(t, "VkResult", alias.ReturnType)
	require.Len(t, alias.Params, 4)
	assert.Equal(t, classify.Create, alias.Category)

	target, _ := r.Command("vkCreateBuffer")
	assert.NotSame(t, target.Params[0], alias.Params[0])
}

func TestEnablingCommandRequiresItsTypes(t *testing.T) {
	r := fixture(t)
	c, _ := r.Command("vkCreateBuffer")

	r.Graph.SetEnabled(c.ID, true)

	for _, name := range []string{"VkDevice", "VkBufferCreateInfo", "VkAllocationCallbacks", "VkResult", "VkInstance", "VkStructureType"} {
		assert.True(t, gen(r, name), name)
	}
	assert.True(t, gen(r, "VkBuffer"), "provided by core even though a disabled extension lists it")
	assert.False(t, gen(r, "VkSurfaceKHR"))
}

func TestUnsupportedExtensionElements(t *testing.T) {
	r := fixture(t)
	r.EnableAll(true)

	assert.False(t, gen(r, "vkExperimentalNV"))
	assert.False(t, gen(r, "VkExperimentalInfo"))
	assert.False(t, gen(r, "VK_NV_experimental"))
	assert.True(t, gen(r, "VkBuffer"))
}

func TestPlatformCascade(t *testing.T) {
	r := fixture(t)
	r.EnableAll(true)
	require.True(t, gen(r, "vkCreateXlibSurfaceKHR"))

	require.NoError(t, r.SetPlatformEnabled("xlib", false))

	pl, _ := r.Platform("xlib")
	assert.False(t, pl.Enabled)
	assert.False(t, gen(r, "VK_KHR_xlib_surface"))
	assert.False(t, gen(r, "vkCreateXlibSurfaceKHR"))
	assert.False(t, gen(r, "VkXlibSurfaceCreateInfoKHR"))
	assert.True(t, gen(r, "vkCreateBuffer"))

	id, _ := r.NodeID("vkCreateXlibSurfaceKHR")
	assert.Equal(t, "VK_USE_PLATFORM_XLIB_KHR", r.Protect(id))
	assert.Equal(t, "VK_KHR_xlib_surface", r.Owner(id))
}

func TestSetExtensionEnabledUnknown(t *testing.T) {
	r := fixture(t)
	assert.True(t, errors.IsLookupError(r.SetExtensionEnabled("VK_missing", true)))
	assert.True(t, errors.IsLookupError(r.SetPlatformEnabled("wayland", true)))
}

func TestForceRequiredNames(t *testing.T) {
	r := fixture(t)
	r.SetForceRequired([]string{"VkResult", "VkNotThere"})

	assert.True(t, gen(r, "VkResult"))
	assert.False(t, gen(r, "VkStructureType"))
}

func TestApplyAPIVersion(t *testing.T) {
	r := fixture(t)

	removed := r.ApplyAPIVersion(semver.MustParse("1.0"))

	assert.Equal(t, 1, removed)
	id, _ := r.NodeID("vkCreateBufferKHR")
	assert.False(t, r.Graph.IsSupported(id))
	assert.Equal(t, 0, r.ApplyAPIVersion(nil))
}

func TestSignatureLedger(t *testing.T) {
	h := &Handle{Name: "VkDevice"}
	sig := []string{"constBufferCreateInfo&", "Optional<constAllocationCallbacks>"}

	assert.False(t, h.HasSignature(param.NamespacePrimary, sig))
	h.RecordSignature(param.NamespacePrimary, sig)
	assert.True(t, h.HasSignature(param.NamespacePrimary, sig))
	assert.False(t, h.HasSignature(param.NamespaceRAII, sig))
	assert.False(t, h.HasSignature(param.NamespacePrimary, sig[:1]))

	h.ClearGenerated()
	assert.Empty(t, h.Generated(param.NamespacePrimary))
}

func TestStats(t *testing.T) {
	r := fixture(t)
	r.EnableAll(true)
	stats := r.Stats()
	assert.Equal(t, 3, stats[KindCommand])
	assert.Equal(t, 4, stats[KindHandle])
}

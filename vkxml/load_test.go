package vkxml

import (
	"context"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

func loadFixture(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := Load("testdata/minimal.xml")
	require.NoError(t, err)
	return r
}

func TestDeclUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want declXML
	}{
		{
			name: "plain",
			xml:  `<param><type>VkDevice</type> <name>device</name></param>`,
			want: declXML{Type: "VkDevice", Name: "device"},
		},
		{
			name: "const pointer",
			xml:  `<param optional="true">const <type>VkAllocationCallbacks</type>* <name>pAllocator</name></param>`,
			want: declXML{Prefix: "const", Type: "VkAllocationCallbacks", Suffix: "*", Name: "pAllocator", Optional: "true"},
		},
		{
			name: "double pointer",
			xml:  `<member len="enabledLayerCount,null-terminated">const <type>char</type>* const*      <name>ppEnabledLayerNames</name></member>`,
			want: declXML{Prefix: "const", Type: "char", Suffix: "* const*", Name: "ppEnabledLayerNames", Len: "enabledLayerCount,null-terminated"},
		},
		{
			name: "enum bound",
			xml:  `<member><type>char</type> <name>deviceName</name>[<enum>VK_MAX_PHYSICAL_DEVICE_NAME_SIZE</enum>]</member>`,
			want: declXML{Type: "char", Name: "deviceName", ArraySize: "VK_MAX_PHYSICAL_DEVICE_NAME_SIZE"},
		},
		{
			name: "literal bound with comment",
			xml:  `<member><type>float</type> <name>color</name>[4]<comment>RGBA</comment></member>`,
			want: declXML{Type: "float", Name: "color", ArraySize: "4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got declXML
			require.NoError(t, xml.Unmarshal([]byte(tt.xml), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadElements(t *testing.T) {
	r := loadFixture(t)

	assert.Equal(t, "250", r.HeaderVersion)
	assert.Equal(t, []string{"KHR", "EXT", "NV"}, r.Tags())

	dev, err := r.Handle("VkDevice")
	require.NoError(t, err)
	assert.Equal(t, "VkPhysicalDevice", dev.Parent)
	assert.True(t, dev.Dispatchable)
	assert.Equal(t, "VK_OBJECT_TYPE_DEVICE", dev.ObjectType)

	buf, err := r.Handle("VkBuffer")
	require.NoError(t, err)
	assert.False(t, buf.Dispatchable)
	assert.Equal(t, "VkBufferKHR", buf.Alias)

	s, err := r.Struct("VkBufferCreateInfo")
	require.NoError(t, err)
	assert.Equal(t, "VK_STRUCTURE_TYPE_BUFFER_CREATE_INFO", s.StructTypeValue)
	assert.Equal(t, []string{"VkBufferCreateInfoKHR"}, s.Aliases)
	require.Len(t, s.Members, 4)

	props, err := r.Struct("VkPhysicalDeviceProperties")
	require.NoError(t, err)
	assert.True(t, props.ReturnedOnly)
	assert.Equal(t, "VK_MAX_PHYSICAL_DEVICE_NAME_SIZE", props.Members[1].ArraySize)

	bits, err := r.Enum("VkBufferUsageFlagBits")
	require.NoError(t, err)
	assert.True(t, bits.Bitmask)
	assert.Equal(t, "2", bits.Value("VK_BUFFER_USAGE_TRANSFER_DST_BIT").Value)
}

func TestLoadCommands(t *testing.T) {
	r := loadFixture(t)

	enum, err := r.Command("vkEnumeratePhysicalDevices")
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_SUCCESS", "VK_INCOMPLETE"}, enum.SuccessCodes)
	require.Len(t, enum.Params, 3)
	assert.True(t, enum.Params[2].HasLengthVar())
	assert.Same(t, enum.Params[1], enum.Params[2].LengthVar())
	assert.True(t, enum.Params[2].Optional)

	alloc, err := r.Command("vkAllocateCommandBuffers")
	require.NoError(t, err)
	assert.Equal(t, "pAllocateInfo->commandBufferCount", alloc.Params[2].Len)
	assert.True(t, alloc.Params[2].LenIndirect())

	alias, err := r.Command("vkCreateBufferKHR")
	require.NoError(t, err)
	assert.True(t, alias.HasFlag(registry.FlagAlias))
	assert.Len(t, alias.Params, 4)

	_, err = r.Command("vkSafetyOnly")
	assert.Error(t, err)
}

func TestLoadExtensions(t *testing.T) {
	r := loadFixture(t)

	surface, err := r.Extension("VK_KHR_surface")
	require.NoError(t, err)
	assert.True(t, surface.Supported)
	res, _ := r.Enum("VkResult")
	assert.Equal(t, "-1000000000", res.Value("VK_ERROR_SURFACE_LOST_KHR").Value)

	xlib, err := r.Extension("VK_KHR_xlib_surface")
	require.NoError(t, err)
	assert.Equal(t, "VK_USE_PLATFORM_XLIB_KHR", xlib.Protect)
	assert.Equal(t, []string{"VK_KHR_surface"}, xlib.Requires)
	st, _ := r.Enum("VkStructureType")
	assert.Equal(t, "1000004000", st.Value("VK_STRUCTURE_TYPE_XLIB_SURFACE_CREATE_INFO_KHR").Value)

	pl, _ := r.Platform("xlib")
	assert.Equal(t, []string{"VK_KHR_xlib_surface"}, pl.Extensions)

	nv, err := r.Extension("VK_NV_experimental")
	require.NoError(t, err)
	assert.False(t, nv.Supported)
	id, _ := r.NodeID("vkCmdExperimentalNV")
	assert.False(t, r.Graph.IsSupported(id))
}

func TestLoadFeatures(t *testing.T) {
	r := loadFixture(t)

	features := r.Features()
	require.Len(t, features, 2)
	assert.Equal(t, "1.0.0", features[0].Number.String())
	assert.Equal(t, "VK_VERSION_1_1", features[1].Name)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("<registry><types>"))
	assert.Error(t, err)

	_, err = Load("testdata/missing.xml")
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`<registry><types>
		<type category="handle" parent="VkNowhere"><type>VK_DEFINE_HANDLE</type>(<name>VkOrphan</name>)</type>
	</types></registry>`))
	assert.Error(t, err)
}

func TestDuplicateElementSkipped(t *testing.T) {
	r, err := Parse(strings.NewReader(`<registry><types>
		<type category="struct" name="VkThing"><member><type>uint32_t</type> <name>a</name></member></type>
		<type category="struct" name="VkThing"><member><type>uint32_t</type> <name>b</name></member></type>
	</types></registry>`))
	require.NoError(t, err)

	s, err := r.Struct("VkThing")
	require.NoError(t, err)
	assert.Equal(t, "a", s.Members[0].Name)
}

func TestEnumValue(t *testing.T) {
	tests := []struct {
		name string
		in   enumXML
		ext  int
		want string
	}{
		{"literal", enumXML{Value: "7"}, 0, "7"},
		{"bitpos", enumXML{BitPos: "4"}, 0, "16"},
		{"offset", enumXML{Offset: "2"}, 3, "1000002002"},
		{"negative", enumXML{Offset: "1", Dir: "-"}, 1, "-1000000001"},
		{"extnumber wins", enumXML{Offset: "0", ExtNumber: "10"}, 3, "1000009000"},
		{"alias", enumXML{Alias: "VK_X"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enumValue(tt.in, tt.ext))
		})
	}
}

func TestDependsList(t *testing.T) {
	assert.Equal(t,
		[]string{"VK_KHR_get_physical_device_properties2", "VK_KHR_surface"},
		dependsList("(VK_KHR_get_physical_device_properties2,VK_VERSION_1_1)+VK_KHR_surface"))
}

func TestResolveLocal(t *testing.T) {
	src, err := Resolve(context.Background(), "testdata/minimal.xml")
	require.NoError(t, err)
	defer src.Cleanup()
	assert.False(t, src.Fetched)
	assert.FileExists(t, src.Path)

	_, err = Resolve(context.Background(), "testdata/nope.xml")
	assert.Error(t, err)
}

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"vkGetDeviceQueue", Get},
		{"getDeviceQueue", Get},
		{"GetDeviceQueue", Get},
		{"vkAllocateMemory", Allocate},
		{"vkAcquireNextImageKHR", Acquire},
		{"vkCreateBuffer", Create},
		{"vkEnumeratePhysicalDevices", Enumerate},
		{"vkWriteAccelerationStructuresPropertiesKHR", Write},
		{"vkDestroyBuffer", Destroy},
		{"vkFreeCommandBuffers", Free},
		{"vkCmdDraw", Unknown},
		{"vkQueueSubmit", Unknown},
		{"vkGetterFoo", Unknown},
		{"vkCreated", Unknown},
		{"vkGet", Get},
		{"vk", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyName(tt.name))
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	all := []Category{Unknown, Get, Allocate, Acquire, Create, Enumerate, Write, Destroy, Free}
	for _, c := range all {
		t.Run(c.String(), func(t *testing.T) {
			assert.Equal(t, c == Get || c == Acquire, GetsObject(c))
			assert.Equal(t, c == Allocate || c == Create, CreatesObject(c))
			assert.Equal(t, c == Destroy || c == Free, DestroysObject(c))
		})
	}
}

func handle(name, id string, suffix string) *param.Param {
	p := param.New(param.Type{Name: name, Suffix: suffix}, id)
	p.Kind = param.KindHandle
	return p
}

func TestLastPointerParam(t *testing.T) {
	device := handle("VkDevice", "device", "")
	info := param.New(param.Type{Prefix: "const ", Name: "VkBufferCreateInfo", Suffix: "*"}, "pCreateInfo")
	buffer := handle("VkBuffer", "pBuffer", "*")

	p, err := LastPointerParam([]*param.Param{device, info, buffer})
	require.NoError(t, err)
	assert.Same(t, buffer, p)

	_, err = LastPointerParam([]*param.Param{device})
	require.Error(t, err)
	assert.True(t, errors.IsLookupError(err))

	_, err = LastPointerParam(nil)
	assert.True(t, errors.IsLookupError(err))
}

func TestLastHandleParam(t *testing.T) {
	device := handle("VkDevice", "device", "")
	buffer := handle("VkBuffer", "buffer", "")
	alloc := param.New(param.Type{Prefix: "const ", Name: "VkAllocationCallbacks", Suffix: "*"}, "pAllocator")

	p, err := LastHandleParam([]*param.Param{device, buffer, alloc})
	require.NoError(t, err)
	assert.Same(t, buffer, p)

	_, err = LastHandleParam([]*param.Param{alloc})
	assert.True(t, errors.IsLookupError(err))
}

func TestIsIndirectCandidate(t *testing.T) {
	device := handle("VkDevice", "device", "")
	buffer := handle("VkBuffer", "buffer", "")
	outDevice := handle("VkDevice", "pDevice", "*")
	outBuffer := handle("VkBuffer", "pBuffer", "*")

	tests := []struct {
		name   string
		cat    Category
		params []*param.Param
		host   string
		want   bool
	}{
		{"create other type", Create, []*param.Param{device, outBuffer}, "VkDevice", true},
		{"create self type", Create, []*param.Param{outDevice}, "VkDevice", false},
		{"get self type", Get, []*param.Param{device, outDevice}, "VkDevice", false},
		{"destroy other", Destroy, []*param.Param{device, buffer}, "VkDevice", true},
		{"destroy self", Destroy, []*param.Param{device}, "VkDevice", false},
		{"no pointer fails open", Get, []*param.Param{device}, "VkDevice", true},
		{"no handle fails open", Free, nil, "VkDevice", true},
		{"unknown category", Unknown, []*param.Param{device}, "VkDevice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIndirectCandidate(tt.cat, tt.params, tt.host))
		})
	}
}

func TestClassifyReturn(t *testing.T) {
	assert.Equal(t, ReturnVoid, ClassifyReturn("void"))
	assert.Equal(t, ReturnStatus, ClassifyReturn("VkResult"))
	assert.Equal(t, ReturnOther, ClassifyReturn("VkDeviceAddress"))
	assert.Equal(t, ReturnOther, ClassifyReturn("PFN_vkVoidFunction"))
}

func TestClassifyArraySize(t *testing.T) {
	tests := []struct {
		decl param.Type
		name string
		want ArraySize
	}{
		{param.Type{Name: "uint32_t", Suffix: "*"}, "pPropertyCount", ArraySizeCount},
		{param.Type{Name: "uint32_t"}, "bindingCount", ArraySizeConstCount},
		{param.Type{Name: "size_t"}, "dataSize", ArraySizeSize},
		{param.Type{Name: "uint32_t"}, "firstBinding", ArraySizeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyArraySize(param.New(tt.decl, tt.name)))
		})
	}
}

func TestMemberName(t *testing.T) {
	tests := []struct {
		command, host, want string
	}{
		{"vkCreateBuffer", "Device", "createBuffer"},
		{"vkGetPhysicalDeviceFeatures", "PhysicalDevice", "getFeatures"},
		{"vkDeviceWaitIdle", "Device", "waitIdle"},
		{"vkDestroyDevice", "Device", "destroy"},
		{"vkCreateInstance", "", "createInstance"},
		{"vkCmdDraw", "CommandBuffer", "cmdDraw"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, MemberName(tt.command, tt.host))
		})
	}
}

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

func TestSelectStrategies(t *testing.T) {
	primary, raii := param.NamespacePrimary, param.NamespaceRAII

	tests := []struct {
		name    string
		host    string
		command string
		ns      param.Namespace
		smart   bool
		want    []synth.Kind
	}{
		{"trivial forwards", "VkCommandBuffer", "vkCmdDraw", primary, true,
			[]synth.Kind{synth.KindPass}},
		{"status without pointers", "VkDevice", "vkDeviceWaitIdle", primary, true,
			[]synth.Kind{synth.KindDirect}},
		{"two-call query", "VkInstance", "vkEnumeratePhysicalDevices", primary, true,
			[]synth.Kind{synth.KindDirect, synth.KindEnumerate}},
		{"two-call query raii", "VkInstance", "vkEnumeratePhysicalDevices", raii, true,
			[]synth.Kind{synth.KindEnumerate}},
		{"getter", "VkPhysicalDevice", "vkGetPhysicalDeviceProperties", primary, true,
			[]synth.Kind{synth.KindDirect, synth.KindGet}},
		{"getter raii", "VkPhysicalDevice", "vkGetPhysicalDeviceProperties", raii, true,
			[]synth.Kind{synth.KindGet}},
		{"create with unique", "VkDevice", "vkCreateBuffer", primary, true,
			[]synth.Kind{synth.KindDirect, synth.KindCreate, synth.KindCreateUnique}},
		{"create without smart handles", "VkDevice", "vkCreateBuffer", primary, false,
			[]synth.Kind{synth.KindDirect, synth.KindCreate}},
		{"create raii", "VkDevice", "vkCreateBuffer", raii, true,
			[]synth.Kind{synth.KindCreate}},
		{"create from loader", registry.LoaderName, "vkCreateInstance", primary, true,
			[]synth.Kind{synth.KindDirect, synth.KindCreate, synth.KindCreateUnique}},
		{"array allocation", "VkDevice", "vkAllocateCommandBuffers", primary, true,
			[]synth.Kind{synth.KindDirect, synth.KindCreate}},
		{"array allocation raii", "VkDevice", "vkAllocateCommandBuffers", raii, true,
			[]synth.Kind{synth.KindVectorRAII}},
		{"destroy", "VkDevice", "vkDestroyBuffer", primary, true,
			[]synth.Kind{synth.KindDirect}},
		{"destroy raii", "VkDevice", "vkDestroyBuffer", raii, true,
			[]synth.Kind{synth.KindDirect}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := am.Default()
			cfg.Gen.SmartHandles = tt.smart
			reg := analyzed(t, cfg)
			m := findMember(t, reg, tt.host, tt.command)
			assert.Equal(t, tt.want, SelectStrategies(cfg, reg, m, tt.ns))
		})
	}
}

func TestSelectStrategiesRAIIOnly(t *testing.T) {
	cfg := am.Default()
	reg := analyzed(t, cfg)
	var m *registry.Member
	h, _ := reg.Handle("VkInstance")
	for _, candidate := range h.Members {
		if candidate.RAIIOnly {
			m = candidate
		}
	}
	if !assert.NotNil(t, m) {
		return
	}

	assert.Equal(t, []synth.Kind{synth.KindSuppressed}, SelectStrategies(cfg, reg, m, param.NamespacePrimary))
	assert.Equal(t, []synth.Kind{synth.KindGet}, SelectStrategies(cfg, reg, m, param.NamespaceRAII))
}

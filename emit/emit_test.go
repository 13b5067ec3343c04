package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
	"github.com/Vulkan-FIT/vkcpp-gen/vkxml"
)

func render(t *testing.T, cfg *am.Config) generator.Files {
	t.Helper()
	reg, err := vkxml.Load("../vkxml/testdata/minimal.xml")
	require.NoError(t, err)
	reg.EnableAll(true)
	res, err := generator.New(cfg, reg).Pass()
	require.NoError(t, err)

	files, err := New(cfg, reg, &Sources{Prelude: "// prelude marker\n"}, Meta{Version: "test", Registry: "minimal.xml"}).Render(res)
	require.NoError(t, err)
	return files
}

func TestRenderPrimaryHeader(t *testing.T) {
	cfg := am.Default()
	files := render(t, cfg)
	require.Contains(t, files, "vulkan.hpp")
	out := string(files["vulkan.hpp"])

	for _, want := range []string{
		"// Generated by vkgen test",
		"// Registry: minimal.xml",
		"#ifndef VULKAN_HPP_HPP",
		"#  define VULKAN_HPP_NAMESPACE vk",
		"namespace VULKAN_HPP_NAMESPACE {",
		"// prelude marker",
		"enum class Result {",
		"eSuccess = VK_SUCCESS,",
		"eErrorOutOfHostMemory = VK_ERROR_OUT_OF_HOST_MEMORY,",
		"enum class BufferUsageFlagBits : VkFlags {",
		"eTransferSrc = VK_BUFFER_USAGE_TRANSFER_SRC_BIT,",
		"inline void resultCheck( Result result, char const * message, std::initializer_list<Result> successCodes ) {",
		"struct BufferCreateInfo {",
		"StructureType::eBufferCreateInfo",
		"class Device {",
		"VULKAN_HPP_TYPESAFE_EXPLICIT Device( VkDevice handle ) VULKAN_HPP_NOEXCEPT : m_device( handle ) {}",
		"VkDevice m_device = {};",
		"class UniqueBuffer : public Buffer {",
		"#if defined( VK_USE_PLATFORM_XLIB_KHR )",
		"} while ( result == Result::eIncomplete );",
		`VULKAN_HPP_NAMESPACE_STRING "::Instance::enumeratePhysicalDevices", { Result::eSuccess, Result::eIncomplete } );`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "vkCmdExperimentalNV", "unsupported commands are never emitted")
}

func TestRenderRAIIHeader(t *testing.T) {
	files := render(t, am.Default())
	require.Contains(t, files, "vulkan_raii.hpp")
	out := string(files["vulkan_raii.hpp"])

	for _, want := range []string{
		`#include "vulkan.hpp"`,
		"namespace VULKAN_HPP_RAII_NAMESPACE {",
		"class LibraryLoader {",
		"class Buffer {",
		"Device const * m_device = nullptr;",
		"PFN_vkCreateBuffer m_vkCreateBuffer = {};",
		"m_device->m_vkDestroyBuffer( static_cast<VkDevice>( **m_device ), static_cast<VkBuffer>( m_buffer ), nullptr );",
		"class CommandBuffers : public std::vector<CommandBuffer> {",
		"void loadPFNs( Instance const & owner );",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderWithoutRAII(t *testing.T) {
	cfg := am.Default()
	cfg.Gen.RAII = false
	files := render(t, cfg)
	assert.Equal(t, []string{"vulkan.hpp"}, files.Names())
}

func TestRenderRequiresLoader(t *testing.T) {
	_, err := New(am.Default(), nil, nil, Meta{}).Render(&generator.Result{})
	assert.True(t, errors.IsStructuralError(err))
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PreludeFile), []byte("template <typename T> class ArrayProxy;\n"), 0o644))

	src, err := ReadSources(dir)
	require.NoError(t, err)
	assert.Equal(t, "template <typename T> class ArrayProxy;\n", src.Prelude)
	assert.Empty(t, src.RAIIPrelude)

	_, err = ReadSources(filepath.Join(dir, "missing"))
	assert.True(t, errors.IsConfigurationError(err))

	_, err = ReadSources(filepath.Join(dir, PreludeFile))
	assert.True(t, errors.IsConfigurationError(err))
}

func TestProcedureText(t *testing.T) {
	e := New(am.Default(), nil, nil, Meta{})

	tests := []struct {
		name string
		p    *synth.Procedure
		decl bool
		want string
	}{
		{
			name: "in-class member",
			p: &synth.Procedure{
				Class: "Device", Name: "waitIdle", ReturnType: "Result", Const: true, InClass: true,
				Body: synth.Body{Shape: synth.ShapePass, Call: "return static_cast<Result>( m_vkDeviceWaitIdle( m_device ) );"},
			},
			decl: true,
			want: "Result waitIdle() const {\n  return static_cast<Result>( m_vkDeviceWaitIdle( m_device ) );\n}\n",
		},
		{
			name: "commented declaration",
			p: &synth.Procedure{
				Class: "Device", Name: "destroy", ReturnType: "void", Commented: true, Tag: "disabled",
				DeclParams: []string{"int a"},
			},
			decl: true,
			want: "// [disabled]\n// void destroy( int a );\n",
		},
		{
			name: "out-of-class definition",
			p: &synth.Procedure{
				Class: "Device", Name: "waitIdle", ReturnType: "void", Inline: true, Const: true,
				Body: synth.Body{Shape: synth.ShapeCall, Call: "d.vkDeviceWaitIdle( m_device );"},
			},
			want: "VULKAN_HPP_INLINE void Device::waitIdle() const {\n  d.vkDeviceWaitIdle( m_device );\n}\n",
		},
		{
			name: "member initializer constructor",
			p: &synth.Procedure{
				Kind: synth.KindUniqueConstructor, Class: "Buffer", Name: "UniqueBuffer",
				DefParams:   []string{"Device device", "Buffer buffer"},
				Initializer: []synth.Init{{Member: "m_device", Value: "device"}, {Member: "Buffer", Value: "buffer"}},
			},
			want: "UniqueBuffer::UniqueBuffer( Device device, Buffer buffer )\n  : m_device( device ), Buffer( buffer )\n{\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &writer{}
			if tt.decl {
				e.declaration(w, tt.p)
			} else {
				e.definition(w, tt.p)
			}
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestBodyShapes(t *testing.T) {
	e := New(am.Default(), nil, nil, Meta{})

	tests := []struct {
		name string
		body synth.Body
		want string
	}{
		{
			name: "two-call without status",
			body: synth.Body{
				Shape:    synth.ShapeTwoCall,
				Locals:   []synth.Local{{Decl: "std::vector<X> xs"}, {Decl: "uint32_t count"}},
				NullCall: "f( &count, nullptr );",
				Call:     "f( &count, xs.data() );",
				Array:    "xs",
				Count:    "count",
				Return:   "xs",
			},
			want: "std::vector<X> xs;\nuint32_t count;\nf( &count, nullptr );\nxs.resize( count );\nf( &count, xs.data() );\n" +
				"if ( count < xs.size() ) {\n  xs.resize( count );\n}\nreturn xs;\n",
		},
		{
			name: "two-call with status",
			body: synth.Body{
				Shape:      synth.ShapeTwoCall,
				Locals:     []synth.Local{{Decl: "std::vector<X> xs"}, {Decl: "uint32_t count"}},
				ResultDecl: "Result result;",
				NullCall:   "result = f( &count, nullptr );",
				Call:       "result = f( &count, xs.data() );",
				Loop:       true,
				Success:    "Result::eSuccess",
				Incomplete: "Result::eIncomplete",
				Array:      "xs",
				Count:      "count",
			},
			want: "std::vector<X> xs;\nuint32_t count;\nResult result;\ndo {\n" +
				"  result = f( &count, nullptr );\n" +
				"  if ( ( result == Result::eSuccess ) && count ) {\n" +
				"    xs.resize( count );\n    result = f( &count, xs.data() );\n  }\n" +
				"} while ( result == Result::eIncomplete );\n" +
				"if ( count < xs.size() ) {\n  xs.resize( count );\n}\n",
		},
		{
			name: "known size with check",
			body: synth.Body{
				Shape:      synth.ShapeKnownSize,
				Locals:     []synth.Local{{Decl: "std::vector<X> xs", Init: "(n)"}},
				ResultDecl: "Result result;",
				Call:       "result = f( xs.data() );",
				Check:      &synth.Check{Result: "result", Message: `"m"`, Codes: []string{"Result::eSuccess", "Result::eIncomplete"}},
			},
			want: "std::vector<X> xs(n);\nResult result;\nresult = f( xs.data() );\n" +
				"resultCheck( result, \"m\", { Result::eSuccess, Result::eIncomplete } );\n",
		},
		{
			name: "collection fill",
			body: synth.Body{
				Shape:   synth.ShapeKnownSize,
				Call:    "f( items.data() );",
				Emplace: &synth.Emplace{Size: "items.size()", Array: "items", Iter: "item", Parent: "device"},
			},
			want: "f( items.data() );\nthis->reserve( items.size() );\nfor ( auto const & item : items ) {\n" +
				"  this->emplace_back( device, item );\n}\n",
		},
		{
			name: "comment",
			body: synth.Body{Shape: synth.ShapeComment, Comment: "vkFoo has no generated body"},
			want: "// vkFoo has no generated body\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &writer{}
			e.body(w, tt.body)
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestWriterKeepsPercentVerbatim(t *testing.T) {
	w := &writer{}
	w.open("if ( x % 2 )")
	w.line("y = x % 4;")
	w.linef("z = %d;", 3)
	w.close("")
	assert.Equal(t, "if ( x % 2 ) {\n  y = x % 4;\n  z = 3;\n}\n", w.String())
}

// Package emit renders a generation result as C++ headers: the primary
// header with enums, structs, handle and unique classes, and the RAII
// header with owning wrappers and their function tables.
package emit

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

// Source fragments copied into the generated headers.
const (
	PreludeFile     = "prelude.hpp"
	RAIIPreludeFile = "raii_prelude.hpp"
)

// Sources holds the hand-written fragments from the source directory.
type Sources struct {
	Prelude     string
	RAIIPrelude string
}

// ReadSources loads the fragments in dir. The directory must exist; each
// fragment is optional.
func ReadSources(dir string) (*Sources, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapConfiguration(err, "source directory "+dir)
	}
	if !info.IsDir() {
		return nil, errors.NewConfigurationError("source path %s is not a directory", dir)
	}

	src := &Sources{}
	for name, dst := range map[string]*string{PreludeFile: &src.Prelude, RAIIPreludeFile: &src.RAIIPrelude} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}
		*dst = string(data)
	}
	return src, nil
}

// Meta is written into the header of every file.
type Meta struct {
	Version  string
	Registry string
}

// Emitter renders generation results.
type Emitter struct {
	cfg  *am.Config
	reg  *registry.Registry
	src  *Sources
	meta Meta
	log  *zap.SugaredLogger
}

// New creates an emitter. A nil src renders without fragments.
func New(cfg *am.Config, reg *registry.Registry, src *Sources, meta Meta) *Emitter {
	if src == nil {
		src = &Sources{}
	}
	return &Emitter{cfg: cfg, reg: reg, src: src, meta: meta, log: logger.ComponentLogger("emit")}
}

// Render produces the output files for res.
func (e *Emitter) Render(res *generator.Result) (generator.Files, error) {
	if len(res.Classes) == 0 || !res.Classes[0].Handle.IsLoader {
		return nil, errors.NewStructuralError("generation result has no loader class")
	}
	files := generator.Files{
		e.cfg.Output.HeaderFile: []byte(e.primaryHeader(res)),
	}
	if e.cfg.Gen.RAII {
		files[e.cfg.Output.RAIIFile] = []byte(e.raiiHeader(res))
	}
	for name, content := range files {
		e.log.Debugw("Rendered file", logger.FieldFile, name, "bytes", len(content))
	}
	return files, nil
}

func (e *Emitter) metadata(w *writer) {
	version := e.meta.Version
	if version == "" {
		version = "dev"
	}
	w.line("// Generated by vkgen " + version)
	if e.meta.Registry != "" {
		w.line("// Registry: " + e.meta.Registry)
	}
	w.line("// Do not edit.")
	w.line("")
}

func guard(protect, suffix string) string {
	return strings.ToUpper(protect + suffix)
}

// macros defines every configurable token that is spelled through a
// define, so user overrides take precedence.
func (e *Emitter) macros(w *writer) {
	ns := e.cfg.Namespace
	for _, m := range []am.Macro{
		ns.Namespace, ns.NamespaceRAII, ns.NamespaceSTD, ns.Constexpr, ns.Inline,
		ns.Noexcept, ns.Explicit, ns.Dispatch, ns.DispatchType,
	} {
		if !m.UseDefine || m.Define == m.Value {
			continue
		}
		w.directive("#if !defined( %s )", m.Define)
		w.directive("#  define %s %s", m.Define, m.Value)
		w.directive("#endif")
	}
	if ns.Namespace.UseDefine {
		w.directive("#define VKGEN_STRINGIFY2( text ) #text")
		w.directive("#define VKGEN_STRINGIFY( text ) VKGEN_STRINGIFY2( text )")
		w.directive("#define %s_STRING VKGEN_STRINGIFY( %s )", ns.Namespace.Define, ns.Namespace.Define)
	}
	w.line("")
}

func (e *Emitter) primaryHeader(res *generator.Result) string {
	w := &writer{}
	g := guard(e.cfg.Output.FileProtect, "_HPP")
	e.metadata(w)
	w.directive("#ifndef %s", g)
	w.directive("#define %s", g)
	w.line("")
	for _, inc := range []string{"<algorithm>", "<initializer_list>", "<system_error>", "<vector>", "<vulkan/vulkan.h>"} {
		w.directive("#include %s", inc)
	}
	w.line("")
	e.macros(w)

	w.open("namespace " + e.cfg.Namespace.Namespace.Get())
	e.enums(w)
	w.raw(e.src.Prelude)
	e.support(w)
	e.structs(w)

	loader := res.Classes[0]
	for _, c := range res.Classes[1:] {
		e.handleClass(w, c)
	}
	if e.cfg.Gen.SmartHandles {
		for _, c := range res.Classes[1:] {
			e.uniqueClass(w, c)
		}
	}
	for _, p := range loader.Primary.Decls {
		e.protected(w, p.Protect, "", func() { e.declaration(w, p) })
	}
	w.line("")

	for _, c := range res.Classes {
		e.definitions(w, c.Handle, c.Primary.Defs)
		e.definitions(w, c.Handle, c.Unique.Defs)
	}
	w.close("  // namespace " + e.cfg.Namespace.Namespace.Get())
	w.directive("#endif  // %s", g)
	return w.String()
}

// support declares the status check used by generated bodies.
func (e *Emitter) support(w *writer) {
	w.open("inline void resultCheck( Result result, char const * message, std::initializer_list<Result> successCodes )")
	w.open("if ( std::find( successCodes.begin(), successCodes.end(), result ) == successCodes.end() )")
	if e.cfg.Gen.Exceptions {
		w.line("throw std::system_error( static_cast<int>( result ), std::system_category(), message );")
	} else {
		w.line("(void)message;")
		w.line("VULKAN_HPP_ASSERT( false );")
	}
	w.close("")
	w.close("")
	w.line("")
}

// protected wraps fn in guard unless the surrounding scope already has it.
func (e *Emitter) protected(w *writer, guard, outer string, fn func()) {
	if guard == outer {
		fn()
		return
	}
	w.protect(guard, fn)
}

func (e *Emitter) definitions(w *writer, h *registry.Handle, defs []*synth.Procedure) {
	outer := e.reg.Protect(h.ID)
	if h.IsLoader {
		outer = ""
	}
	if len(defs) == 0 {
		return
	}
	w.protect(outer, func() {
		for _, p := range defs {
			e.protected(w, p.Protect, outer, func() {
				e.definition(w, p)
				w.line("")
			})
		}
	})
}

package emit

import (
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

// access writes a label one level out from the class body.
func access(w *writer, label string) {
	w.depth--
	w.line(label + ":")
	w.depth++
}

// handleClass writes the primary wrapper: a value type around the raw
// handle with one member per generated procedure.
func (e *Emitter) handleClass(w *writer, c *generator.Class) {
	h := c.Handle
	name := h.ClassName()
	mv := h.MemberVar()
	noexcept := e.cfg.Namespace.Noexcept.Get()
	outer := e.reg.Protect(h.ID)

	w.protect(outer, func() {
		w.openf("class %s", name)
		access(w, "public")
		w.linef("using CType = %s;", h.Name)
		w.line("")
		w.linef("%s() = default;", name)
		w.linef("%s( std::nullptr_t ) %s {}", name, noexcept)
		w.linef("%s %s( %s handle ) %s : %s( handle ) {}", e.cfg.Namespace.Explicit.Get(), name, h.Name, noexcept, mv)
		w.line("")
		w.linef("operator %s() const %s { return %s; }", h.Name, noexcept, mv)
		w.linef("explicit operator bool() const %s { return %s != VK_NULL_HANDLE; }", noexcept, mv)
		w.linef("bool operator!() const %s { return %s == VK_NULL_HANDLE; }", noexcept, mv)
		w.line("")
		e.members(w, c.Primary.Decls, outer)
		access(w, "protected")
		w.linef("%s %s = {};", h.Name, mv)
		w.close(";")
		w.line("")
	})
}

// uniqueClass writes the owning variant of a primary wrapper. It stores
// what the destructor call needs and releases the handle on destruction.
func (e *Emitter) uniqueClass(w *writer, c *generator.Class) {
	if c.Unique.Len() == 0 {
		return
	}
	h := c.Handle
	base := h.ClassName()
	name := "Unique" + base
	noexcept := e.cfg.Namespace.Noexcept.Get()
	outer := e.reg.Protect(h.ID)

	w.protect(outer, func() {
		w.openf("class %s : public %s", name, base)
		access(w, "public")
		w.linef("%s() = default;", name)
		w.linef("%s( %s const & ) = delete;", name, name)
		w.linef("%s & operator=( %s const & ) = delete;", name, name)
		w.line("")
		e.members(w, c.Unique.Decls, outer)
		w.openf("~%s() %s", name, noexcept)
		w.openf("if ( %s )", h.MemberVar())
		w.line("destroy();")
		w.close("")
		w.close("")
		w.line("")
		w.linef("%s release() %s", base, noexcept)
		w.line("{")
		w.linef(indentUnit+"%s value = *this;", base)
		w.linef(indentUnit+"%s = nullptr;", h.MemberVar())
		w.line(indentUnit + "return value;")
		w.line("}")
		access(w, "private")
		for _, v := range h.UniqueVars {
			init := "{}"
			if v.Special() == param.SpecialOptional || v.IsPointer() || v.Suffix() == "const *" {
				init = "nullptr"
			}
			w.linef("%s %s = %s;", v.FullType(param.Names{}), v.Identifier(), init)
		}
		w.close(";")
		w.line("")
	})
}

// members declares procedures inside a class, each under its own guard
// when it differs from the class guard.
func (e *Emitter) members(w *writer, decls []*synth.Procedure, outer string) {
	if len(decls) == 0 {
		return
	}
	for _, p := range decls {
		e.protected(w, p.Protect, outer, func() { e.declaration(w, p) })
	}
	w.line("")
}

package emit

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/generator"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

func (e *Emitter) raiiHeader(res *generator.Result) string {
	w := &writer{}
	g := guard(e.cfg.Output.FileProtect, "_RAII_HPP")
	ns := e.cfg.Namespace
	e.metadata(w)
	w.directive("#ifndef %s", g)
	w.directive("#define %s", g)
	w.line("")
	w.directive("#include \"%s\"", e.cfg.Output.HeaderFile)
	w.line("")

	w.openf("namespace %s", ns.Namespace.Get())
	w.openf("namespace %s", ns.NamespaceRAII.Get())
	for _, c := range res.Classes {
		e.protected(w, e.classProtect(c.Handle), "", func() {
			w.linef("class %s;", c.Handle.ClassName())
		})
	}
	w.line("")
	w.raw(e.src.RAIIPrelude)

	for _, c := range res.Classes {
		e.raiiClass(w, res, c)
		e.collectionClass(w, c)
	}
	for _, c := range res.Classes {
		e.loadPFNsDefinition(w, res, c)
		e.definitions(w, c.Handle, c.RAII.Defs)
	}
	w.close("  // namespace " + ns.NamespaceRAII.Get())
	w.close("  // namespace " + ns.Namespace.Get())
	w.directive("#endif  // %s", g)
	return w.String()
}

func (e *Emitter) classProtect(h *registry.Handle) string {
	if h.IsLoader {
		return ""
	}
	return e.reg.Protect(h.ID)
}

// raiiClass writes an owning wrapper. Table holders carry the entry points
// of their own commands and of every subclass that reaches them; subclasses
// keep a pointer to their owner and call through its table.
func (e *Emitter) raiiClass(w *writer, res *generator.Result, c *generator.Class) {
	h := c.Handle
	name := h.ClassName()
	primary := e.cfg.Namespace.Namespace.Get() + "::"
	noexcept := e.cfg.Namespace.Noexcept.Get()
	outer := e.classProtect(h)

	w.protect(outer, func() {
		w.openf("class %s", name)
		access(w, "public")
		var decls []*synth.Procedure
		for _, p := range c.RAII.Decls {
			if p.Kind != synth.KindVectorConstructor {
				decls = append(decls, p)
			}
		}
		e.members(w, decls, outer)

		if !h.IsLoader {
			w.linef("%s( std::nullptr_t ) %s {}", name, noexcept)
			w.linef("%s( %s const & ) = delete;", name, name)
			w.linef("%s & operator=( %s const & ) = delete;", name, name)
			w.linef("~%s() { clear(); }", name)
			w.line("")
			e.clear(w, h)
			w.linef("%s%s const & operator*() const %s { return %s; }", primary, name, noexcept, h.MemberVar())
			if h.IsSubclass {
				super := param.StripVk(h.Superclass)
				w.linef("%s const * get%s() const { return %s; }", super, super, h.OwnerHandle)
			}
			w.line("")
		}

		pfns := e.pfnTable(res, h)
		if len(pfns) > 0 {
			w.line("PFN_vkVoidFunction getProcAddr( const char * name ) const;")
			if loader := e.loaderParam(h); loader != "" {
				w.linef("void loadPFNs( %s );", loader)
			}
			w.line("")
			for _, cmd := range pfns {
				e.protected(w, e.reg.Protect(cmd.ID), outer, func() {
					w.linef("PFN_%s m_%s = {};", cmd.Name, cmd.Name)
				})
			}
			w.line("")
		}

		if !h.IsLoader {
			access(w, "private")
			w.linef("%s%s %s = {};", primary, name, h.MemberVar())
			if h.IsSubclass {
				w.linef("%s const * %s = nullptr;", param.StripVk(h.Superclass), h.OwnerHandle)
			}
		}
		w.close(";")
		w.line("")
	})
}

// loaderParam is the parameter through which a holder loads its table:
// the object it was created from.
func (e *Emitter) loaderParam(h *registry.Handle) string {
	if h.IsLoader {
		return ""
	}
	return param.StripVk(h.Superclass) + " const & owner"
}

// pfnTable lists the commands h dispatches: those it hosts and those of
// subclasses whose superclass it is.
func (e *Emitter) pfnTable(res *generator.Result, h *registry.Handle) []*registry.Command {
	if h.IsSubclass {
		return nil
	}
	seen := make(map[string]bool)
	var out []*registry.Command
	for _, c := range res.Classes {
		k := c.Handle
		if k != h && !(k.IsSubclass && k.Superclass == h.Name) {
			continue
		}
		for _, m := range k.Members {
			cmd := m.Command
			if seen[cmd.Name] || !e.reg.Graph.CanGenerate(cmd.ID) {
				continue
			}
			seen[cmd.Name] = true
			out = append(out, cmd)
		}
	}
	return out
}

func (e *Emitter) loadPFNsDefinition(w *writer, res *generator.Result, c *generator.Class) {
	h := c.Handle
	loader := e.loaderParam(h)
	pfns := e.pfnTable(res, h)
	if loader == "" || len(pfns) == 0 {
		return
	}
	outer := e.classProtect(h)
	w.protect(outer, func() {
		w.openf("%s void %s::loadPFNs( %s )", e.cfg.Namespace.Inline.Get(), h.ClassName(), loader)
		w.line("(void)owner;")
		for _, cmd := range pfns {
			e.protected(w, e.reg.Protect(cmd.ID), outer, func() {
				w.linef("m_%s = PFN_%s( getProcAddr( \"%s\" ) );", cmd.Name, cmd.Name, cmd.Name)
			})
		}
		w.close("")
		w.line("")
	})
}

// clear releases the handle through its destructor command when its
// arguments can be derived from the wrapper's state.
func (e *Emitter) clear(w *writer, h *registry.Handle) {
	noexcept := e.cfg.Namespace.Noexcept.Get()
	w.openf("void clear() %s", noexcept)
	if len(h.Dtors) > 0 && e.reg.Graph.CanGenerate(h.Dtors[0].ID) {
		dtor := h.Dtors[0]
		w.openf("if ( %s )", h.MemberVar())
		if args, ok := e.dtorArgs(h, dtor); ok {
			src := "m_"
			if h.IsSubclass {
				src = h.OwnerHandle + "->m_"
			}
			w.linef("%s%s( %s );", src, dtor.Name, strings.Join(args, ", "))
		} else {
			w.linef("// %s needs state this wrapper does not keep", dtor.Name)
		}
		w.close("")
	}
	w.linef("%s = nullptr;", h.MemberVar())
	w.close("")
	w.line("")
}

func (e *Emitter) dtorArgs(h *registry.Handle, dtor *registry.Command) ([]string, bool) {
	args := make([]string, 0, len(dtor.Params))
	for _, p := range dtor.Params {
		switch {
		case p.Original.Name == h.Name && p.IsPointer():
			args = append(args, "reinterpret_cast<const "+h.Name+" *>( &"+h.MemberVar()+" )")
		case p.Original.Name == h.Name:
			args = append(args, "static_cast<"+h.Name+">( "+h.MemberVar()+" )")
		case p.Original.Name == "VkAllocationCallbacks":
			args = append(args, "nullptr")
		case h.IsSubclass && p.Original.Name == h.Superclass:
			args = append(args, "static_cast<"+h.Superclass+">( **"+h.OwnerHandle+" )")
		case classify.ClassifyArraySize(p) == classify.ArraySizeConstCount:
			args = append(args, "1")
		default:
			return nil, false
		}
	}
	return args, true
}

// collectionClass writes the vector of wrappers built by a vector
// constructor.
func (e *Emitter) collectionClass(w *writer, c *generator.Class) {
	var ctors []*synth.Procedure
	for _, p := range c.RAII.Decls {
		if p.Kind == synth.KindVectorConstructor {
			ctors = append(ctors, p)
		}
	}
	if len(ctors) == 0 {
		return
	}
	outer := e.classProtect(c.Handle)
	w.protect(outer, func() {
		w.openf("class %s : public std::vector<%s>", ctors[0].Name, c.Handle.ClassName())
		access(w, "public")
		e.members(w, ctors, outer)
		w.close(";")
		w.line("")
	})
}

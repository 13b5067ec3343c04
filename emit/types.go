package emit

import (
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// valueGenerated reports whether an enumerant is emitted: its node can be
// generated, or no extension owns it.
func (e *Emitter) valueGenerated(v *registry.EnumValue) bool {
	if v.ID == registry.InvalidNode {
		return true
	}
	return e.reg.Graph.CanGenerate(v.ID) || e.reg.Owner(v.ID) == ""
}

func (e *Emitter) enums(w *writer) {
	for _, en := range e.reg.Enums() {
		if !e.reg.Graph.CanGenerate(en.ID) {
			continue
		}
		w.protect(e.reg.Protect(en.ID), func() {
			name := param.StripVk(en.Name)
			if en.Bitmask {
				w.openf("enum class %s : VkFlags", name)
			} else {
				w.openf("enum class %s", name)
			}
			seen := make(map[string]bool)
			for _, v := range en.Values {
				if !e.valueGenerated(v) {
					continue
				}
				id := e.reg.EnumValueName(en.Name, v.Name, en.Bitmask)
				if seen[id] {
					continue
				}
				seen[id] = true
				e.protected(w, e.reg.Protect(v.ID), e.reg.Protect(en.ID), func() {
					w.linef("%s = %s,", id, v.Name)
				})
			}
			w.close(";")
			for _, a := range en.Aliases {
				w.linef("using %s = %s;", param.StripVk(a), name)
			}
			w.line("")
		})
	}
}

func (e *Emitter) structs(w *writer) {
	var generated []*registry.Struct
	for _, s := range e.reg.Structs() {
		if e.reg.Graph.CanGenerate(s.ID) {
			generated = append(generated, s)
		}
	}
	for _, s := range generated {
		w.protect(e.reg.Protect(s.ID), func() {
			w.linef("%s %s;", s.Keyword(), param.StripVk(s.Name))
		})
	}
	w.line("")
	for _, s := range generated {
		w.protect(e.reg.Protect(s.ID), func() { e.structure(w, s) })
	}
}

func (e *Emitter) structure(w *writer, s *registry.Struct) {
	name := param.StripVk(s.Name)
	w.openf("%s %s", s.Keyword(), name)
	if s.StructTypeValue != "" {
		w.linef("static %s StructureType structureType = StructureType::%s;",
			e.cfg.Namespace.Constexpr.Get(), e.reg.EnumValueName("VkStructureType", s.StructTypeValue, false))
		w.line("")
	}
	for i, m := range s.Members {
		decl := m.FullType(param.Names{}) + " " + m.Name
		if m.ArraySize != "" {
			decl += "[" + m.ArraySize + "]"
		}
		switch {
		case m.Name == "sType" && s.StructTypeValue != "":
			decl += " = structureType"
		case e.cfg.Gen.StructNoinit, s.Union && i > 0:
		default:
			decl += " = {}"
		}
		w.line(decl + ";")
	}
	w.close(";")
	for _, a := range s.Aliases {
		w.linef("using %s = %s;", param.StripVk(a), name)
	}
	w.line("")
}

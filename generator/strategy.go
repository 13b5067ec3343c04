package generator

import (
	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

// SelectStrategies lists the wrapper variants generated for m in ns, in
// emission order. Constructors and unique wrappers are planned per handle,
// not here.
func SelectStrategies(cfg *am.Config, reg *registry.Registry, m *registry.Member, ns param.Namespace) []synth.Kind {
	c := m.Command
	if ns == param.NamespacePrimary && m.RAIIOnly {
		return []synth.Kind{synth.KindSuppressed}
	}
	if trivial(c) {
		return []synth.Kind{synth.KindPass}
	}

	out, hasOut := outputParam(c)
	if ns == param.NamespaceRAII {
		return raiiStrategies(reg, c, out, hasOut)
	}

	kinds := []synth.Kind{synth.KindDirect}
	switch {
	case hasOut && enumerates(c, out):
		kinds = append(kinds, synth.KindEnumerate)
	case hasOut && classify.CreatesObject(c.Category):
		kinds = append(kinds, synth.KindCreate)
		if cfg.Gen.SmartHandles && uniqueable(reg, out) {
			kinds = append(kinds, synth.KindCreateUnique)
		}
	case hasOut && (classify.GetsObject(c.Category) || c.Category == classify.Write):
		kinds = append(kinds, synth.KindGet)
	}
	return kinds
}

func raiiStrategies(reg *registry.Registry, c *registry.Command, out *param.Param, hasOut bool) []synth.Kind {
	switch {
	case hasOut && enumerates(c, out):
		return []synth.Kind{synth.KindEnumerate}
	case hasOut && classify.CreatesObject(c.Category):
		h, ok := reg.LookupHandle(out.Original.Name)
		switch {
		case !ok || h.IsLoader:
			return []synth.Kind{synth.KindCreateHandle}
		case out.Len != "":
			return []synth.Kind{synth.KindVectorRAII}
		default:
			return []synth.Kind{synth.KindCreate}
		}
	case hasOut && (classify.GetsObject(c.Category) || c.Category == classify.Write):
		return []synth.Kind{synth.KindGet}
	}
	return []synth.Kind{synth.KindDirect}
}

// trivial commands take no pointers and report no status; their wrapper
// only forwards the arguments.
func trivial(c *registry.Command) bool {
	return !classify.HasPointerParam(c.Params) && c.ReturnKind != classify.ReturnStatus
}

// outputParam is the last non-const pointer, the slot a command writes to.
func outputParam(c *registry.Command) (*param.Param, bool) {
	p, err := classify.LastPointerParam(c.Params)
	if err != nil || p.IsConst() {
		return nil, false
	}
	return p, true
}

// enumerates reports whether the output is counted through a pointer, the
// shape of a two-call query.
func enumerates(c *registry.Command, out *param.Param) bool {
	if c.Category == classify.Enumerate {
		return true
	}
	if !out.HasLengthVar() {
		return false
	}
	l := out.LengthVar()
	return l.IsPointer() && !l.IsConst()
}

func uniqueable(reg *registry.Registry, out *param.Param) bool {
	if out.Len != "" {
		return false
	}
	h, ok := reg.LookupHandle(out.Original.Name)
	return ok && !h.IsLoader && len(h.Dtors) > 0
}

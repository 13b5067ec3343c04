// Package generator runs a generation pass: it places every command on the
// class that hosts it, selects the wrapper variants per namespace, runs the
// resolvers and collects their procedures per class.
package generator

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// tableHolders carry their own function table. Every other handle reaches
// its entry points through the nearest holder above it.
var tableHolders = map[string]bool{
	"VkInstance": true,
	"VkDevice":   true,
}

// getAddrCommand is hosted by the loader regardless of its parameters.
const getAddrCommand = "vkGetInstanceProcAddr"

// Analyze derives class structure from the registry: superclasses and
// owners, members, constructor and destructor candidates, creation
// categories and the members a unique wrapper stores. It is idempotent.
func Analyze(reg *registry.Registry, cfg *am.Config) error {
	reset(reg.Loader)
	for _, h := range reg.Handles() {
		reset(h)
	}

	for _, h := range reg.Handles() {
		super, err := superclass(reg, h)
		if err != nil {
			return err
		}
		h.Superclass = super
		h.IsSubclass = !tableHolders[h.Name]
		if h.IsSubclass {
			h.OwnerHandle = "m_" + lowerFirst(param.StripVk(super))
		}
	}

	// FlagIndirect and FlagRAIIOnly are outputs of this phase. They are
	// recomputed from scratch here and only read by synthesis.
	for _, c := range reg.Commands() {
		c.SetFlag(registry.FlagIndirect, false)
		c.SetFlag(registry.FlagRAIIOnly, false)

		m := hostMember(reg, c)
		host := m.Host
		host.Members = append(host.Members, m)
		if c.Name == getAddrCommand {
			reg.Loader.GetAddr = m
		}

		if host.IsSubclass && classify.IsIndirectCandidate(c.Category, c.Params, host.Name) {
			c.SetFlag(registry.FlagIndirect, true)
			if owner, ok := reg.LookupHandle(host.Superclass); ok {
				owner.Members = append(owner.Members, &registry.Member{
					Command:  c,
					Host:     owner,
					Name:     classify.MemberName(c.Name, hostClass(owner)),
					RAIIOnly: true,
				})
				c.SetFlag(registry.FlagRAIIOnly, true)
			}
		}

		switch {
		case classify.DestroysObject(c.Category):
			if p, err := classify.LastHandleParam(c.Params); err == nil {
				if h, ok := reg.LookupHandle(p.Original.Name); ok {
					h.Dtors = append(h.Dtors, c)
				}
			}
		case classify.CreatesObject(c.Category):
			p, err := classify.LastPointerParam(c.Params)
			if err != nil {
				continue
			}
			h, ok := reg.LookupHandle(p.Original.Name)
			if !ok || h.IsLoader {
				continue
			}
			ctor := &registry.Member{Command: c, Host: h, Name: h.ClassName()}
			if p.Len != "" {
				h.VectorCtors = append(h.VectorCtors, ctor)
			} else {
				h.Ctors = append(h.Ctors, ctor)
			}
			setCreation(h, c.Category)
		}
	}

	for _, h := range reg.Handles() {
		if h.UniqueVariant() && len(h.Dtors) > 0 {
			h.UniqueVars = uniqueVars(reg, cfg, h)
		}
	}
	return nil
}

func reset(h *registry.Handle) {
	h.ClearGenerated()
	h.Members = nil
	h.Ctors = nil
	h.Dtors = nil
	h.VectorCtors = nil
	h.GetAddr = nil
	h.Superclass = ""
	h.IsSubclass = false
	h.OwnerHandle = ""
	h.Creation = registry.CreationNone
}

// superclass walks the parent chain to the nearest table holder. Roots
// answer the loader.
func superclass(reg *registry.Registry, h *registry.Handle) (string, error) {
	seen := map[string]bool{h.Name: true}
	for p := h.Parent; p != ""; {
		if tableHolders[p] {
			return p, nil
		}
		if seen[p] {
			return "", errors.NewStructuralError("handle %s has a cyclic parent chain", h.Name)
		}
		seen[p] = true
		ph, ok := reg.LookupHandle(p)
		if !ok {
			return "", errors.NewLookupError("handle "+p, "parent chain of "+h.Name)
		}
		p = ph.Parent
	}
	return registry.LoaderName, nil
}

// hostMember places c on the handle named by its first parameter, or on
// the loader.
func hostMember(reg *registry.Registry, c *registry.Command) *registry.Member {
	host := reg.Loader
	if len(c.Params) > 0 && c.Name != getAddrCommand {
		if h, ok := reg.LookupHandle(c.Params[0].Original.Name); ok {
			host = h
		}
	}
	return &registry.Member{Command: c, Host: host, Name: classify.MemberName(c.Name, hostClass(host))}
}

func hostClass(h *registry.Handle) string {
	if h.IsLoader {
		return ""
	}
	return h.ClassName()
}

func setCreation(h *registry.Handle, c classify.Category) {
	switch {
	case c == classify.Create:
		h.Creation = registry.CreationCreate
	case h.Creation == registry.CreationNone:
		h.Creation = registry.CreationAllocate
	}
}

// uniqueVars are the owner, allocator and dispatcher a unique wrapper needs
// to call the handle's destructor.
func uniqueVars(reg *registry.Registry, cfg *am.Config, h *registry.Handle) []*param.Param {
	dtor := h.Dtors[0]
	var vars []*param.Param
	if len(dtor.Params) > 0 {
		first := dtor.Params[0]
		if first.Original.Name != h.Name && reg.IsHandle(first.Original.Name) {
			name := "m_" + lowerFirst(param.StripVk(first.Original.Name))
			owner := param.New(param.Type{Name: first.Original.Name}, name)
			owner.Kind = param.KindHandle
			vars = append(vars, owner)
		}
	}
	if cfg.Gen.AllocatorParam {
		for _, p := range dtor.Params {
			if p.Original.Name == "VkAllocationCallbacks" {
				a := param.New(param.Type{Prefix: "const", Name: p.Original.Name, Suffix: "*"}, "m_allocator")
				a.ConvertToOptional()
				vars = append(vars, a)
				break
			}
		}
	}
	if cfg.Gen.DispatchParam {
		vars = append(vars, param.New(param.Type{Name: cfg.Namespace.DispatchType.Get(), Suffix: "const *"}, "m_dispatch"))
	}
	return vars
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

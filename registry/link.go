package registry

import (
	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// Link resolves cross references once every element is registered: alias
// commands take their target's shape, parameter kinds and length pairs are
// bound, dependency edges are added, and elements provided only by
// unsupported extensions are marked unsupported.
func (r *Registry) Link() error {
	for _, c := range r.Commands() {
		if c.Alias == "" {
			continue
		}
		target, err := r.Command(c.Alias)
		if err != nil {
			r.log.Warnw("alias target missing", logger.FieldCommand, c.Name, "alias", c.Alias)
			continue
		}
		c.SetFlag(FlagAlias, true)
		if len(c.Params) == 0 {
			c.ReturnType = target.ReturnType
			c.Params = param.CloneAll(target.Params)
			c.SuccessCodes = append([]string(nil), target.SuccessCodes...)
			c.ErrorCodes = append([]string(nil), target.ErrorCodes...)
			c.Classify()
		}
		r.Graph.AddDependency(c.ID, target.ID)
	}

	for _, c := range r.Commands() {
		r.bindParams(c.Params)
		if c.ReturnKind == classify.ReturnStatus && len(c.SuccessCodes) == 0 {
			c.SuccessCodes = []string{"VK_SUCCESS"}
		}
		r.dependOnType(c.ID, c.ReturnType)
		for _, p := range c.Params {
			r.dependOnType(c.ID, p.Original.Name)
		}
	}

	for _, s := range r.Structs() {
		r.bindParams(s.Members)
		for _, m := range s.Members {
			if m.Original.Name == s.Name {
				continue
			}
			r.dependOnType(s.ID, m.Original.Name)
		}
	}

	for _, h := range r.Handles() {
		if h.Parent != "" {
			if _, ok := r.LookupHandle(h.Parent); !ok {
				return errors.NewStructuralError("handle %s has unknown parent %s", h.Name, h.Parent)
			}
			r.dependOnType(h.ID, h.Parent)
		}
	}

	r.markUnsupported()
	return nil
}

func (r *Registry) bindParams(params []*param.Param) {
	for _, p := range params {
		p.Kind = r.ParamKind(p.Original.Name)
	}
	param.Bind(params)
}

func (r *Registry) dependOnType(id NodeID, typeName string) {
	dep, ok := r.ids[typeName]
	if !ok || dep == id {
		return
	}
	r.Graph.AddDependency(id, dep)
}

// markUnsupported excludes elements that no feature and no supported
// extension provides but some unsupported extension does.
func (r *Registry) markUnsupported() {
	provided := make(map[NodeID]bool)
	for _, f := range r.features {
		for _, id := range f.Elements {
			provided[id] = true
		}
	}
	for _, e := range r.Extensions() {
		if !e.Supported {
			continue
		}
		for _, id := range e.Elements {
			provided[id] = true
		}
	}
	for _, e := range r.Extensions() {
		if e.Supported {
			continue
		}
		for _, id := range e.Elements {
			if !provided[id] && r.Graph.IsSupported(id) {
				r.Graph.SetUnsupported(id)
				r.log.Debugw("element unsupported", logger.FieldType, r.Graph.Name(id), logger.FieldExtension, e.Name)
			}
		}
	}
}

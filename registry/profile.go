package registry

import (
	"github.com/Masterminds/semver/v3"

	"github.com/Vulkan-FIT/vkcpp-gen/logger"
)

// SetExtensionEnabled toggles an extension and every element it requires.
// This is a bulk toggle, not a subscription: disabling an extension also
// disables elements another enabled extension lists.
func (r *Registry) SetExtensionEnabled(name string, v bool) error {
	e, err := r.Extension(name)
	if err != nil {
		return err
	}
	r.Graph.SetEnabled(e.ID, v)
	if !e.Supported {
		return nil
	}
	for _, id := range e.Elements {
		r.Graph.SetEnabled(id, v)
	}
	return nil
}

// SetPlatformEnabled toggles a platform and cascades to its extensions.
func (r *Registry) SetPlatformEnabled(name string, v bool) error {
	p, err := r.Platform(name)
	if err != nil {
		return err
	}
	p.Enabled = v
	for _, ext := range p.Extensions {
		if err := r.SetExtensionEnabled(ext, v); err != nil {
			return err
		}
	}
	return nil
}

// EnableAll selects or deselects every platform, extension and element.
func (r *Registry) EnableAll(v bool) {
	for _, p := range r.Platforms() {
		p.Enabled = v
	}
	r.Graph.Each(func(id NodeID) {
		r.Graph.SetEnabled(id, v)
	})
}

// SetForceRequired pins the named elements as required. Unknown names are
// reported and skipped.
func (r *Registry) SetForceRequired(names []string) {
	for _, name := range names {
		id, ok := r.ids[name]
		if !ok {
			r.log.Warnw("force_required names an unknown element", logger.FieldType, name)
			continue
		}
		r.Graph.SetForceRequired(id, true)
	}
}

// ApplyAPIVersion marks elements introduced only by core versions newer
// than max as unsupported. Elements also provided by an older core version
// or by a supported extension stay available.
func (r *Registry) ApplyAPIVersion(max *semver.Version) int {
	if max == nil {
		return 0
	}
	allowed := make(map[NodeID]bool)
	for _, f := range r.features {
		if f.Number != nil && !f.Number.GreaterThan(max) {
			for _, id := range f.Elements {
				allowed[id] = true
			}
		}
	}
	for _, e := range r.Extensions() {
		if !e.Supported {
			continue
		}
		for _, id := range e.Elements {
			allowed[id] = true
		}
	}

	removed := 0
	for _, f := range r.features {
		if f.Number == nil || !f.Number.GreaterThan(max) {
			continue
		}
		for _, id := range f.Elements {
			if !allowed[id] && r.Graph.IsSupported(id) {
				r.Graph.SetUnsupported(id)
				removed++
			}
		}
	}
	r.log.Infow("applied api version cap", "max", max.String(), logger.FieldCount, removed)
	return removed
}

// Stats counts generatable elements per kind.
func (r *Registry) Stats() map[Kind]int {
	out := make(map[Kind]int)
	for _, id := range r.Graph.GenerateSet() {
		out[r.Graph.Kind(id)]++
	}
	return out
}

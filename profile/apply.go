package profile

import (
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// maxSettleRounds bounds the settle loop; real registries settle in two.
const maxSettleRounds = 32

// Apply replaces the selection of r with the profile. Elements the profile
// does not mention start disabled.
//
// Entries are first resolved to a desired state per node, then the graph is
// settled: wanted nodes are enabled and unwanted ones disabled until nothing
// changes, since disabling a node can release a dependency that another
// entry wants.
func Apply(r *registry.Registry, p *Profile) error {
	log := logger.ComponentLogger("profile")
	r.EnableAll(false)

	desired := make(map[registry.NodeID]bool)
	setExtension := func(name string, v bool) {
		e, err := r.Extension(name)
		if err != nil {
			return
		}
		desired[e.ID] = v
		if !e.Supported {
			return
		}
		for _, id := range e.Elements {
			desired[id] = v
		}
	}

	for _, entry := range p.Platforms {
		match, err := entry.matcher()
		if err != nil {
			return err
		}
		hit := false
		for _, pl := range r.Platforms() {
			if !match(pl.Name) {
				continue
			}
			hit = true
			pl.Enabled = entry.Enabled
			for _, ext := range pl.Extensions {
				setExtension(ext, entry.Enabled)
			}
		}
		if !hit {
			log.Warnw("profile entry matches nothing", logger.FieldPlatform, entryLabel(entry))
		}
	}

	for _, entry := range p.Extensions {
		match, err := entry.matcher()
		if err != nil {
			return err
		}
		hit := false
		for _, e := range r.Extensions() {
			if match(e.Name) {
				hit = true
				setExtension(e.Name, entry.Enabled)
			}
		}
		if !hit {
			log.Warnw("profile entry matches nothing", logger.FieldExtension, entryLabel(entry))
		}
	}

	for _, section := range []struct {
		entries []Entry
		command bool
	}{{p.Types, false}, {p.Commands, true}} {
		for _, entry := range section.entries {
			if err := selectNodes(r, entry, section.command, desired); err != nil {
				return err
			}
		}
	}

	rounds, err := settle(r, desired)
	if err != nil {
		return err
	}
	log.Infow("profile applied", logger.FieldCount, len(desired), "rounds", rounds,
		logger.FieldTotalCount, len(r.Graph.GenerateSet()))
	return nil
}

func selectNodes(r *registry.Registry, entry Entry, command bool, desired map[registry.NodeID]bool) error {
	match, err := entry.matcher()
	if err != nil {
		return err
	}
	hit := false
	r.Graph.Each(func(id registry.NodeID) {
		kind := r.Graph.Kind(id)
		if kind == registry.KindExtension || (kind == registry.KindCommand) != command {
			return
		}
		if match(r.Graph.Name(id)) {
			hit = true
			desired[id] = entry.Enabled
		}
	})
	if !hit {
		logger.Debugw("profile entry matches nothing", "entry", entryLabel(entry))
	}
	return nil
}

func settle(r *registry.Registry, desired map[registry.NodeID]bool) (int, error) {
	g := r.Graph
	for round := 1; round <= maxSettleRounds; round++ {
		changed := false
		g.Each(func(id registry.NodeID) {
			want, ok := desired[id]
			if !ok || !g.IsSupported(id) || g.IsEnabled(id) == want {
				return
			}
			g.SetEnabled(id, want)
			changed = true
		})
		if !changed {
			return round, nil
		}
	}
	return maxSettleRounds, errors.NewConfigurationError("profile did not settle after %d rounds", maxSettleRounds)
}

func entryLabel(e Entry) string {
	if e.Pattern != "" {
		return "/" + e.Pattern + "/"
	}
	return e.Name
}

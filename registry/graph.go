package registry

import (
	"sort"
)

// NodeID is a stable handle into a Graph's arena.
type NodeID int32

// InvalidNode is returned where no node exists.
const InvalidNode NodeID = -1

// Kind is the registry category a node belongs to.
type Kind uint8

const (
	KindType Kind = iota
	KindHandle
	KindStruct
	KindEnum
	KindEnumValue
	KindCommand
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum_value"
	case KindCommand:
		return "command"
	case KindExtension:
		return "extension"
	default:
		return "type"
	}
}

type node struct {
	name          string
	kind          Kind
	supported     bool
	enabled       bool
	forceRequired bool
	deps          []NodeID
	depSet        map[NodeID]struct{}
	subscribers   map[NodeID]struct{}
}

// Graph is the requirement graph. A node is generated when it is supported
// and either enabled by the profile or required by an enabled dependent.
//
// Enabling a node subscribes it to each of its dependencies; a dependency
// whose subscriber set becomes non-empty enables itself, and one whose set
// becomes empty disables itself. Edge insertion and removal are idempotent,
// which is what stops propagation around cycles.
type Graph struct {
	nodes []node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add creates a supported, disabled node and returns its handle.
func (g *Graph) Add(name string, kind Kind) NodeID {
	g.nodes = append(g.nodes, node{
		name:        name,
		kind:        kind,
		supported:   true,
		depSet:      make(map[NodeID]struct{}),
		subscribers: make(map[NodeID]struct{}),
	})
	return NodeID(len(g.nodes) - 1)
}

// Len is the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) Name(id NodeID) string { return g.nodes[id].name }
func (g *Graph) Kind(id NodeID) Kind   { return g.nodes[id].kind }

// AddDependency records that id needs dep. Dependencies are an ordered set;
// repeated edges are ignored. An edge added while id is enabled takes
// effect immediately.
func (g *Graph) AddDependency(id, dep NodeID) {
	if !g.valid(id) || !g.valid(dep) {
		return
	}
	n := &g.nodes[id]
	if _, ok := n.depSet[dep]; ok {
		return
	}
	n.depSet[dep] = struct{}{}
	n.deps = append(n.deps, dep)
	if n.enabled && n.supported {
		if _, ok := n.subscribers[dep]; !ok {
			g.Subscribe(dep, id)
		}
	}
}

// Dependencies returns the dependency list in insertion order.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	return append([]NodeID(nil), g.nodes[id].deps...)
}

// Subscribers returns the current subscribers in ascending order.
func (g *Graph) Subscribers(id NodeID) []NodeID {
	out := make([]NodeID, 0, len(g.nodes[id].subscribers))
	for s := range g.nodes[id].subscribers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetUnsupported excludes a node permanently.
func (g *Graph) SetUnsupported(id NodeID) {
	g.nodes[id].supported = false
}

func (g *Graph) IsSupported(id NodeID) bool { return g.nodes[id].supported }

// IsEnabled reports the profile selection of a supported node.
func (g *Graph) IsEnabled(id NodeID) bool {
	n := &g.nodes[id]
	return n.enabled && n.supported
}

// SetForceRequired pins a node as required regardless of subscribers.
func (g *Graph) SetForceRequired(id NodeID, v bool) {
	g.nodes[id].forceRequired = v
}

// IsRequired reports whether some enabled node, or configuration, needs id.
func (g *Graph) IsRequired(id NodeID) bool {
	n := &g.nodes[id]
	return len(n.subscribers) > 0 || n.forceRequired
}

// CanGenerate is the generation predicate. It is evaluated on every call.
func (g *Graph) CanGenerate(id NodeID) bool {
	n := &g.nodes[id]
	return n.supported && (n.enabled || len(n.subscribers) > 0 || n.forceRequired)
}

// SetEnabled changes the profile selection and propagates it to
// dependencies. A dependency that is itself a subscriber of id is skipped.
func (g *Graph) SetEnabled(id NodeID, v bool) {
	n := &g.nodes[id]
	if n.enabled == v || !n.supported {
		return
	}
	n.enabled = v
	for _, d := range n.deps {
		if _, mutual := g.nodes[id].subscribers[d]; mutual {
			continue
		}
		if v {
			g.Subscribe(d, id)
		} else {
			g.Unsubscribe(d, id)
		}
	}
}

// Subscribe adds requester to id's subscribers. The first subscriber
// enables id.
func (g *Graph) Subscribe(id, requester NodeID) {
	n := &g.nodes[id]
	if _, ok := n.subscribers[requester]; ok {
		return
	}
	empty := len(n.subscribers) == 0
	n.subscribers[requester] = struct{}{}
	if empty {
		g.SetEnabled(id, true)
	}
}

// Unsubscribe removes requester from id's subscribers. Removing the last
// subscriber disables id.
func (g *Graph) Unsubscribe(id, requester NodeID) {
	n := &g.nodes[id]
	if _, ok := n.subscribers[requester]; !ok {
		return
	}
	delete(n.subscribers, requester)
	if len(n.subscribers) == 0 {
		g.SetEnabled(id, false)
	}
}

// Each visits every node id in creation order.
func (g *Graph) Each(fn func(id NodeID)) {
	for i := range g.nodes {
		fn(NodeID(i))
	}
}

// GenerateSet returns the ids of every generatable node.
func (g *Graph) GenerateSet() []NodeID {
	var out []NodeID
	for i := range g.nodes {
		if g.CanGenerate(NodeID(i)) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Package synth turns a command bound to a host handle into the procedure
// shapes of its wrapper methods.
//
// A Resolver owns one MemberContext, a namespace-scoped clone of the
// command's parameters. Constructing the resolver reshapes those parameters
// (array views, references, outputs returned by value); Generate derives the
// three argument projections and picks a body shape, then appends the result
// to an Output and records the signature on the host's ledger.
package synth

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// Env is what every resolver reads but never writes.
type Env struct {
	Config   *am.Config
	Registry *registry.Registry
}

// NewEnv bundles a configuration and a settled registry.
func NewEnv(cfg *am.Config, reg *registry.Registry) *Env {
	return &Env{Config: cfg, Registry: reg}
}

// Names returns the type qualifiers used inside procedures of ns. Primary
// procedures see their own types unqualified; RAII procedures qualify
// primary types.
func (e *Env) Names(ns param.Namespace) param.Names {
	if ns == param.NamespaceRAII {
		return param.Names{Primary: e.Config.Namespace.Namespace.Get() + "::"}
	}
	return param.Names{}
}

// MemberContext is a command bound to a host, cloned per namespace.
type MemberContext struct {
	env *Env

	Command   *registry.Command
	Host      *registry.Handle
	Namespace param.Namespace
	// Name is the generated method name, Command.Name the entry point.
	Name   string
	Params []*param.Param

	Category     classify.Category
	PFNReturn    classify.ReturnKind
	SuccessCodes []string

	pfnSource string
	pfnName   string

	RAIIOnly            bool
	UseThis             bool
	Static              bool
	InUnique            bool
	Constructor         bool
	Inline              bool
	DisableSubstitution bool
	// KeepSelf keeps a host-typed parameter in the signature view.
	KeepSelf bool
}

// NewMemberContext clones m's command for one namespace.
func NewMemberContext(env *Env, m *registry.Member, ns param.Namespace, constructor bool) *MemberContext {
	cmd := m.Command
	return &MemberContext{
		env:          env,
		Command:      cmd,
		Host:         m.Host,
		Namespace:    ns,
		Name:         m.Name,
		Params:       param.CloneAll(cmd.Params),
		Category:     cmd.Category,
		PFNReturn:    cmd.ReturnKind,
		SuccessCodes: append([]string(nil), cmd.SuccessCodes...),
		RAIIOnly:     m.RAIIOnly,
		Static:       m.Host.IsLoader && ns == param.NamespacePrimary,
		Constructor:  constructor,
		Inline:       ns == param.NamespaceRAII,
	}
}

// Clone copies the context with an independent parameter list.
func (c *MemberContext) Clone() *MemberContext {
	out := *c
	out.Params = param.CloneAll(c.Params)
	out.SuccessCodes = append([]string(nil), c.SuccessCodes...)
	return &out
}

// SetPFNSource overrides the expression the entry point is reached
// through, such as "m_dispatch->".
func (c *MemberContext) SetPFNSource(src string) { c.pfnSource = src }

// SetPFNName overrides the called function name.
func (c *MemberContext) SetPFNName(name string) { c.pfnName = name }

// Env returns the shared environment.
func (c *MemberContext) Env() *Env { return c.env }

func (c *MemberContext) names() param.Names { return c.env.Names(c.Namespace) }

func (c *MemberContext) sameType(p *param.Param) bool {
	return p.Original.Name != "" && p.Original.Name == c.Host.Name
}

type filterFunc func(c *MemberContext, p *param.Param, same bool) bool

func filterProto(c *MemberContext, p *param.Param, same bool) bool {
	if p.Ignored() {
		return false
	}
	if c.InUnique && c.uniqueVar(p) != nil {
		return false
	}
	return p.HasLengthVar() || !same || c.KeepSelf
}

func filterPass(_ *MemberContext, p *param.Param, _ bool) bool {
	return !p.Ignored()
}

func filterPFN(_ *MemberContext, p *param.Param, _ bool) bool {
	return !p.IgnoredPFN()
}

func (c *MemberContext) uniqueVar(p *param.Param) *param.Param {
	for _, v := range c.Host.UniqueVars {
		if p.Type() == v.Type() {
			return v
		}
	}
	return nil
}

// arguments renders the parameters kept by keep. Outside the signature view
// some slots are substituted: a disabled allocator becomes nullptr, the
// host-typed slot becomes the wrapped handle or this, and in unique
// wrappers a slot matching a stored member uses that member.
func (c *MemberContext) arguments(keep filterFunc, render func(*param.Param) string, proto bool) []string {
	cfg := c.env.Config
	var out []string
	for _, p := range c.Params {
		same := c.sameType(p)
		if c.Namespace == param.NamespaceRAII && c.Host.IsSubclass && !c.Constructor &&
			p.Original.Name == c.Host.Superclass {
			continue
		}
		if !keep(c, p, same) {
			continue
		}

		switch {
		case !c.DisableSubstitution && !proto && p.Type() == "AllocationCallbacks" && !cfg.Gen.AllocatorParam:
			out = append(out, "nullptr")
		case !proto && !p.HasLengthVar() && same && !c.KeepSelf:
			out = append(out, c.selfArgument(p))
		default:
			if c.InUnique && !proto && !c.DisableSubstitution && !p.HasLengthVar() {
				if v := c.uniqueVar(p); v != nil {
					out = append(out, uniqueArgument(v, p))
					continue
				}
			}
			out = append(out, render(p))
		}
	}
	return out
}

func (c *MemberContext) selfArgument(p *param.Param) string {
	switch {
	case c.UseThis:
		return "*this"
	case c.Constructor && p.IsPointer():
		return "reinterpret_cast<" + p.Original.String() + ">(&" + c.Host.MemberVar() + ")"
	case p.IsPointer():
		return "&" + c.Host.MemberVar()
	default:
		return c.Host.MemberVar()
	}
}

func uniqueArgument(v, p *param.Param) string {
	if v.Special() == param.SpecialOptional {
		return v.Argument()
	}
	return matchTypePointers(v.Suffix(), p.Original.Suffix) + v.Identifier()
}

// matchTypePointers returns the operator turning a value declared with
// suffix from into one declared with suffix to.
func matchTypePointers(from, to string) string {
	fromPtr := strings.Contains(from, "*")
	toPtr := strings.Contains(to, "*")
	switch {
	case !fromPtr && toPtr:
		return "&"
	case fromPtr && !toPtr:
		return "*"
	default:
		return ""
	}
}

// ProtoArgs is the signature view. Declarations carry default arguments.
func (c *MemberContext) ProtoArgs(declaration bool) []string {
	n := c.names()
	return c.arguments(filterProto, func(p *param.Param) string {
		return p.Proto(n, declaration)
	}, true)
}

// PassArgs is the forwarding view.
func (c *MemberContext) PassArgs() []string {
	return c.arguments(filterPass, (*param.Param).Identifier, false)
}

// PFNArgs is the call view, in declaration order.
func (c *MemberContext) PFNArgs() []string {
	return c.arguments(filterPFN, (*param.Param).Argument, false)
}

// FilteredProtoVars are the parameters of the signature view.
func (c *MemberContext) FilteredProtoVars() []*param.Param {
	var out []*param.Param
	for _, p := range c.Params {
		if c.Namespace == param.NamespaceRAII && c.Host.IsSubclass && !c.Constructor &&
			p.Original.Name == c.Host.Superclass {
			continue
		}
		if filterProto(c, p, c.sameType(p)) {
			out = append(out, p)
		}
	}
	return out
}

// Signature identifies an overload: the method name followed by the
// whitespace-free type of each signature parameter.
func (c *MemberContext) Signature() []string {
	sig := []string{c.Name}
	for _, p := range c.FilteredProtoVars() {
		sig = append(sig, p.NormalizedType())
	}
	return sig
}

// Templates lists template parameter names introduced by the parameters.
func (c *MemberContext) Templates() []string {
	var out []string
	for _, p := range c.Params {
		if t := p.Template(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// lastPointer is classify.LastPointerParam over the context.
func (c *MemberContext) lastPointer() (*param.Param, error) {
	return classify.LastPointerParam(c.Params)
}

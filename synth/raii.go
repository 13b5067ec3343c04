package synth

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// vectorRAIIResolver returns a collection of owning wrappers built by the
// collection class's constructor.
type vectorRAIIResolver struct {
	*member
	parent        *param.Param
	ownerInParent bool
}

// newVectorRAII prepares the owner-side call. With returnsVector the last
// parameter becomes the returned collection.
func newVectorRAII(kind Kind, ctx *MemberContext, returnsVector bool) (*vectorRAIIResolver, error) {
	r := &vectorRAIIResolver{member: newMember(kind, ctx)}
	r.tag = "RAII vector"
	params := ctx.Params
	if len(params) == 0 {
		return nil, errors.NewStructuralError("%s: no parameters", ctx.Command.Name)
	}

	if returnsVector {
		last := params[len(params)-1]
		last.SetIgnored(true)
		last.SetIgnoredPFN(true)
		if last.HasLengthVar() && !last.LenIndirect() {
			last.LengthVar().SetIgnoredPFN(true)
		}
		last.ToRAII()
		ctx.PFNReturn = classify.ReturnVoid
		if last.HasLengthVar() && last.IsArray() {
			if last.Original.Name == "void" && last.IsArrayIn() {
				last.LengthVar().SetIgnored(false)
			}
			last.LengthVar().RemoveLastAsterisk()
			last.ConvertToVector()
		} else {
			last.ConvertToReturn()
		}
		ctx.UseThis = true
		r.returnType = last.FullType(r.names())
		r.body = func() (Body, error) {
			qual := r.names().RAII
			expr := qual + last.Type() + "s(" + strings.Join(ctx.PassArgs(), ", ") + ")"
			return Body{Shape: ShapeWrap, Return: expr}, nil
		}
	}

	r.parent = params[0]
	r.parent.ToRAII()
	r.ownerInParent = r.parent.Original.Name != ctx.Host.Superclass
	params[len(params)-1].SetIgnored(true)
	return r, nil
}

// ownerSource is the expression reaching the owner from the parent
// argument.
func (r *vectorRAIIResolver) ownerSource() string {
	src := r.parent.Identifier()
	if r.ownerInParent {
		src += ".get" + param.StripVk(r.ctx.Host.Superclass) + "()"
	}
	return src
}

// ownerTable is the prefix reaching a loaded entry point on the owner.
func (r *vectorRAIIResolver) ownerTable() string {
	if r.ownerInParent {
		return r.ownerSource() + "->m_"
	}
	return r.ownerSource() + ".m_"
}

// ctorResolver is an owning wrapper's constructor acquiring its handle.
type ctorResolver struct {
	*vectorRAIIResolver
}

func newCtor(kind Kind, ctx *MemberContext) (*ctorResolver, error) {
	ctx.Constructor = true
	v, err := newVectorRAII(kind, ctx, false)
	if err != nil {
		return nil, err
	}
	r := &ctorResolver{vectorRAIIResolver: v}
	// the entry point is read from the owner's table and takes the parent
	// handle like any other argument
	ctx.pfnSource = r.ownerTable()
	ctx.Name = ctx.Host.ClassName()
	r.returnType = ""
	r.inline = false
	r.explicit = true
	r.constSpec = false
	r.tag = "constructor"
	r.body = r.ctorBody
	return r, nil
}

// Viable reports whether the parent type hosts the command, so the owner's
// table loads the entry point the constructor calls.
func (r *ctorResolver) Viable() bool {
	ctx := r.ctx
	reg := ctx.env.Registry
	if !reg.Graph.CanGenerate(ctx.Command.ID) {
		return false
	}
	h, err := reg.Handle(r.parent.Original.Name)
	if errors.IsLookupError(err) || h == nil {
		return false
	}
	for _, m := range h.Members {
		if m.Command.Name == ctx.Command.Name {
			return true
		}
	}
	return false
}

func (r *ctorResolver) ownerAssign() string {
	owner := r.ctx.Host.OwnerHandle
	if owner == "" {
		return ""
	}
	amp := "&"
	if r.ownerInParent {
		amp = ""
	}
	return owner + " = " + amp + r.ownerSource() + ";"
}

func (r *ctorResolver) loadPFNs() string {
	if !r.ctx.Host.HasPFNs() {
		return ""
	}
	if r.ownerInParent {
		return "*" + r.ownerSource()
	}
	return r.ownerSource()
}

func (r *ctorResolver) ctorBody() (Body, error) {
	body := Body{Shape: ShapeConstruct, OwnerAssign: r.ownerAssign()}
	body.Call = r.pfnCall(false)
	body.Check = r.check()
	body.LoadPFNs = r.loadPFNs()
	return body, nil
}

// vectorCtorResolver constructs a collection of owning wrappers.
type vectorCtorResolver struct {
	*ctorResolver
	last *param.Param
}

func newVectorCtor(ctx *MemberContext) (*vectorCtorResolver, error) {
	c, err := newCtor(KindVectorConstructor, ctx)
	if err != nil {
		return nil, err
	}
	last, err := ctx.lastPointer()
	if err != nil {
		return nil, errors.Wrapf(err, "%s has no output parameter", ctx.Command.Name)
	}
	if !last.HasLengthVar() || !last.IsArray() {
		return nil, errors.NewStructuralError("%s: %s is not a length-paired output", ctx.Command.Name, last.Name)
	}
	last.LengthVar().RemoveLastAsterisk()
	last.ConvertToVector()
	last.SetIgnored(true)
	last.SetNamespace(param.NamespacePrimary)

	r := &vectorCtorResolver{ctorResolver: c, last: last}
	ctx.Name = ctx.Host.ClassName() + "s"
	r.explicit = false
	r.tag = "vector constructor"
	r.body = func() (Body, error) {
		body := r.arrayCode(r.last)
		body.OwnerAssign = ""
		return body, nil
	}
	return r, nil
}

// uniqueCtorResolver initializes a unique wrapper from its stored members.
type uniqueCtorResolver struct {
	*member
}

func newUniqueCtor(ctx *MemberContext) *uniqueCtorResolver {
	ctx.KeepSelf = true
	r := &uniqueCtorResolver{member: newMember(KindUniqueConstructor, ctx)}
	ctx.Name = "Unique" + ctx.Host.ClassName()
	r.returnType = ""
	r.inline = false
	r.explicit = true
	r.constSpec = false
	r.tag = "unique constructor"
	r.body = func() (Body, error) { return Body{Shape: ShapeNone}, nil }
	return r
}

// buildInitializer runs after finalize so optional members match.
func (r *uniqueCtorResolver) buildInitializer() {
	ctx := r.ctx
	for _, p := range ctx.FilteredProtoVars() {
		if p.Type() == ctx.Host.ClassName() {
			r.initializer = append(r.initializer, Init{Member: ctx.Host.ClassName(), Value: p.Identifier()})
			continue
		}
		for _, v := range ctx.Host.UniqueVars {
			if p.Type() == v.Type() {
				r.initializer = append(r.initializer, Init{
					Member: v.Identifier(),
					Value:  matchTypePointers(p.Suffix(), v.Suffix()) + p.Identifier(),
				})
				break
			}
		}
	}
}

package synth

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// member is the common shape of every variant that reshapes parameters:
// counts paired with arrays are hidden behind array views and pointers to
// aggregates become references.
type member struct {
	*base
}

func newMember(kind Kind, ctx *MemberContext) *member {
	m := &member{base: newBase(kind, ctx)}
	m.transform()
	if ctx.PFNReturn == classify.ReturnStatus && len(ctx.SuccessCodes) <= 1 {
		m.returnType = "void"
	}
	m.body = m.directBody
	return m
}

func (m *member) transform() {
	ctx := m.ctx
	reg := ctx.env.Registry

	for _, p := range ctx.Params {
		if !p.HasLengthVar() || countedOutput(p) {
			continue
		}
		size := p.LengthVar()
		if !size.HasArrayVar() {
			size.BindArrayVar(p)
		}
		if !p.LenIndirect() {
			size.SetIgnored(true)
		}
		if p.Original.Name == "void" {
			if size.IsPointer() {
				p.SetFullType("", "uint8_t", "")
			} else {
				p.SetFullType("", "DataType", "")
				p.SetTemplate("DataType")
				size.SetIgnored(false)
			}
		}
		p.ConvertToArrayProxy()
	}

	constructs := ctx.Constructor || ctx.Category == classify.Create || ctx.Category == classify.Allocate
	for _, p := range ctx.Params {
		if ctx.Namespace == param.NamespaceRAII && constructs && reg.IsHandle(p.Original.Name) {
			p.ToRAII()
			p.SetIdentifier(param.StripPointerPrefix(p.Identifier()))
		}
		if p.IsArray() {
			p.SetIdentifier(param.StripPointerPrefix(p.Identifier()))
			continue
		}
		if reg.IsStruct(p.Original.Name) {
			byValue := !p.IsPointer()
			p.ConvertToReference()
			if byValue {
				p.SetConst(true)
			} else {
				p.SetIdentifier(param.StripPointerPrefix(p.Identifier()))
			}
		}
	}
}

// countedOutput reports whether the entry point writes p's count, the
// two-call shape. Such pairs keep their raw declarations until returnLast
// turns them into a collection.
func countedOutput(p *param.Param) bool {
	size := p.LengthVar()
	return size != nil && size.IsPointer() && !size.IsConst()
}

// finalize turns the allocator into a defaulted optional argument, or
// hides it when allocators are disabled.
func (m *member) finalize() {
	params := m.ctx.Params
	trailing := true
	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]
		if p.Ignored() {
			continue
		}
		if p.Type() == "AllocationCallbacks" {
			m.allocator = p
			if m.ctx.env.Config.Gen.AllocatorParam {
				p.ConvertToOptional()
				if trailing {
					p.SetAssignment(" = nullptr")
				}
			} else {
				p.SetIgnored(true)
			}
		}
		if p.Assignment() == "" {
			trailing = false
		}
	}
}

func (m *member) Generate(out *Output) error { return m.generate(out) }

func (m *member) directBody() (Body, error) {
	shape := ShapeCall
	if classify.DestroysObject(m.ctx.Category) {
		shape = ShapeDestroy
	}
	immediate := m.ctx.PFNReturn != classify.ReturnStatus && len(m.ctx.SuccessCodes) <= 1
	body := Body{Shape: shape, Call: m.pfnCall(immediate)}
	if !immediate {
		body.Check = m.check()
		m.returnValue = m.resultValue("result")
	}
	return body, nil
}

// scalarOut declares out, calls and returns it.
func (m *member) scalarOut(out *param.Param) Body {
	body := Body{Shape: ShapeScalarOut, Locals: []Local{{Decl: out.Declaration(m.names())}}}
	body.Call = m.pfnCall(false)
	body.Check = m.check()
	m.returnValue = m.resultValue(out.Identifier())
	return body
}

// returnLast turns the last pointer parameter into the returned value.
// Length-paired outputs become collections.
func (m *member) returnLast() (*param.Param, error) {
	last, err := m.ctx.lastPointer()
	if err != nil {
		return nil, errors.Wrapf(err, "%s has no output parameter", m.ctx.Command.Name)
	}
	if !last.IsArray() && countedOutput(last) {
		lv := last.LengthVar()
		if !lv.HasArrayVar() {
			lv.BindArrayVar(last)
		}
		lv.SetIgnored(true)
		if last.Original.Name == "void" {
			last.SetFullType("", "uint8_t", "")
		}
		last.ConvertToArrayProxy()
	}
	if last.HasLengthVar() && last.IsArray() {
		lv := last.LengthVar()
		if last.Original.Name == "void" && last.IsArrayIn() {
			lv.SetIgnored(false)
		}
		lv.RemoveLastAsterisk()
		lv.SetIdentifier(param.StripPointerPrefix(lv.Identifier()))
		last.ConvertToVector()
	} else {
		last.ConvertToReturn()
	}
	last.SetIgnored(true)
	last.SetConst(false)
	last.SetIdentifier(param.StripPointerPrefix(last.Identifier()))
	return last, nil
}

// passResolver forwards the raw arguments unchanged.
type passResolver struct {
	*base
}

func newPass(ctx *MemberContext) *passResolver {
	ctx.DisableSubstitution = true
	r := &passResolver{base: newBase(KindPass, ctx)}
	r.tag = "pass"
	r.body = func() (Body, error) {
		return Body{Shape: ShapePass, Call: r.pfnCall(true)}, nil
	}
	return r
}

func (r *passResolver) Generate(out *Output) error { return r.generate(out) }

// suppressedResolver emits a commented-out declaration of a member whose
// variant is disabled. It does not enter the ledger.
type suppressedResolver struct {
	*member
}

func (r *suppressedResolver) Generate(out *Output) error {
	if r.done {
		return ErrAlreadyGenerated
	}
	r.done = true
	p := r.header()
	p.Commented = true
	p.InClass = false
	out.Add(p)
	return nil
}

// getResolver returns the last output parameter by value.
type getResolver struct {
	*member
	last *param.Param
}

func newGet(kind Kind, ctx *MemberContext) (*getResolver, error) {
	r := &getResolver{member: newMember(kind, ctx)}
	r.tag = kind.String()
	last, err := r.returnLast()
	if err != nil {
		return nil, err
	}
	r.last = last
	r.returnType = last.FullType(r.names())
	r.body = func() (Body, error) {
		if r.last.IsArray() {
			return r.arrayCode(r.last), nil
		}
		return r.scalarOut(r.last), nil
	}
	return r, nil
}

// createResolver returns the created object. In the RAII namespace it
// constructs the owning wrapper instead of calling the entry point.
type createResolver struct {
	*member
	last *param.Param
}

func newCreate(kind Kind, ctx *MemberContext) (*createResolver, error) {
	r := &createResolver{member: newMember(kind, ctx)}
	r.tag = strings.ToLower(ctx.Category.String())
	last, err := ctx.lastPointer()
	if err != nil {
		return nil, errors.Wrapf(err, "%s has no output parameter", ctx.Command.Name)
	}
	if last.IsArray() {
		last.ConvertToVector()
	} else {
		last.ConvertToReturn()
	}
	last.SetIgnored(true)
	last.SetConst(false)
	last.SetIdentifier(param.StripPointerPrefix(last.Identifier()))
	r.last = last
	r.returnType = last.FullType(r.names())
	ctx.UseThis = true
	r.body = r.createBody
	return r, nil
}

func (r *createResolver) createBody() (Body, error) {
	ctx := r.ctx
	switch {
	case r.last.IsArray():
		return r.arrayCode(r.last), nil
	case ctx.Namespace == param.NamespaceRAII:
		r.last.SetIgnoredPFN(true)
		expr := r.last.FullType(r.names()) + "(" + strings.Join(ctx.PassArgs(), ", ") + ")"
		return Body{Shape: ShapeWrap, Return: expr}, nil
	default:
		return r.scalarOut(r.last), nil
	}
}

// createUniqueResolver wraps the created handle in its unique owner.
type createUniqueResolver struct {
	*createResolver
	ownerIsSubclass bool
}

func newCreateUnique(ctx *MemberContext) (*createUniqueResolver, error) {
	c, err := newCreate(KindCreateUnique, ctx)
	if err != nil {
		return nil, err
	}
	if c.last.IsArray() {
		return nil, errors.NewStructuralError("%s: unique variant of an array output", ctx.Command.Name)
	}
	r := &createUniqueResolver{createResolver: c}
	if h, ok := ctx.env.Registry.LookupHandle(c.last.Original.Name); ok {
		r.ownerIsSubclass = h.IsSubclass
	}
	r.returnType = "Unique" + c.last.Type()
	ctx.Name += "Unique"
	r.tag = "create unique"
	r.body = r.uniqueBody
	return r, nil
}

func (r *createUniqueResolver) uniqueBody() (Body, error) {
	body, err := r.createBody()
	if err != nil {
		return body, err
	}
	cfg := r.ctx.env.Config
	args := []string{r.last.Identifier()}
	if r.ownerIsSubclass {
		args = append(args, "*this")
	}
	if cfg.Gen.AllocatorParam && r.allocator != nil {
		args = append(args, r.allocator.Identifier())
	}
	if cfg.Gen.DispatchParam {
		args = append(args, "d")
	}
	r.returnValue = r.resultValue(r.returnType + "(" + strings.Join(args, ", ") + ")")
	return body, nil
}

// createHandleResolver returns the raw created handle, used where an
// owning constructor is not viable.
type createHandleResolver struct {
	*member
	last *param.Param
}

func newCreateHandle(ctx *MemberContext) (*createHandleResolver, error) {
	r := &createHandleResolver{member: newMember(KindCreateHandle, ctx)}
	r.tag = "create handle"
	last, err := ctx.lastPointer()
	if err != nil {
		return nil, errors.Wrapf(err, "%s has no output parameter", ctx.Command.Name)
	}
	last.ConvertToReturn()
	last.SetNamespace(param.NamespacePrimary)
	last.SetIgnored(true)
	last.SetIdentifier(param.StripPointerPrefix(last.Identifier()))
	r.last = last
	r.returnType = last.FullType(r.names())
	r.body = func() (Body, error) { return r.scalarOut(r.last), nil }
	return r, nil
}

// emptyResolver keeps the signature with a placeholder body.
type emptyResolver struct {
	*member
}

func newEmpty(ctx *MemberContext) *emptyResolver {
	r := &emptyResolver{member: newMember(KindEmpty, ctx)}
	r.tag = "empty"
	r.body = func() (Body, error) {
		return Body{Shape: ShapeComment, Comment: r.ctx.Command.Name + " has no generated body"}, nil
	}
	return r
}

package synth

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// ErrAlreadyGenerated is returned by a second Generate on one resolver.
var ErrAlreadyGenerated = errors.ErrAlreadyGenerated

// Kind names a resolver variant.
type Kind uint8

const (
	KindDirect Kind = iota
	KindPass
	KindSuppressed
	KindEmpty
	KindGet
	KindEnumerate
	KindCreate
	KindCreateUnique
	KindCreateHandle
	KindVectorRAII
	KindConstructor
	KindUniqueConstructor
	KindVectorConstructor
)

var kindNames = [...]string{
	KindDirect:            "direct",
	KindPass:              "pass",
	KindSuppressed:        "suppressed",
	KindEmpty:             "empty",
	KindGet:               "get",
	KindEnumerate:         "enumerate",
	KindCreate:            "create",
	KindCreateUnique:      "create-unique",
	KindCreateHandle:      "create-handle",
	KindVectorRAII:        "vector-raii",
	KindConstructor:       "constructor",
	KindUniqueConstructor: "unique-constructor",
	KindVectorConstructor: "vector-constructor",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Resolver produces the procedure for one variant of a member.
type Resolver interface {
	Kind() Kind
	Context() *MemberContext
	// Signature identifies the overload for de-duplication.
	Signature() []string
	// Generate appends the procedure to out. A resolver generates once.
	Generate(out *Output) error
}

// base carries the state shared by all variants and the generic parts of
// generation: the header, the entry point call and the status check.
type base struct {
	kind Kind
	ctx  *MemberContext
	tag  string

	returnType  string
	returnValue string
	initializer []Init

	inline    bool
	explicit  bool
	constSpec bool
	// forceResult keeps the status variable even when nothing reads it.
	forceResult bool
	hasResult   bool
	done        bool

	allocator *param.Param
	body      func() (Body, error)
}

func newBase(kind Kind, ctx *MemberContext) *base {
	b := &base{
		kind:       kind,
		ctx:        ctx,
		tag:        "default",
		returnType: param.StripVk(ctx.Command.ReturnType),
		inline:     true,
		constSpec:  true,
	}
	if b.returnType == "" {
		b.returnType = "void"
	}

	cfg := ctx.env.Config
	if cfg.Gen.DispatchParam && ctx.Namespace == param.NamespacePrimary {
		d := param.New(param.Type{Name: cfg.Namespace.DispatchType.Get(), Suffix: "const &"}, "d")
		d.SetIgnoredPFN(true)
		d.SetAssignment(" = " + cfg.Namespace.Dispatch.Get())
		ctx.Params = append(ctx.Params, d)
	}
	return b
}

func (b *base) Kind() Kind                { return b.kind }
func (b *base) Context() *MemberContext   { return b.ctx }
func (b *base) Signature() []string       { return b.ctx.Signature() }
func (b *base) names() param.Names        { return b.ctx.names() }
func (b *base) qualified(t string) string { return b.names().Primary + t }

// checks reports whether the status check is emitted: the entry point
// reports a status and declares more than one code successful.
func (b *base) checks() bool {
	return b.ctx.PFNReturn == classify.ReturnStatus && len(b.ctx.SuccessCodes) > 1
}

func (b *base) usesResultValueType() bool {
	return b.ctx.env.Config.Gen.ResultValueType && b.ctx.Namespace == param.NamespacePrimary &&
		b.ctx.PFNReturn == classify.ReturnStatus && b.returnType != "" && b.returnType != "Result"
}

func (b *base) needsResult() bool {
	return b.forceResult || b.checks() || b.usesResultValueType() || b.returnType == "Result"
}

func (b *base) renderReturnType() string {
	if b.returnType == "" {
		return ""
	}
	if b.usesResultValueType() {
		return b.qualified("ResultValueType<" + b.returnType + ">::type")
	}
	return b.returnType
}

// resultValue wraps id into the result value envelope when one is used.
func (b *base) resultValue(id string) string {
	if !b.hasResult || !b.usesResultValueType() {
		return id
	}
	if id == "result" {
		return "createResultValueType(result)"
	}
	return "createResultValueType(result, " + id + ")"
}

func (b *base) castTo(t, src string) string {
	if t == b.ctx.Command.ReturnType {
		return src
	}
	return "static_cast<" + t + ">(" + src + ")"
}

func (b *base) assignResult(expr string) string {
	if b.hasResult {
		return "result = " + expr + ";"
	}
	b.hasResult = true
	return b.qualified("Result") + " result = " + expr + ";"
}

func (b *base) declareResult() string {
	b.hasResult = true
	return b.qualified("Result") + " result;"
}

// pfnCall renders the statement invoking the entry point. An immediate
// call returns the entry point's value directly.
func (b *base) pfnCall(immediate bool) string {
	ctx := b.ctx
	src := ctx.pfnSource
	if src == "" {
		switch {
		case ctx.Namespace == param.NamespaceRAII && ctx.Host.IsSubclass && ctx.Host.OwnerHandle != "":
			src = ctx.Host.OwnerHandle + "->m_"
		case ctx.Namespace == param.NamespaceRAII:
			src = "m_"
		case ctx.env.Config.Gen.DispatchParam:
			src = "d."
		default:
			src = "::"
		}
	}
	name := ctx.pfnName
	if name == "" {
		name = ctx.Command.Name
	}
	call := src + name + "(" + strings.Join(ctx.PFNArgs(), ", ") + ")"

	switch ctx.PFNReturn {
	case classify.ReturnStatus:
		call = b.castTo(b.qualified("Result"), call)
		if !immediate {
			if !b.needsResult() {
				return call + ";"
			}
			return b.assignResult(call)
		}
	case classify.ReturnOther:
		call = b.castTo(b.returnType, call)
	case classify.ReturnVoid:
		return call + ";"
	}
	if immediate {
		return "return " + call + ";"
	}
	return call + ";"
}

// check returns the trailing status check, or nil.
func (b *base) check() *Check {
	if !b.checks() || !b.hasResult {
		return nil
	}
	reg := b.ctx.env.Registry
	codes := make([]string, 0, len(b.ctx.SuccessCodes))
	for _, c := range b.ctx.SuccessCodes {
		codes = append(codes, b.qualified("Result::"+reg.EnumValueName("VkResult", c, false)))
	}
	return &Check{Result: "result", Message: b.checkMessage(), Codes: codes}
}

func (b *base) checkMessage() string {
	ns := b.ctx.env.Config.Namespace.Namespace
	if b.ctx.Namespace == param.NamespaceRAII {
		ns = b.ctx.env.Config.Namespace.NamespaceRAII
	}
	var msg string
	if ns.UseDefine {
		msg = ns.Define + "_STRING \""
	} else {
		msg = "\"" + ns.Value
	}
	if !b.ctx.Static {
		msg += "::" + b.ctx.Host.ClassName()
	}
	return msg + "::" + b.ctx.Name + "\""
}

// arrayCode fills v, an output collection, with either the two-call idiom
// or a single call into storage sized up front.
func (b *base) arrayCode(v *param.Param) Body {
	ctx := b.ctx
	n := b.names()
	if v.Namespace() == param.NamespaceRAII {
		v.SetNamespace(param.NamespacePrimary)
	}
	lenVar := v.LengthVar()
	id := v.Identifier()
	size := lenVar.Identifier()

	var body Body
	if ctx.PFNReturn == classify.ReturnStatus {
		b.forceResult = true
		body.ResultDecl = b.declareResult()
	}

	if lenVar.IsPointer() && !lenVar.IsConst() {
		body.Shape = ShapeTwoCall
		body.Locals = []Local{{Decl: v.Declaration(n)}, {Decl: lenVar.Declaration(n)}}
		body.Count = size
		body.Array = id
		v.SetAltPFN("nullptr")
		body.NullCall = b.pfnCall(false)
		v.SetAltPFN("")
		body.Call = b.pfnCall(false)
		if body.ResultDecl != "" {
			body.Loop = true
			body.Success = b.qualified("Result::eSuccess")
			body.Incomplete = b.qualified("Result::eIncomplete")
		}
	} else {
		switch {
		case lenVar.Ignored() && lenVar.HasArrayVar() && lenVar.ArrayVar() != v:
			size = lenVar.ArrayVar().Identifier() + ".size()"
		case v.LenIndirect():
			sep := "."
			if strings.Contains(lenVar.Suffix(), "*") {
				sep = "->"
			}
			size += sep + v.LenRHS()
		}
		body.Shape = ShapeKnownSize
		body.Locals = []Local{{Decl: v.Declaration(n), Init: "(" + size + ")"}}
		body.Call = b.pfnCall(false)
	}
	body.Check = b.check()

	if b.returnType != "" {
		b.returnValue = b.resultValue(id)
	} else {
		parent := ""
		if ctx.Host.Superclass != "" {
			parent = lowerFirst(param.StripVk(ctx.Host.Superclass))
		}
		body.Emplace = &Emplace{
			Size:   id + ".size()",
			Array:  id,
			Iter:   strings.TrimSuffix(id, "s"),
			Parent: parent,
		}
	}
	return body
}

// indirectNotes lists array views whose length lives inside another
// parameter and must be kept consistent by the caller.
func (b *base) indirectNotes() []string {
	var notes []string
	for _, p := range b.ctx.Params {
		if p.Special() == param.SpecialArrayProxy && p.LenIndirect() && !p.Ignored() {
			notes = append(notes, p.Identifier()+".size() must equal "+
				p.LengthVar().Identifier()+"."+p.LenRHS())
		}
	}
	return notes
}

func (b *base) header() *Procedure {
	ctx := b.ctx
	cfg := ctx.env.Config
	p := &Procedure{
		Kind:        b.kind,
		Namespace:   ctx.Namespace,
		Name:        ctx.Name,
		Protect:     ctx.env.Registry.Protect(ctx.Command.ID),
		Templates:   ctx.Templates(),
		ReturnType:  b.renderReturnType(),
		DeclParams:  ctx.ProtoArgs(true),
		DefParams:   ctx.ProtoArgs(false),
		Initializer: b.initializer,
		Inline:      b.inline,
		Explicit:    b.explicit,
		Const:       b.constSpec && !ctx.Static,
		Static:      ctx.Static,
		InClass:     ctx.Inline,
	}
	if !ctx.Static {
		p.Class = ctx.Host.ClassName()
	}
	if cfg.Debug.MethodTags {
		p.Tag = b.tag
	}
	return p
}

// generate assembles header and body, files the procedure and records its
// signature on the host.
func (b *base) generate(out *Output) error {
	if b.done {
		return ErrAlreadyGenerated
	}
	b.done = true
	ctx := b.ctx

	var body Body
	if ctx.Namespace == param.NamespaceRAII && ctx.Host.IsSubclass && !ctx.Constructor &&
		ctx.Command.HasFlag(registry.FlagIndirect) {
		fwd, err := b.forward()
		if err != nil {
			return err
		}
		body = fwd
	} else {
		var err error
		body, err = b.body()
		if err != nil {
			return err
		}
		body.Notes = append(b.indirectNotes(), body.Notes...)
		if body.Return == "" && b.returnValue != "" && b.renderReturnType() != "void" {
			body.Return = b.returnValue
		}
	}

	p := b.header()
	p.Body = body
	out.Add(p)
	ctx.Host.RecordSignature(ctx.Namespace, b.Signature())
	return nil
}

// forward delegates an indirect member to the owner object.
func (b *base) forward() (Body, error) {
	ctx := b.ctx
	owner := ctx.Host.OwnerHandle
	if owner == "" {
		return Body{}, errors.NewStructuralError("%s: indirect member on %s has no owner handle",
			ctx.Command.Name, ctx.Host.Name)
	}
	name := classify.MemberName(ctx.Command.Name, param.StripVk(ctx.Host.Superclass))
	expr := owner + "->" + name + "(" + strings.Join(ctx.PassArgs(), ", ") + ")"
	if b.returnType == "void" || b.returnType == "" {
		return Body{Shape: ShapeForward, Call: expr + ";"}, nil
	}
	return Body{Shape: ShapeForward, Return: expr}, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

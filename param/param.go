// Package param models a single command parameter or struct member as it is
// declared in the registry and as it is reshaped for generated wrappers.
//
// A Param keeps the declared type untouched in Original and tracks the
// presentation separately, so every projection (signature, forwarding, call)
// can be derived from one descriptor.
package param

import (
	"strings"
)

// Special is the presentation a parameter has been converted to.
type Special uint8

const (
	SpecialDefault    Special = iota
	SpecialArrayProxy         // length-paired input, ArrayProxy<T> const &
	SpecialVector             // collection output, std::vector<T>
	SpecialReturn             // scalar output returned by value
	SpecialOptional           // Optional<const T>
	SpecialReference          // aggregate passed by const reference
	SpecialInvalid
)

func (s Special) String() string {
	switch s {
	case SpecialDefault:
		return "default"
	case SpecialArrayProxy:
		return "array_proxy"
	case SpecialVector:
		return "vector"
	case SpecialReturn:
		return "return"
	case SpecialOptional:
		return "optional"
	case SpecialReference:
		return "reference"
	default:
		return "invalid"
	}
}

// Namespace selects which set of wrapper types a parameter refers to.
type Namespace uint8

const (
	NamespaceNone Namespace = iota
	NamespacePrimary
	NamespaceRAII
)

// Kind tells which registry category the parameter's type belongs to.
type Kind uint8

const (
	KindBasic Kind = iota
	KindHandle
	KindStruct
	KindEnum
)

// Type is a declared C type split around its name.
type Type struct {
	Prefix string // "const ", "struct "
	Name   string // "VkBufferCreateInfo", "uint32_t"
	Suffix string // "*", "* const*"
}

// IsPointer reports whether the type has at least one indirection.
func (t Type) IsPointer() bool {
	return strings.Contains(t.Suffix, "*")
}

// IsConst reports whether the pointee is const-qualified.
func (t Type) IsConst() bool {
	return strings.Contains(t.Prefix, "const")
}

func (t Type) String() string {
	return joinType(t.Prefix, t.Name, t.Suffix)
}

func joinType(prefix, name, suffix string) string {
	out := strings.TrimSpace(prefix)
	if out != "" {
		out += " "
	}
	out += name
	suffix = strings.TrimSpace(suffix)
	if suffix != "" {
		out += " " + suffix
	}
	return out
}

// Param is one parameter of a command.
type Param struct {
	// Original is the declared type and never changes after loading.
	Original Type
	// Name is the declared identifier.
	Name string
	// Len is the raw len attribute ("pAllocateInfo->descriptorSetCount").
	Len string
	// ArraySize is a fixed bound from an [N] declarator.
	ArraySize string
	// Optional mirrors the registry optional attribute.
	Optional bool
	Kind     Kind

	current    Type
	ident      string
	special    Special
	namespace  Namespace
	ignore     bool
	ignorePFN  bool
	assignment string
	template   string
	altPFN     string
	lengthVar  *Param
	arrayVar   *Param
}

// New creates a parameter from its declaration. The presentation type name
// drops the Vk prefix for registry types.
func New(t Type, name string) *Param {
	p := &Param{Original: t, Name: name}
	p.Reset()
	return p
}

// Reset discards every presentation change.
func (p *Param) Reset() {
	p.current = Type{Prefix: p.Original.Prefix, Name: StripVk(p.Original.Name), Suffix: p.Original.Suffix}
	p.ident = p.Name
	p.special = SpecialDefault
	p.namespace = NamespaceNone
	if p.Original.Name != p.current.Name {
		p.namespace = NamespacePrimary
	}
	p.ignore = false
	p.ignorePFN = false
	p.assignment = ""
	p.template = ""
	p.altPFN = ""
}

// StripVk removes a leading Vk from a registry type name.
func StripVk(name string) string {
	if len(name) > 2 && strings.HasPrefix(name, "Vk") {
		return name[2:]
	}
	return name
}

// Clone copies the descriptor. Length and array links still point into the
// source list; call Bind on the cloned list to relink them.
func (p *Param) Clone() *Param {
	c := *p
	return &c
}

// CloneAll deep-copies a parameter list and rebinds length relationships.
func CloneAll(params []*Param) []*Param {
	out := make([]*Param, len(params))
	for i, p := range params {
		out[i] = p.Clone()
	}
	Bind(out)
	return out
}

// Bind links every parameter carrying a len attribute to the parameter that
// holds its element count. For indirect lengths ("pInfo->count") the link is
// to the parameter named before the arrow.
func Bind(params []*Param) {
	byName := make(map[string]*Param, len(params))
	for _, p := range params {
		p.lengthVar = nil
		p.arrayVar = nil
		byName[p.Name] = p
	}
	for _, p := range params {
		if p.Len == "" {
			continue
		}
		lhs := p.LenLHS()
		if lv, ok := byName[lhs]; ok && lv != p {
			p.lengthVar = lv
			if lv.arrayVar == nil {
				lv.arrayVar = p
			}
		}
	}
}

// LenLHS is the parameter name part of the len attribute.
func (p *Param) LenLHS() string {
	first := strings.Split(p.Len, ",")[0]
	if i := strings.Index(first, "->"); i >= 0 {
		return first[:i]
	}
	return first
}

// LenRHS is the member part of an indirect len attribute.
func (p *Param) LenRHS() string {
	first := strings.Split(p.Len, ",")[0]
	if i := strings.Index(first, "->"); i >= 0 {
		return first[i+2:]
	}
	return ""
}

// LenIndirect reports whether the length lives inside another parameter.
func (p *Param) LenIndirect() bool {
	return p.LenRHS() != ""
}

func (p *Param) HasLengthVar() bool { return p.lengthVar != nil }
func (p *Param) LengthVar() *Param { return p.lengthVar }
func (p *Param) HasArrayVar() bool { return p.arrayVar != nil }
func (p *Param) ArrayVar() *Param { return p.arrayVar }

// BindArrayVar records which parameter this count belongs to.
func (p *Param) BindArrayVar(v *Param) { p.arrayVar = v }

func (p *Param) IsPointer() bool { return p.Original.IsPointer() }
func (p *Param) IsConst() bool { return p.Original.IsConst() }
func (p *Param) IsHandle() bool { return p.Kind == KindHandle }
func (p *Param) IsStruct() bool { return p.Kind == KindStruct }
func (p *Param) Special() Special { return p.special }

// IsArray reports whether the presentation is a collection.
func (p *Param) IsArray() bool {
	return p.special == SpecialArrayProxy || p.special == SpecialVector
}

// IsArrayIn reports whether the declared parameter is a const input buffer.
func (p *Param) IsArrayIn() bool {
	return p.HasLengthVar() && p.IsConst() && p.IsPointer()
}

// Identifier is the presentation name.
func (p *Param) Identifier() string { return p.ident }

func (p *Param) SetIdentifier(id string) { p.ident = id }

// Type is the presentation type name without qualifiers.
func (p *Param) Type() string { return p.current.Name }

// Suffix is the presentation declarator suffix.
func (p *Param) Suffix() string { return p.current.Suffix }

// SetFullType replaces the presentation type.
func (p *Param) SetFullType(prefix, name, suffix string) {
	p.current = Type{Prefix: prefix, Name: name, Suffix: suffix}
}

// SetConst toggles const on the presentation type.
func (p *Param) SetConst(v bool) {
	has := strings.Contains(p.current.Prefix, "const")
	switch {
	case v && !has:
		p.current.Prefix = "const " + p.current.Prefix
	case !v && has:
		p.current.Prefix = strings.TrimSpace(strings.Replace(p.current.Prefix, "const", "", 1))
	}
}

// RemoveLastAsterisk drops one level of indirection from the presentation.
func (p *Param) RemoveLastAsterisk() {
	if i := strings.LastIndex(p.current.Suffix, "*"); i >= 0 {
		p.current.Suffix = strings.TrimSpace(p.current.Suffix[:i] + p.current.Suffix[i+1:])
	}
}

func (p *Param) Ignored() bool { return p.ignore }
func (p *Param) SetIgnored(v bool) { p.ignore = v }
func (p *Param) IgnoredPFN() bool { return p.ignorePFN }
func (p *Param) SetIgnoredPFN(v bool) { p.ignorePFN = v }
func (p *Param) Assignment() string { return p.assignment }
func (p *Param) SetAssignment(a string) { p.assignment = a }
func (p *Param) Template() string { return p.template }
func (p *Param) SetTemplate(t string) { p.template = t }
func (p *Param) SetAltPFN(s string) { p.altPFN = s }
func (p *Param) Namespace() Namespace { return p.namespace }

// SetNamespace moves a registry type between wrapper namespaces. Basic
// types stay unqualified.
func (p *Param) SetNamespace(ns Namespace) {
	if p.namespace != NamespaceNone {
		p.namespace = ns
	}
}

// ToRAII points handle types at the owning RAII wrappers. Wrappers own
// their handle and are not copyable, so a handle passed by value becomes a
// const reference.
func (p *Param) ToRAII() {
	if !p.IsHandle() {
		return
	}
	p.SetNamespace(NamespaceRAII)
	if !p.IsPointer() && p.special == SpecialDefault {
		p.special = SpecialReference
		p.SetConst(true)
	}
}

// ConvertToArrayProxy presents a length-paired pointer as an array view.
func (p *Param) ConvertToArrayProxy() {
	p.special = SpecialArrayProxy
	p.RemoveLastAsterisk()
}

// ConvertToVector presents an output buffer as an owned collection.
func (p *Param) ConvertToVector() {
	p.special = SpecialVector
	p.SetConst(false)
	p.RemoveLastAsterisk()
}

// ConvertToReturn presents an output pointer as a returned value.
func (p *Param) ConvertToReturn() {
	p.special = SpecialReturn
	p.SetConst(false)
	p.RemoveLastAsterisk()
}

// ConvertToOptional presents a nullable pointer as Optional<const T>.
func (p *Param) ConvertToOptional() {
	p.special = SpecialOptional
	p.RemoveLastAsterisk()
}

// ConvertToReference presents a pointer to an aggregate as a reference.
func (p *Param) ConvertToReference() {
	p.special = SpecialReference
	p.RemoveLastAsterisk()
}

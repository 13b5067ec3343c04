package param

import (
	"regexp"
	"strings"
)

// Names holds the qualifiers written in front of registry types, each with
// its trailing "::". Empty qualifiers render unqualified names.
type Names struct {
	Primary string
	RAII    string
}

func (n Names) qualify(ns Namespace) string {
	switch ns {
	case NamespacePrimary:
		return n.Primary
	case NamespaceRAII:
		return n.RAII
	default:
		return ""
	}
}

// FullType renders the presentation type.
func (p *Param) FullType(n Names) string {
	name := n.qualify(p.namespace) + p.current.Name
	if p.template != "" {
		name = p.template
	}
	elem := joinType(p.current.Prefix, name, p.current.Suffix)

	switch p.special {
	case SpecialArrayProxy:
		return "ArrayProxy<" + elem + "> const &"
	case SpecialVector:
		return "std::vector<" + elem + ">"
	case SpecialOptional:
		return "Optional<" + elem + ">"
	case SpecialReference:
		return elem + " &"
	default:
		return elem
	}
}

// Proto renders the parameter as it appears in a signature.
func (p *Param) Proto(n Names, withAssignment bool) string {
	out := p.FullType(n) + " " + p.ident
	if withAssignment && p.assignment != "" {
		out += p.assignment
	}
	return out
}

// Declaration renders a local variable holding the parameter.
func (p *Param) Declaration(n Names) string {
	return p.FullType(n) + " " + p.ident
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizedType is the whitespace-free presentation type. Two signatures
// are the same overload when these match position by position.
func (p *Param) NormalizedType() string {
	return whitespace.ReplaceAllString(p.FullType(Names{}), "")
}

// Argument renders the expression passed to the underlying entry point.
func (p *Param) Argument() string {
	if p.altPFN != "" {
		return p.altPFN
	}

	// hidden count paired with an input array
	if p.ignore && p.arrayVar != nil && !p.Original.IsPointer() {
		size := p.arrayVar.ident + ".size()"
		if t := p.arrayVar.template; t != "" {
			size += " * sizeof(" + t + ")"
		}
		return size
	}

	addressOf := p.Original.IsPointer() && !p.current.IsPointer()

	if p.namespace == NamespaceNone {
		switch p.special {
		case SpecialArrayProxy, SpecialVector:
			return p.ident + ".data()"
		case SpecialReturn, SpecialReference:
			return "&" + p.ident
		default:
			if addressOf {
				return "&" + p.ident
			}
			return p.ident
		}
	}

	if !p.Original.IsPointer() {
		switch {
		case p.namespace == NamespaceRAII:
			return "static_cast<" + p.Original.Name + ">(*" + p.ident + ")"
		case p.special == SpecialReference:
			return "*reinterpret_cast<const " + p.Original.Name + " *>(&" + p.ident + ")"
		}
	}

	cType := p.Original.String()
	switch p.special {
	case SpecialArrayProxy, SpecialVector:
		return "reinterpret_cast<" + cType + ">(" + p.ident + ".data())"
	case SpecialReturn, SpecialReference:
		return "reinterpret_cast<" + cType + ">(&" + p.ident + ")"
	case SpecialOptional:
		return "reinterpret_cast<" + cType + ">(static_cast<const " + p.current.Name + " *>(" + p.ident + "))"
	}

	switch {
	case addressOf:
		return "reinterpret_cast<" + cType + ">(&" + p.ident + ")"
	case p.Original.IsPointer():
		return "reinterpret_cast<" + cType + ">(" + p.ident + ")"
	default:
		return "static_cast<" + p.Original.Name + ">(" + p.ident + ")"
	}
}

// OriginalProto renders the parameter exactly as declared.
func (p *Param) OriginalProto() string {
	out := p.Original.String() + " " + p.Name
	if p.ArraySize != "" {
		out += "[" + p.ArraySize + "]"
	}
	return out
}

// StripPointerPrefix turns "pCreateInfo" into "createInfo". Identifiers that
// do not follow the p+Upper convention are returned unchanged.
func StripPointerPrefix(id string) string {
	if len(id) >= 2 && id[0] == 'p' && id[1] >= 'A' && id[1] <= 'Z' {
		return strings.ToLower(id[1:2]) + id[2:]
	}
	return id
}

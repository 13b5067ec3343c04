package emit

import (
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

// declaration writes p as it appears inside its class, or as a free
// function prototype when it has no class. In-class procedures carry their
// body.
func (e *Emitter) declaration(w *writer, p *synth.Procedure) {
	if p.Tag != "" {
		w.linef("// [%s]", p.Tag)
	}
	if p.Commented {
		w.line("// " + e.signature(p, p.DeclParams, false) + ";")
		return
	}
	e.templates(w, p)
	head := e.signature(p, p.DeclParams, false)
	if !p.InClass {
		w.line(head + ";")
		return
	}
	e.definitionBody(w, p, head)
}

// definition writes p outside its class.
func (e *Emitter) definition(w *writer, p *synth.Procedure) {
	if p.InClass || p.Commented {
		return
	}
	e.templates(w, p)
	e.definitionBody(w, p, e.signature(p, p.DefParams, true))
}

func (e *Emitter) definitionBody(w *writer, p *synth.Procedure, head string) {
	if len(p.Initializer) > 0 {
		w.line(head)
		inits := make([]string, 0, len(p.Initializer))
		for _, in := range p.Initializer {
			inits = append(inits, in.Member+"( "+in.Value+" )")
		}
		w.line(indentUnit + ": " + strings.Join(inits, ", "))
		w.block()
	} else {
		w.open(head)
	}
	e.body(w, p.Body)
	w.close("")
}

func (e *Emitter) templates(w *writer, p *synth.Procedure) {
	if len(p.Templates) > 0 {
		w.line("template <" + strings.Join(p.Templates, ", ") + ">")
	}
}

// signature renders the procedure head. Out-of-class heads qualify the
// name with the class and drop specifiers that only appear inside it.
func (e *Emitter) signature(p *synth.Procedure, params []string, outOfClass bool) string {
	var sb strings.Builder
	ns := e.cfg.Namespace
	switch {
	case outOfClass && p.Inline:
		sb.WriteString(ns.Inline.Get() + " ")
	case !outOfClass && p.Static && p.Class != "":
		sb.WriteString("static ")
	case !outOfClass && p.Explicit && len(params) > 0:
		sb.WriteString("explicit ")
	}
	if p.ReturnType != "" {
		sb.WriteString(p.ReturnType + " ")
	}
	if q := qualifier(p); outOfClass && q != "" {
		sb.WriteString(q + "::")
	}
	sb.WriteString(p.Name)
	if len(params) == 0 {
		sb.WriteString("()")
	} else {
		sb.WriteString("( " + strings.Join(params, ", ") + " )")
	}
	if p.Const {
		sb.WriteString(" const")
	}
	return sb.String()
}

// qualifier is the class a definition belongs to. Collection and unique
// constructors live in their own classes, named like the procedure.
func qualifier(p *synth.Procedure) string {
	switch p.Kind {
	case synth.KindVectorConstructor, synth.KindUniqueConstructor:
		return p.Name
	}
	return p.Class
}

// body writes the statements of b by shape.
func (e *Emitter) body(w *writer, b synth.Body) {
	for _, n := range b.Notes {
		w.line("// precondition: " + n)
	}
	if b.OwnerAssign != "" {
		w.line(b.OwnerAssign)
	}
	for _, l := range b.Locals {
		w.line(l.Decl + l.Init + ";")
	}

	switch b.Shape {
	case synth.ShapeNone:
	case synth.ShapeComment:
		w.line("// " + b.Comment)
	case synth.ShapeTwoCall:
		e.twoCall(w, b)
	case synth.ShapeWrap, synth.ShapeForward, synth.ShapePass:
		if b.Call != "" {
			w.line(b.Call)
		}
	default:
		if b.ResultDecl != "" {
			w.line(b.ResultDecl)
		}
		if b.Call != "" {
			w.line(b.Call)
		}
	}

	if b.Check != nil {
		w.linef("resultCheck( %s, %s, { %s } );", b.Check.Result, b.Check.Message, strings.Join(b.Check.Codes, ", "))
	}
	if b.Shape == synth.ShapeConstruct && b.LoadPFNs != "" {
		w.line("loadPFNs( " + b.LoadPFNs + " );")
	}
	if b.Emplace != nil {
		e.emplace(w, b.Emplace)
	}
	if b.Return != "" {
		w.line("return " + b.Return + ";")
	}
}

// twoCall writes the count query, the resize and the fill. With a status
// the pair repeats while the entry point reports incomplete data. The
// storage is then trimmed to the final count.
func (e *Emitter) twoCall(w *writer, b synth.Body) {
	if !b.Loop {
		if b.ResultDecl != "" {
			w.line(b.ResultDecl)
		}
		w.line(b.NullCall)
		w.linef("%s.resize( %s );", b.Array, b.Count)
		w.line(b.Call)
		e.shrink(w, b)
		return
	}
	w.line(b.ResultDecl)
	w.open("do")
	w.line(b.NullCall)
	w.openf("if ( ( result == %s ) && %s )", b.Success, b.Count)
	w.linef("%s.resize( %s );", b.Array, b.Count)
	w.line(b.Call)
	w.close("")
	w.close(" while ( result == " + b.Incomplete + " );")
	e.shrink(w, b)
}

// shrink drops the tail when the fill wrote fewer elements than queried.
func (e *Emitter) shrink(w *writer, b synth.Body) {
	w.openf("if ( %s < %s.size() )", b.Count, b.Array)
	w.linef("%s.resize( %s );", b.Array, b.Count)
	w.close("")
}

func (e *Emitter) emplace(w *writer, em *synth.Emplace) {
	w.linef("this->reserve( %s );", em.Size)
	w.openf("for ( auto const & %s : %s )", em.Iter, em.Array)
	if em.Parent != "" {
		w.linef("this->emplace_back( %s, %s );", em.Parent, em.Iter)
	} else {
		w.linef("this->emplace_back( %s );", em.Iter)
	}
	w.close("")
}

package synth

import (
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
)

// New builds the resolver of the given kind. The context is consumed: its
// parameters are reshaped in place.
func New(kind Kind, ctx *MemberContext) (Resolver, error) {
	var (
		r   Resolver
		m   *member
		err error
	)
	switch kind {
	case KindDirect:
		m = newMember(kind, ctx)
		r = m
	case KindPass:
		return newPass(ctx), nil
	case KindSuppressed:
		m = newMember(kind, ctx)
		m.tag = "disabled"
		r = &suppressedResolver{member: m}
	case KindEmpty:
		e := newEmpty(ctx)
		m, r = e.member, e
	case KindGet, KindEnumerate:
		var g *getResolver
		if g, err = newGet(kind, ctx); err == nil {
			m, r = g.member, g
		}
	case KindCreate:
		var c *createResolver
		if c, err = newCreate(kind, ctx); err == nil {
			m, r = c.member, c
		}
	case KindCreateUnique:
		var c *createUniqueResolver
		if c, err = newCreateUnique(ctx); err == nil {
			m, r = c.member, c
		}
	case KindCreateHandle:
		var c *createHandleResolver
		if c, err = newCreateHandle(ctx); err == nil {
			m, r = c.member, c
		}
	case KindVectorRAII:
		var v *vectorRAIIResolver
		if v, err = newVectorRAII(kind, ctx, true); err == nil {
			m, r = v.member, v
		}
	case KindConstructor:
		var c *ctorResolver
		if c, err = newCtor(kind, ctx); err == nil {
			m, r = c.member, c
		}
	case KindUniqueConstructor:
		u := newUniqueCtor(ctx)
		m, r = u.member, u
	case KindVectorConstructor:
		var v *vectorCtorResolver
		if v, err = newVectorCtor(ctx); err == nil {
			m, r = v.member, v
		}
	default:
		return nil, errors.NewStructuralError("unknown resolver kind %d", kind)
	}
	if err != nil {
		return nil, err
	}

	m.finalize()
	if u, ok := r.(*uniqueCtorResolver); ok {
		u.buildInitializer()
	}
	return r, nil
}

// Viability is implemented by resolvers that may not apply to a command.
type Viability interface {
	Viable() bool
}

// Dedupe drops resolvers whose signature repeats an earlier one in rs or
// one already recorded on the host. Order is kept.
func Dedupe(rs []Resolver) []Resolver {
	out := make([]Resolver, 0, len(rs))
	for _, r := range rs {
		ctx := r.Context()
		sig := r.Signature()
		if ctx.Host.HasSignature(ctx.Namespace, sig) || seen(out, r) {
			logger.Debugw("Dropping duplicate overload",
				logger.FieldCommand, ctx.Command.Name,
				logger.FieldStrategy, r.Kind().String(),
				logger.FieldHandle, ctx.Host.Name)
			continue
		}
		out = append(out, r)
	}
	return out
}

func seen(kept []Resolver, r Resolver) bool {
	sig := r.Signature()
	for _, k := range kept {
		if k.Context().Namespace != r.Context().Namespace {
			continue
		}
		if equalSignature(k.Signature(), sig) {
			return true
		}
	}
	return false
}

func equalSignature(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

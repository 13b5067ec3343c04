package generator

import (
	"time"

	"go.uber.org/zap"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
	"github.com/Vulkan-FIT/vkcpp-gen/synth"
)

// Class holds the procedures generated for one handle, split by wrapper.
type Class struct {
	Handle  *registry.Handle
	Primary synth.Output
	RAII    synth.Output
	Unique  synth.Output
}

// Stats counts what a pass produced.
type Stats struct {
	Classes    int           `json:"classes"`
	Procedures int           `json:"procedures"`
	Suppressed int           `json:"suppressed"`
	Skipped    int           `json:"skipped"`
	Deduped    int           `json:"deduped"`
	Duration   time.Duration `json:"duration"`
}

// Result is the outcome of a pass: the loader class first, then every
// generated handle in name order.
type Result struct {
	Classes []*Class
	Stats   Stats
}

// Class returns the class generated for the named handle.
func (r *Result) Class(name string) (*Class, bool) {
	for _, c := range r.Classes {
		if c.Handle.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Generator runs generation passes over a settled registry.
type Generator struct {
	cfg *am.Config
	reg *registry.Registry
	env *synth.Env
	log *zap.SugaredLogger

	classes map[string]*Class
	stats   Stats
}

// New creates a generator. The registry must be linked and its profile
// applied.
func New(cfg *am.Config, reg *registry.Registry) *Generator {
	return &Generator{
		cfg: cfg,
		reg: reg,
		env: synth.NewEnv(cfg, reg),
		log: logger.ComponentLogger("generator"),
	}
}

// Pass analyzes the registry and generates every class. Ledgers from an
// earlier pass are discarded first, so passes can be repeated.
func (g *Generator) Pass() (*Result, error) {
	start := time.Now()
	if err := Analyze(g.reg, g.cfg); err != nil {
		return nil, errors.Wrap(err, "failed to analyze registry")
	}
	g.stats = Stats{}
	g.classes = make(map[string]*Class)

	res := &Result{}
	for _, h := range g.handles() {
		c := &Class{Handle: h}
		g.classes[h.Name] = c
		res.Classes = append(res.Classes, c)
	}

	for _, c := range res.Classes {
		if err := g.members(c); err != nil {
			return nil, err
		}
	}
	if g.cfg.Gen.RAII {
		for _, c := range res.Classes {
			if err := g.constructors(c); err != nil {
				return nil, err
			}
		}
	}
	if g.cfg.Gen.SmartHandles {
		for _, c := range res.Classes {
			if err := g.unique(c); err != nil {
				return nil, err
			}
		}
	}

	g.stats.Classes = len(res.Classes)
	g.stats.Duration = time.Since(start)
	res.Stats = g.stats
	g.log.Infow("Generation pass complete",
		logger.FieldCount, g.stats.Procedures,
		"classes", g.stats.Classes,
		"suppressed", g.stats.Suppressed,
		"skipped", g.stats.Skipped,
		logger.FieldDurationMS, g.stats.Duration.Milliseconds())
	return res, nil
}

// handles are the loader and every generatable handle.
func (g *Generator) handles() []*registry.Handle {
	out := []*registry.Handle{g.reg.Loader}
	for _, h := range g.reg.Handles() {
		if g.reg.Graph.CanGenerate(h.ID) {
			out = append(out, h)
		}
	}
	return out
}

func (g *Generator) namespaces() []param.Namespace {
	if g.cfg.Gen.RAII {
		return []param.Namespace{param.NamespacePrimary, param.NamespaceRAII}
	}
	return []param.Namespace{param.NamespacePrimary}
}

func (g *Generator) output(c *Class, ns param.Namespace) *synth.Output {
	if ns == param.NamespaceRAII {
		return &c.RAII
	}
	return &c.Primary
}

func (g *Generator) members(c *Class) error {
	graph := g.reg.Graph
	for _, m := range c.Handle.Members {
		id := m.Command.ID
		if !graph.IsSupported(id) {
			g.stats.Skipped++
			continue
		}
		if !graph.CanGenerate(id) {
			if err := g.suppress(c, m); err != nil {
				return err
			}
			continue
		}
		for _, ns := range g.namespaces() {
			kinds := SelectStrategies(g.cfg, g.reg, m, ns)
			var rs []synth.Resolver
			for _, k := range kinds {
				r, err := g.build(k, synth.NewMemberContext(g.env, m, ns, false))
				if err != nil {
					return err
				}
				rs = append(rs, r)
			}
			if err := g.emit(rs, g.output(c, ns)); err != nil {
				return err
			}
		}
	}
	return nil
}

// suppress emits an excluded command as a commented declaration when
// debug.show_suppressed is set.
func (g *Generator) suppress(c *Class, m *registry.Member) error {
	g.stats.Skipped++
	if !g.cfg.Debug.ShowSuppressed {
		return nil
	}
	r, err := synth.New(synth.KindSuppressed, synth.NewMemberContext(g.env, m, param.NamespacePrimary, false))
	if err != nil {
		return err
	}
	return g.emit([]synth.Resolver{r}, &c.Primary)
}

func (g *Generator) constructors(c *Class) error {
	h := c.Handle
	if h.IsLoader {
		return nil
	}
	graph := g.reg.Graph
	var rs []synth.Resolver
	for _, m := range h.Ctors {
		if !graph.CanGenerate(m.Command.ID) {
			continue
		}
		r, err := g.build(synth.KindConstructor, synth.NewMemberContext(g.env, m, param.NamespaceRAII, true))
		if err != nil {
			return err
		}
		if v, ok := r.(synth.Viability); ok && !v.Viable() {
			if err := g.handleFactory(m); err != nil {
				return err
			}
			continue
		}
		rs = append(rs, r)
	}
	for _, m := range h.VectorCtors {
		if !graph.CanGenerate(m.Command.ID) {
			continue
		}
		r, err := g.build(synth.KindVectorConstructor, synth.NewMemberContext(g.env, m, param.NamespaceRAII, true))
		if err != nil {
			return err
		}
		rs = append(rs, r)
	}
	return g.emit(rs, &c.RAII)
}

// handleFactory puts a method on the command's own host that wraps the
// raw handle, for creations no constructor can express.
func (g *Generator) handleFactory(ctor *registry.Member) error {
	m := hostMember(g.reg, ctor.Command)
	c, ok := g.classes[m.Host.Name]
	if !ok {
		return nil
	}
	r, err := g.build(synth.KindCreateHandle, synth.NewMemberContext(g.env, m, param.NamespaceRAII, false))
	if err != nil {
		return err
	}
	return g.emit([]synth.Resolver{r}, &c.RAII)
}

func (g *Generator) unique(c *Class) error {
	h := c.Handle
	if h.IsLoader || !h.UniqueVariant() || h.Creation == registry.CreationNone || len(h.Dtors) == 0 {
		return nil
	}
	dtor := h.Dtors[0]
	if !g.reg.Graph.CanGenerate(dtor.ID) {
		return nil
	}

	ctor, err := g.build(synth.KindUniqueConstructor,
		synth.NewMemberContext(g.env, &registry.Member{Command: dtor, Host: h, Name: h.ClassName()}, param.NamespacePrimary, false))
	if err != nil {
		return err
	}

	ctx := synth.NewMemberContext(g.env, &registry.Member{Command: dtor, Host: h, Name: "destroy"}, param.NamespacePrimary, false)
	ctx.InUnique = true
	ctx.Inline = true
	if g.cfg.Gen.DispatchParam {
		ctx.SetPFNSource("m_dispatch->")
	}
	destroy, err := g.build(synth.KindDirect, ctx)
	if err != nil {
		return err
	}

	rs := []synth.Resolver{ctor, destroy}
	var out synth.Output
	for _, r := range rs {
		if err := r.Generate(&out); err != nil {
			return errors.Wrapf(err, "failed to generate unique %s", h.Name)
		}
	}
	c.Unique = out
	g.stats.Procedures += out.Len()
	return nil
}

// build constructs a resolver. SelectStrategies only plans variants whose
// parameters fit, so any failure here aborts the pass.
func (g *Generator) build(kind synth.Kind, ctx *synth.MemberContext) (synth.Resolver, error) {
	r, err := synth.New(kind, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s for %s", kind, ctx.Command.Name)
	}
	return r, nil
}

// emit de-duplicates rs against each other and the host ledger, then
// generates the survivors into out.
func (g *Generator) emit(rs []synth.Resolver, out *synth.Output) error {
	kept := synth.Dedupe(rs)
	g.stats.Deduped += len(rs) - len(kept)
	for _, r := range kept {
		if err := r.Generate(out); err != nil {
			return errors.Wrapf(err, "failed to generate %s", r.Context().Command.Name)
		}
		if r.Kind() == synth.KindSuppressed {
			g.stats.Suppressed++
		} else {
			g.stats.Procedures++
		}
	}
	return nil
}

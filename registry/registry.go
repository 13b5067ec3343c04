// Package registry holds every element of a loaded API registry and the
// requirement graph that decides which of them are generated.
//
// Records are owned by the Registry and refer to each other by name or by
// NodeID, never by pointer into another record's storage.
package registry

import (
	"github.com/emirpasic/gods/maps/treemap"
	"go.uber.org/zap"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// LoaderName is the pseudo-handle hosting global commands.
const LoaderName = "VkLibraryLoader"

// Registry is the loaded registry.
type Registry struct {
	Graph         *Graph
	HeaderVersion string

	tags       []string
	platforms  *treemap.Map
	extensions *treemap.Map
	handles    *treemap.Map
	commands   *treemap.Map
	structs    *treemap.Map
	enums      *treemap.Map
	features   []*Feature
	basetypes  map[string]string
	ids        map[string]NodeID
	owner      map[NodeID]string

	// Loader hosts commands whose first parameter is not a handle.
	Loader *Handle

	log *zap.SugaredLogger
}

// New returns an empty registry with a loader pseudo-handle.
func New() *Registry {
	r := &Registry{
		Graph:      NewGraph(),
		platforms:  treemap.NewWithStringComparator(),
		extensions: treemap.NewWithStringComparator(),
		handles:    treemap.NewWithStringComparator(),
		commands:   treemap.NewWithStringComparator(),
		structs:    treemap.NewWithStringComparator(),
		enums:      treemap.NewWithStringComparator(),
		basetypes:  make(map[string]string),
		ids:        make(map[string]NodeID),
		owner:      make(map[NodeID]string),
		log:        logger.ComponentLogger("registry"),
	}
	r.Loader = &Handle{ID: InvalidNode, Name: LoaderName, IsLoader: true}
	return r
}

func (r *Registry) addNode(name string, kind Kind) (NodeID, error) {
	if _, ok := r.ids[name]; ok {
		return InvalidNode, errors.NewStructuralError("duplicate element %s", name)
	}
	id := r.Graph.Add(name, kind)
	r.ids[name] = id
	return id, nil
}

// NodeID returns the node registered under name.
func (r *Registry) NodeID(name string) (NodeID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// AddTag registers a vendor tag such as KHR or EXT.
func (r *Registry) AddTag(tag string) { r.tags = append(r.tags, tag) }

// Tags returns the vendor tags in registry order.
func (r *Registry) Tags() []string { return append([]string(nil), r.tags...) }

// AddBaseType registers a typedef'd scalar such as VkBool32.
func (r *Registry) AddBaseType(name, underlying string) error {
	if _, err := r.addNode(name, KindType); err != nil {
		return err
	}
	r.basetypes[name] = underlying
	return nil
}

// AddPlatform registers a platform.
func (r *Registry) AddPlatform(p *Platform) error {
	if _, found := r.platforms.Get(p.Name); found {
		return errors.NewStructuralError("duplicate platform %s", p.Name)
	}
	r.platforms.Put(p.Name, p)
	return nil
}

// Platform looks up a platform by name.
func (r *Registry) Platform(name string) (*Platform, error) {
	if v, found := r.platforms.Get(name); found {
		return v.(*Platform), nil
	}
	return nil, errors.NewLookupError("platform "+name, "registry")
}

// Platforms returns all platforms ordered by name.
func (r *Registry) Platforms() []*Platform {
	out := make([]*Platform, 0, r.platforms.Size())
	for _, v := range r.platforms.Values() {
		out = append(out, v.(*Platform))
	}
	return out
}

// AddExtension registers an extension and its node.
func (r *Registry) AddExtension(e *Extension) error {
	id, err := r.addNode(e.Name, KindExtension)
	if err != nil {
		return err
	}
	e.ID = id
	if !e.Supported {
		r.Graph.SetUnsupported(id)
	}
	if e.Platform != "" {
		p, err := r.Platform(e.Platform)
		if err != nil {
			return errors.Wrapf(err, "extension %s", e.Name)
		}
		e.Protect = p.Protect
		p.Extensions = append(p.Extensions, e.Name)
	}
	r.extensions.Put(e.Name, e)
	return nil
}

// Extension looks up an extension by name.
func (r *Registry) Extension(name string) (*Extension, error) {
	if v, found := r.extensions.Get(name); found {
		return v.(*Extension), nil
	}
	return nil, errors.NewLookupError("extension "+name, "registry")
}

// Extensions returns all extensions ordered by name.
func (r *Registry) Extensions() []*Extension {
	out := make([]*Extension, 0, r.extensions.Size())
	for _, v := range r.extensions.Values() {
		out = append(out, v.(*Extension))
	}
	return out
}

// AddFeature registers a core version.
func (r *Registry) AddFeature(f *Feature) {
	r.features = append(r.features, f)
}

// Features returns core versions in registry order.
func (r *Registry) Features() []*Feature {
	return append([]*Feature(nil), r.features...)
}

// AddHandle registers a handle type.
func (r *Registry) AddHandle(h *Handle) error {
	id, err := r.addNode(h.Name, KindHandle)
	if err != nil {
		return err
	}
	h.ID = id
	r.handles.Put(h.Name, h)
	return nil
}

// Handle looks up a handle, including the loader pseudo-handle.
func (r *Registry) Handle(name string) (*Handle, error) {
	if h, ok := r.LookupHandle(name); ok {
		return h, nil
	}
	return nil, errors.NewLookupError("handle "+name, "registry")
}

// LookupHandle is Handle for probe sites.
func (r *Registry) LookupHandle(name string) (*Handle, bool) {
	if name == r.Loader.Name {
		return r.Loader, true
	}
	if v, found := r.handles.Get(name); found {
		return v.(*Handle), true
	}
	return nil, false
}

// IsHandle reports whether name is a handle type.
func (r *Registry) IsHandle(name string) bool {
	_, ok := r.LookupHandle(name)
	return ok
}

// Handles returns every real handle ordered by name.
func (r *Registry) Handles() []*Handle {
	out := make([]*Handle, 0, r.handles.Size())
	for _, v := range r.handles.Values() {
		out = append(out, v.(*Handle))
	}
	return out
}

// AddCommand registers a command.
func (r *Registry) AddCommand(c *Command) error {
	id, err := r.addNode(c.Name, KindCommand)
	if err != nil {
		return err
	}
	c.ID = id
	r.commands.Put(c.Name, c)
	return nil
}

// Command looks up a command by name.
func (r *Registry) Command(name string) (*Command, error) {
	if v, found := r.commands.Get(name); found {
		return v.(*Command), nil
	}
	return nil, errors.NewLookupError("command "+name, "registry")
}

// Commands returns every command ordered by name.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, r.commands.Size())
	for _, v := range r.commands.Values() {
		out = append(out, v.(*Command))
	}
	return out
}

// AddStruct registers a struct or union.
func (r *Registry) AddStruct(s *Struct) error {
	id, err := r.addNode(s.Name, KindStruct)
	if err != nil {
		return err
	}
	s.ID = id
	r.structs.Put(s.Name, s)
	return nil
}

// Struct looks up a struct or union by name.
func (r *Registry) Struct(name string) (*Struct, error) {
	if v, found := r.structs.Get(name); found {
		return v.(*Struct), nil
	}
	return nil, errors.NewLookupError("struct "+name, "registry")
}

// IsStruct reports whether name is a struct or union.
func (r *Registry) IsStruct(name string) bool {
	_, found := r.structs.Get(name)
	return found
}

// Structs returns every aggregate ordered by name.
func (r *Registry) Structs() []*Struct {
	out := make([]*Struct, 0, r.structs.Size())
	for _, v := range r.structs.Values() {
		out = append(out, v.(*Struct))
	}
	return out
}

// AddEnum registers an enum along with a node per value.
func (r *Registry) AddEnum(e *Enum) error {
	id, err := r.addNode(e.Name, KindEnum)
	if err != nil {
		return err
	}
	e.ID = id
	for _, v := range e.Values {
		if err := r.addEnumValueNode(v); err != nil {
			return err
		}
	}
	r.enums.Put(e.Name, e)
	return nil
}

// AddEnumValue appends a value to an existing enum, as extensions do.
func (r *Registry) AddEnumValue(enum string, v *EnumValue) error {
	e, err := r.Enum(enum)
	if err != nil {
		return err
	}
	if e.Value(v.Name) != nil {
		// extensions promoted to core repeat their values
		v.ID = r.ids[v.Name]
		return nil
	}
	if err := r.addEnumValueNode(v); err != nil {
		return err
	}
	e.Values = append(e.Values, v)
	return nil
}

func (r *Registry) addEnumValueNode(v *EnumValue) error {
	id, err := r.addNode(v.Name, KindEnumValue)
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

// Enum looks up an enum by name.
func (r *Registry) Enum(name string) (*Enum, error) {
	if v, found := r.enums.Get(name); found {
		return v.(*Enum), nil
	}
	return nil, errors.NewLookupError("enum "+name, "registry")
}

// Enums returns every enum ordered by name.
func (r *Registry) Enums() []*Enum {
	out := make([]*Enum, 0, r.enums.Size())
	for _, v := range r.enums.Values() {
		out = append(out, v.(*Enum))
	}
	return out
}

// ParamKind classifies a declared type name for parameter descriptors.
func (r *Registry) ParamKind(typeName string) param.Kind {
	switch {
	case r.IsHandle(typeName):
		return param.KindHandle
	case r.IsStruct(typeName):
		return param.KindStruct
	default:
		if _, found := r.enums.Get(typeName); found {
			return param.KindEnum
		}
		return param.KindBasic
	}
}

// Protect returns the preprocessor guard for an element, which is the
// protect define of the platform of the extension that introduced it.
func (r *Registry) Protect(id NodeID) string {
	ext, ok := r.owner[id]
	if !ok {
		return ""
	}
	if e, err := r.Extension(ext); err == nil {
		return e.Protect
	}
	return ""
}

// Owner returns the extension that introduced an element, or "" for core.
func (r *Registry) Owner(id NodeID) string {
	return r.owner[id]
}

// Require adds an element to an extension's required list. The first
// supported extension to claim an element becomes its owner.
func (r *Registry) Require(ext *Extension, element string) error {
	id, ok := r.ids[element]
	if !ok {
		return errors.NewLookupError(element, "extension "+ext.Name)
	}
	ext.Elements = append(ext.Elements, id)
	if _, claimed := r.owner[id]; !claimed && ext.Supported {
		r.owner[id] = ext.Name
		if c, err := r.Command(element); err == nil {
			c.Extension = ext.Name
		}
	}
	return nil
}

// RequireFeature adds an element to a core version.
func (r *Registry) RequireFeature(f *Feature, element string) error {
	id, ok := r.ids[element]
	if !ok {
		return errors.NewLookupError(element, "feature "+f.Name)
	}
	f.Elements = append(f.Elements, id)
	return nil
}

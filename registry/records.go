package registry

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Vulkan-FIT/vkcpp-gen/classify"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// Platform is a windowing or OS platform guarded by a protect define.
type Platform struct {
	Name       string
	Protect    string
	Comment    string
	Enabled    bool
	Extensions []string
}

// Extension groups registry elements behind one name. Its node carries no
// dependency edges: toggling an extension toggles each element directly.
type Extension struct {
	ID        NodeID
	Name      string
	Number    int
	Type      string // "instance" or "device"
	Author    string
	Platform  string
	Protect   string
	Supported bool
	Requires  []string
	Promoted  string
	Elements  []NodeID
}

// Feature is a core API version and the elements it introduces.
type Feature struct {
	Name     string
	API      string
	Number   *semver.Version
	Elements []NodeID
}

// CommandFlags are derived command properties. Link sets FlagAlias; the
// generator's analysis phase owns FlagIndirect and FlagRAIIOnly.
type CommandFlags uint8

const (
	FlagAlias CommandFlags = 1 << iota
	FlagIndirect
	FlagRAIIOnly
)

// Command is a registry command. Category and ReturnKind are computed when
// the command is added and never change.
type Command struct {
	ID           NodeID
	Name         string
	ReturnType   string
	Params       []*param.Param
	SuccessCodes []string
	ErrorCodes   []string
	Alias        string
	Extension    string

	Category   classify.Category
	ReturnKind classify.ReturnKind
	Flags      CommandFlags
}

// NewCommand builds a command and classifies it.
func NewCommand(name, returnType string, params []*param.Param) *Command {
	c := &Command{
		ID:         InvalidNode,
		Name:       name,
		ReturnType: returnType,
		Params:     params,
	}
	c.Classify()
	return c
}

// Classify recomputes category and return kind from name and return type.
func (c *Command) Classify() {
	c.Category = classify.ClassifyName(c.Name)
	c.ReturnKind = classify.ClassifyReturn(c.ReturnType)
}

func (c *Command) HasFlag(f CommandFlags) bool { return c.Flags&f != 0 }

// SetFlag sets or clears a flag.
func (c *Command) SetFlag(f CommandFlags, v bool) {
	if v {
		c.Flags |= f
	} else {
		c.Flags &^= f
	}
}

// CreationCategory tells how a handle comes into existence.
type CreationCategory uint8

const (
	CreationNone CreationCategory = iota
	CreationAllocate
	CreationCreate
)

// Member is a command placed on a host handle under its member name.
type Member struct {
	Command  *Command
	Host     *Handle
	Name     string
	RAIIOnly bool
}

// Handle is an opaque object type and the wrapper class generated for it.
type Handle struct {
	ID           NodeID
	Name         string // VkDevice
	Parent       string
	Alias        string
	ObjectType   string
	Dispatchable bool
	IsLoader     bool

	// Superclass is the nearest ancestor holding a dispatch table.
	Superclass string
	IsSubclass bool
	// OwnerHandle is the member variable pointing at the owner in RAII classes.
	OwnerHandle string
	Creation    CreationCategory

	Members     []*Member
	Ctors       []*Member
	Dtors       []*Command
	VectorCtors []*Member
	GetAddr     *Member
	// UniqueVars are the extra members a unique wrapper stores.
	UniqueVars []*param.Param

	generated map[param.Namespace][][]string
}

// ClassName is the wrapper class name, without the Vk prefix.
func (h *Handle) ClassName() string {
	return param.StripVk(h.Name)
}

// MemberVar is the wrapped raw handle's member variable, m_device for Device.
func (h *Handle) MemberVar() string {
	return "m_" + lowerFirst(h.ClassName())
}

// HasPFNs reports whether the class carries its own function table.
func (h *Handle) HasPFNs() bool {
	return len(h.Members) > 0 && !h.IsSubclass
}

// UniqueVariant reports whether a unique wrapper is generated.
func (h *Handle) UniqueVariant() bool {
	return h.Creation != CreationNone
}

// Generated returns the signatures recorded for a namespace.
func (h *Handle) Generated(ns param.Namespace) [][]string {
	return h.generated[ns]
}

// HasSignature reports whether an identical signature was already generated
// in ns. Signatures compare element by element.
func (h *Handle) HasSignature(ns param.Namespace, sig []string) bool {
	for _, g := range h.generated[ns] {
		if equalSignature(g, sig) {
			return true
		}
	}
	return false
}

// RecordSignature adds a generated member to the ledger.
func (h *Handle) RecordSignature(ns param.Namespace, sig []string) {
	if h.generated == nil {
		h.generated = make(map[param.Namespace][][]string)
	}
	h.generated[ns] = append(h.generated[ns], append([]string(nil), sig...))
}

// ClearGenerated resets the ledger between passes.
func (h *Handle) ClearGenerated() {
	h.generated = nil
	h.UniqueVars = nil
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

// Struct is a struct or union type.
type Struct struct {
	ID              NodeID
	Name            string
	Union           bool
	ReturnedOnly    bool
	StructTypeValue string
	Extends         []string
	Aliases         []string
	Members         []*param.Param
}

// Keyword is "struct" or "union".
func (s *Struct) Keyword() string {
	if s.Union {
		return "union"
	}
	return "struct"
}

// Enum is an enumeration or bitmask type.
type Enum struct {
	ID      NodeID
	Name    string
	Bitmask bool
	Aliases []string
	Values  []*EnumValue
}

// EnumValue is one enumerant.
type EnumValue struct {
	ID    NodeID
	Name  string
	Value string
	Alias string
}

// IsAlias reports whether the value only renames another enumerant.
func (v *EnumValue) IsAlias() bool { return v.Alias != "" }

// Value returns the enumerant named name, or nil.
func (e *Enum) Value(name string) *EnumValue {
	for _, v := range e.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

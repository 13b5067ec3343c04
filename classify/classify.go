// Package classify derives behavior-driving categories from registry names
// and parameter lists. Every function here is pure.
package classify

import (
	"regexp"
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
)

// Category is the verb a command name starts with.
type Category uint8

const (
	Unknown Category = iota
	Get
	Allocate
	Acquire
	Create
	Enumerate
	Write
	Destroy
	Free
)

var verbs = []struct {
	prefix string
	cat    Category
}{
	{"get", Get},
	{"allocate", Allocate},
	{"acquire", Acquire},
	{"create", Create},
	{"enumerate", Enumerate},
	{"write", Write},
	{"destroy", Destroy},
	{"free", Free},
}

func (c Category) String() string {
	switch c {
	case Get:
		return "get"
	case Allocate:
		return "allocate"
	case Acquire:
		return "acquire"
	case Create:
		return "create"
	case Enumerate:
		return "enumerate"
	case Write:
		return "write"
	case Destroy:
		return "destroy"
	case Free:
		return "free"
	default:
		return "unknown"
	}
}

// ClassifyName maps a command name to its category. The leading "vk" is
// optional and a verb only matches at a camel-case word boundary, so
// "vkGetDeviceQueue" is Get but "vkGetterFoo" is Unknown.
func ClassifyName(name string) Category {
	name = strings.TrimPrefix(name, "vk")
	if name == "" {
		return Unknown
	}
	lowered := strings.ToLower(name[:1]) + name[1:]
	for _, v := range verbs {
		if !strings.HasPrefix(lowered, v.prefix) {
			continue
		}
		rest := lowered[len(v.prefix):]
		if rest == "" || (rest[0] >= 'A' && rest[0] <= 'Z') {
			return v.cat
		}
	}
	return Unknown
}

// GetsObject reports whether the category retrieves an existing object.
func GetsObject(c Category) bool {
	return c == Get || c == Acquire
}

// CreatesObject reports whether the category produces a new object.
func CreatesObject(c Category) bool {
	return c == Allocate || c == Create
}

// DestroysObject reports whether the category releases an object.
func DestroysObject(c Category) bool {
	return c == Destroy || c == Free
}

// LastPointerParam returns the last parameter declared with indirection.
func LastPointerParam(params []*param.Param) (*param.Param, error) {
	for i := len(params) - 1; i >= 0; i-- {
		if params[i].IsPointer() {
			return params[i], nil
		}
	}
	return nil, errors.NewLookupError("pointer parameter", "parameter list")
}

// LastHandleParam returns the last parameter whose type is a handle.
func LastHandleParam(params []*param.Param) (*param.Param, error) {
	for i := len(params) - 1; i >= 0; i-- {
		if params[i].IsHandle() {
			return params[i], nil
		}
	}
	return nil, errors.NewLookupError("handle parameter", "parameter list")
}

// LastVisibleParam returns the last parameter still present in signatures.
func LastVisibleParam(params []*param.Param) (*param.Param, error) {
	for i := len(params) - 1; i >= 0; i-- {
		if !params[i].Ignored() {
			return params[i], nil
		}
	}
	return nil, errors.NewLookupError("visible parameter", "parameter list")
}

// HasPointerParam reports whether any parameter is a pointer.
func HasPointerParam(params []*param.Param) bool {
	_, err := LastPointerParam(params)
	return err == nil
}

// IsIndirectCandidate reports whether a command hosted on hostType should be
// reached through the owner instead of the host. Get and create commands
// qualify unless their output is the host type itself; destroy commands
// unless they destroy the host. Any missing parameter answers true.
func IsIndirectCandidate(c Category, params []*param.Param, hostType string) bool {
	switch {
	case GetsObject(c) || CreatesObject(c):
		p, err := LastPointerParam(params)
		if err != nil {
			return true
		}
		return p.Original.Name != hostType
	case DestroysObject(c):
		p, err := LastHandleParam(params)
		if err != nil {
			return true
		}
		return p.Original.Name != hostType
	}
	return true
}

// ReturnKind classifies a command's declared return type.
type ReturnKind uint8

const (
	ReturnOther ReturnKind = iota
	ReturnVoid
	ReturnStatus
)

func (r ReturnKind) String() string {
	switch r {
	case ReturnVoid:
		return "void"
	case ReturnStatus:
		return "status"
	default:
		return "other"
	}
}

// ClassifyReturn maps a declared return type to a ReturnKind.
func ClassifyReturn(t string) ReturnKind {
	switch t {
	case "void", "":
		return ReturnVoid
	case "VkResult":
		return ReturnStatus
	default:
		return ReturnOther
	}
}

// ArraySize tells how a length parameter carries its value.
type ArraySize uint8

const (
	ArraySizeInvalid ArraySize = iota
	ArraySizeCount
	ArraySizeSize
	ArraySizeConstCount
)

// ClassifyArraySize inspects a length parameter's name and declaration.
func ClassifyArraySize(p *param.Param) ArraySize {
	switch {
	case strings.HasSuffix(p.Name, "Count"):
		if p.IsPointer() {
			return ArraySizeCount
		}
		return ArraySizeConstCount
	case strings.HasSuffix(p.Name, "Size"):
		return ArraySizeSize
	default:
		return ArraySizeInvalid
	}
}

// MemberName converts a command name into the member name it gets on a
// host: the vk prefix goes, the first letter is lowered and every
// occurrence of the host name is removed, so vkGetPhysicalDeviceFeatures on
// PhysicalDevice becomes getFeatures and vkDeviceWaitIdle on Device becomes
// waitIdle.
func MemberName(command, host string) string {
	name := strings.TrimPrefix(command, "vk")
	if name == "" {
		return name
	}
	name = strings.ToLower(name[:1]) + name[1:]
	if host == "" {
		return name
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(host))
	stripped := re.ReplaceAllString(name, "")
	if stripped == "" {
		return name
	}
	return strings.ToLower(stripped[:1]) + stripped[1:]
}

package synth

import "github.com/Vulkan-FIT/vkcpp-gen/param"

// Shape selects how a body is laid out.
type Shape uint8

const (
	// ShapeNone has no body; the procedure is a member-initializer constructor.
	ShapeNone Shape = iota
	// ShapeCall invokes the entry point, optionally checks and returns.
	ShapeCall
	// ShapeDestroy is a call that releases an object.
	ShapeDestroy
	// ShapeScalarOut declares one output, invokes, checks and returns it.
	ShapeScalarOut
	// ShapeTwoCall queries a count, sizes storage and fills it, repeating
	// while the entry point reports incomplete data.
	ShapeTwoCall
	// ShapeKnownSize sizes storage from a count known up front, then fills it.
	ShapeKnownSize
	// ShapeWrap returns a freshly constructed wrapper object.
	ShapeWrap
	// ShapeConstruct is a constructor body acquiring its handle.
	ShapeConstruct
	// ShapeForward delegates to the owner object's member.
	ShapeForward
	// ShapePass returns the raw entry point result.
	ShapePass
	// ShapeComment is a placeholder body.
	ShapeComment
)

var shapeNames = [...]string{
	ShapeNone:      "none",
	ShapeCall:      "call",
	ShapeDestroy:   "destroy",
	ShapeScalarOut: "scalar-out",
	ShapeTwoCall:   "two-call",
	ShapeKnownSize: "known-size",
	ShapeWrap:      "wrap",
	ShapeConstruct: "construct",
	ShapeForward:   "forward",
	ShapePass:      "pass",
	ShapeComment:   "comment",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Local is a variable declared at the top of a body.
type Local struct {
	Decl string // "std::vector<PhysicalDevice> physicalDevices"
	Init string // "(allocateInfo.commandBufferCount)", optional
}

// Check is the trailing status check.
type Check struct {
	Result  string
	Message string
	Codes   []string
}

// Emplace fills the surrounding collection object from a local array.
type Emplace struct {
	Size   string
	Array  string
	Iter   string
	Parent string
}

// Init is one member initializer.
type Init struct {
	Member string
	Value  string
}

// Body is the structured statement list of a procedure.
type Body struct {
	Shape Shape
	// Notes are preconditions the caller must satisfy, such as indirect
	// lengths that cannot be derived from an array view.
	Notes  []string
	Locals []Local
	// ResultDecl declares the status variable before a loop.
	ResultDecl string
	// NullCall is the sizing call of the two-call idiom.
	NullCall string
	Call     string
	Count    string
	Array    string
	// Loop repeats the two calls while the status is incomplete.
	Loop        bool
	Incomplete  string
	Success     string
	OwnerAssign string
	LoadPFNs    string
	Check       *Check
	Emplace     *Emplace
	Return      string
	Comment     string
}

// Procedure is one generated member function.
type Procedure struct {
	Kind      Kind
	Tag       string
	Namespace param.Namespace
	// Class is the host class name; empty for free functions.
	Class      string
	Name       string
	Protect    string
	Templates  []string
	ReturnType string

	DeclParams  []string
	DefParams   []string
	Initializer []Init

	Inline   bool
	Explicit bool
	Const    bool
	Static   bool
	// InClass defines the procedure inside the class body.
	InClass bool
	// Commented emits the declaration as a comment.
	Commented bool

	Body Body
}

// Output accumulates declarations and out-of-class definitions.
type Output struct {
	Decls []*Procedure
	Defs  []*Procedure
}

// Add files p under declarations and, unless it is defined in class or
// commented out, under definitions.
func (o *Output) Add(p *Procedure) {
	o.Decls = append(o.Decls, p)
	if !p.InClass && !p.Commented {
		o.Defs = append(o.Defs, p)
	}
}

// Len is the number of declared procedures.
func (o *Output) Len() int { return len(o.Decls) }

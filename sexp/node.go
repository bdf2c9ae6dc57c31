package sexp

import "strconv"

// ArgPref biases where an Argument is emitted relative to a node's other
// arguments and children when the node is re-serialized (spec.md §3).
// Equal-preference arguments keep their relative insertion order.
type ArgPref int

const (
	// PrefStart emits before None/End arguments and before children.
	PrefStart ArgPref = iota
	// PrefNone is the default preference for arguments produced while
	// parsing an existing file.
	PrefNone
	// PrefEnd emits after None arguments and after children.
	PrefEnd
)

// ArgKind identifies which scalar kind an Argument holds.
type ArgKind int

const (
	ArgNumber ArgKind = iota
	ArgIdent
	ArgString
)

// Argument is a single scalar value attached directly to a Node, as opposed
// to one of its child Nodes. See spec.md §3.
type Argument struct {
	Kind   ArgKind
	Number float64
	Str    string // holds IDENT or QSTRING payload (unquoted)
	Pref   ArgPref
}

// NewIdentArg builds an identifier-kind Argument.
func NewIdentArg(s string) Argument { return Argument{Kind: ArgIdent, Str: s} }

// NewStringArg builds a quoted-string-kind Argument.
func NewStringArg(s string) Argument { return Argument{Kind: ArgString, Str: s} }

// NewNumberArg builds a number-kind Argument.
func NewNumberArg(f float64) Argument { return Argument{Kind: ArgNumber, Number: f} }

// WithPref returns a with its Pref field overridden.
func (a Argument) WithPref(p ArgPref) Argument {
	a.Pref = p
	return a
}

// AsIdent returns the argument's payload as though it were an identifier,
// regardless of its actual Kind — convenient for nodes like `fill` whose
// boolean encoding is symmetric between identifier forms (spec.md §4.4).
func (a Argument) AsIdent() string {
	if a.Kind == ArgNumber {
		return formatNumber(a.Number)
	}
	return a.Str
}

// AsFloat parses the argument as a float64.
func (a Argument) AsFloat() (float64, error) {
	if a.Kind == ArgNumber {
		return a.Number, nil
	}
	return strconv.ParseFloat(a.Str, 64)
}

// AsInt parses the argument as an int, truncating any fractional part.
func (a Argument) AsInt() (int, error) {
	if a.Kind == ArgNumber {
		return int(a.Number), nil
	}
	return strconv.Atoi(a.Str)
}

// formatNumber renders a float64 the way Kicad emits it: integral values
// with no decimal point, others with Go's shortest round-trip form.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Node is a single element of the Kicad S-expression tree: a name, an
// ordered set of scalar Arguments, and an ordered set of child Nodes.
// See spec.md §3.
type Node struct {
	Name      string
	Arguments []Argument
	Children  []Node
}

// NewNode constructs a Node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Arg appends an Argument to n and returns n, for fluent construction.
func (n *Node) Arg(a Argument) *Node {
	n.Arguments = append(n.Arguments, a)
	return n
}

// Ident appends an identifier argument.
func (n *Node) Ident(s string) *Node { return n.Arg(NewIdentArg(s)) }

// Str appends a quoted-string argument.
func (n *Node) Str(s string) *Node { return n.Arg(NewStringArg(s)) }

// Num appends a number argument.
func (n *Node) Num(f float64) *Node { return n.Arg(NewNumberArg(f)) }

// Child appends a child node built by the given constructor, if it is
// non-nil, and returns n.
func (n *Node) Child(c *Node) *Node {
	if c != nil {
		n.Children = append(n.Children, *c)
	}
	return n
}

// Find returns the first child node with the given name, following the
// FindNode idiom used by OpenTraceJTAG's sexp accessor helpers, adapted to
// this package's flat Node shape.
func (n *Node) Find(name string) (*Node, bool) {
	for i := range n.Children {
		if n.Children[i].Name == name {
			return &n.Children[i], true
		}
	}
	return nil, false
}

// FindAll returns every child node with the given name, in order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for i := range n.Children {
		if n.Children[i].Name == name {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// HasIdent reports whether n carries a bare identifier argument equal to s
// (used for flag-like children such as `(hide)` or fill keywords).
func (n *Node) HasIdent(s string) bool {
	for _, a := range n.Arguments {
		if a.Kind == ArgIdent && a.Str == s {
			return true
		}
	}
	return false
}

// ArgAt returns the argument at the given index, or ok=false if out of range.
func (n *Node) ArgAt(i int) (Argument, bool) {
	if i < 0 || i >= len(n.Arguments) {
		return Argument{}, false
	}
	return n.Arguments[i], true
}

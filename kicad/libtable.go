package kicad

import "github.com/SparkyTD/jlcrs/sexp"

// LibTableEntry is a single `(lib ...)` row of a `sym-lib-table` or
// `fp-lib-table` file, per spec.md §4.8.
type LibTableEntry struct {
	Name        string
	Kind        string // "KiCad" for both symbol and footprint tables
	URI         string
	Options     string
	Description string
	Disabled    bool
}

func (e LibTableEntry) Serialize() *sexp.Node {
	n := sexp.NewNode("lib")
	n.Child(sexp.NewNode("name").Str(e.Name))
	n.Child(sexp.NewNode("type").Ident(e.Kind))
	n.Child(sexp.NewNode("uri").Str(e.URI))
	n.Child(sexp.NewNode("options").Str(e.Options))
	n.Child(sexp.NewNode("descr").Str(e.Description))
	if e.Disabled {
		n.Child(sexp.NewNode("disabled"))
	}
	return n
}

func deserializeLibTableEntry(n *sexp.Node) (LibTableEntry, error) {
	var e LibTableEntry
	if nm, ok := n.Find("name"); ok {
		v, err := argString(nm, 0)
		if err != nil {
			return e, err
		}
		e.Name = v
	}
	if t, ok := n.Find("type"); ok {
		v, _ := argString(t, 0)
		e.Kind = v
	}
	if u, ok := n.Find("uri"); ok {
		v, _ := argString(u, 0)
		e.URI = v
	}
	if o, ok := n.Find("options"); ok {
		v, _ := argString(o, 0)
		e.Options = v
	}
	if d, ok := n.Find("descr"); ok {
		v, _ := argString(d, 0)
		e.Description = v
	}
	if _, ok := n.Find("disabled"); ok {
		e.Disabled = true
	}
	return e, nil
}

// LibTable is the full contents of a `sym-lib-table` or `fp-lib-table`
// file, per spec.md §4.8 (maintaining the library table on import so a
// freshly converted part's library is visible to Kicad without the user
// manually editing the table).
type LibTable struct {
	Kind    string // "sym_lib_table" or "fp_lib_table"
	Entries []LibTableEntry
}

func (t LibTable) Serialize() *sexp.Node {
	n := sexp.NewNode(t.Kind)
	for _, e := range t.Entries {
		n.Child(e.Serialize())
	}
	return n
}

// DeserializeLibTable implements the deserialize(Node) -> R contract.
func DeserializeLibTable(n *sexp.Node) (LibTable, error) {
	t := LibTable{Kind: n.Name}
	for _, c := range n.FindAll("lib") {
		e, err := deserializeLibTableEntry(c)
		if err != nil {
			return t, err
		}
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

// HasLibrary reports whether t already contains an entry with the given
// name, so an importer can decide whether to append a new row.
func (t LibTable) HasLibrary(name string) bool {
	for _, e := range t.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// WithLibrary returns a copy of t with the given entry appended, or with an
// existing entry of the same name replaced — the upsert an --update import
// needs when a library's URI changes.
func (t LibTable) WithLibrary(e LibTableEntry) LibTable {
	out := t
	out.Entries = append([]LibTableEntry(nil), t.Entries...)
	for i, existing := range out.Entries {
		if existing.Name == e.Name {
			out.Entries[i] = e
			return out
		}
	}
	out.Entries = append(out.Entries, e)
	return out
}

package kicad

import "github.com/SparkyTD/jlcrs/sexp"

// symbolLibSameLine is the base same-line set shared by every kicad_symbol_lib
// record, per spec.md §4.3.
var symbolLibSameLine = sexp.NewSameLineSet(
	"version", "generator", "at", "font", "size", "justify", "width", "type",
	"in_bom", "on_board", "length", "extends", "unit_name", "pin_names",
	"offset", "start", "end", "thickness",
)

// footprintSameLine extends the base set with the footprint-specific
// identifiers spec.md §4.3 names.
var footprintSameLine = func() sexp.SameLineSet {
	m := sexp.NewSameLineSet(
		"version", "generator", "at", "font", "size", "justify", "width", "type",
		"in_bom", "on_board", "length", "extends", "unit_name", "pin_names",
		"offset", "start", "end", "thickness",
		"layer", "layers", "xyz", "mid", "angle", "drill",
		"roundrect_rratio", "net", "net_name", "hatch", "clearance",
		"thermal_gap", "thermal_bridge_width", "tracks", "vias", "pads",
		"copperpour", "footprints",
	)
	return m
}()

// SameLineSetFor returns the same-line policy for a top-level record kind
// (`kicad_symbol_lib`, `footprint`, `sym_lib_table`, `fp_lib_table`).
func SameLineSetFor(topLevelName string) sexp.SameLineSet {
	switch topLevelName {
	case "footprint", "fp_lib_table":
		return footprintSameLine
	default:
		return symbolLibSameLine
	}
}

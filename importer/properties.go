package importer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/SparkyTD/jlcrs/kicad"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename strips characters that are unsafe in a path component,
// mirroring the role the original importer gives sanitize_filename: no
// pack dependency covers this narrow a concern, so it stays stdlib (see
// DESIGN.md).
func sanitizeFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if cleaned == "" {
		return "part"
	}
	return cleaned
}

func addHiddenSymbolProperty(sym *kicad.Symbol, key, value string) {
	sym.Properties = append(sym.Properties, kicad.SymbolProperty{
		Key:     key,
		Value:   value,
		ID:      len(sym.Properties),
		Effects: kicad.DefaultTextEffect,
		Hide:    true,
	})
}

func addVisibleSymbolProperty(sym *kicad.Symbol, key, value string) {
	sym.Properties = append(sym.Properties, kicad.SymbolProperty{
		Key:     key,
		Value:   value,
		ID:      len(sym.Properties),
		Effects: kicad.DefaultTextEffect,
	})
}

func addHiddenFootprintProperty(fp *kicad.Footprint, key, value string) {
	fp.Properties = append(fp.Properties, kicad.FootprintProperty{
		Key:     key,
		Value:   value,
		Layer:   kicad.LayerFFab,
		Effects: kicad.DefaultTextEffect,
		Hide:    true,
	})
}

// symbolDesignator returns the reference-designator prefix carried by any
// part's attributes, if the decoded symbol names one. The decoded format
// has no dedicated designator field, so this falls back to "U" (the
// generic KiCad default) when none is found.
func symbolDesignator(doc *easyeda.SymbolDocument) string {
	for _, part := range doc.Parts {
		for _, a := range part.Attributes {
			if a.Key == "Designator" && a.Value != "" {
				return a.Value
			}
		}
	}
	return "U"
}

// modelPathFor builds the on-disk path of a downloaded STEP model beneath
// a library's .pretty directory.
func modelPathFor(libraryRoot, libraryName, safePartName string) string {
	return filepath.Join(libraryRoot, libraryName+".pretty", "models", safePartName+".step")
}

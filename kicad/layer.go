package kicad

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PcbLayer is a closed enumeration of every Kicad copper/technical layer
// name, per spec.md §3.
type PcbLayer string

const (
	LayerFCu PcbLayer = "F.Cu"
	LayerBCu PcbLayer = "B.Cu"

	LayerBAdhes PcbLayer = "B.Adhes"
	LayerFAdhes PcbLayer = "F.Adhes"
	LayerBPaste PcbLayer = "B.Paste"
	LayerFPaste PcbLayer = "F.Paste"
	LayerBSilkS PcbLayer = "B.SilkS"
	LayerFSilkS PcbLayer = "F.SilkS"
	LayerBMask  PcbLayer = "B.Mask"
	LayerFMask  PcbLayer = "F.Mask"

	LayerDwgsUser PcbLayer = "Dwgs.User"
	LayerCmtsUser PcbLayer = "Cmts.User"
	LayerEco1User PcbLayer = "Eco1.User"
	LayerEco2User PcbLayer = "Eco2.User"
	LayerEdgeCuts PcbLayer = "Edge.Cuts"
	LayerFCrtYd   PcbLayer = "F.CrtYd"
	LayerBCrtYd   PcbLayer = "B.CrtYd"
	LayerFFab     PcbLayer = "F.Fab"
	LayerBFab     PcbLayer = "B.Fab"
)

// InnerLayer returns the In<n>.Cu layer name for n in [1, 30].
func InnerLayer(n int) (PcbLayer, error) {
	if n < 1 || n > 30 {
		return "", fmt.Errorf("kicad: inner layer number %d out of range [1,30]", n)
	}
	return PcbLayer(fmt.Sprintf("In%d.Cu", n)), nil
}

// UserLayer returns the User.<n> layer name for n in [1, 9].
func UserLayer(n int) (PcbLayer, error) {
	if n < 1 || n > 9 {
		return "", fmt.Errorf("kicad: user layer number %d out of range [1,9]", n)
	}
	return PcbLayer(fmt.Sprintf("User.%d", n)), nil
}

var userLayerSuffixes = []string{
	"Cu", "Adhes", "Paste", "SilkS", "Mask", "CrtYd", "Fab",
}

// ParseLayer validates a single layer token against the alphabet of
// spec.md §3, returning an error if it is not one of the recognized exact
// textual forms.
func ParseLayer(s string) (PcbLayer, error) {
	switch s {
	case string(LayerFCu), string(LayerBCu),
		string(LayerBAdhes), string(LayerFAdhes), string(LayerBPaste), string(LayerFPaste),
		string(LayerBSilkS), string(LayerFSilkS), string(LayerBMask), string(LayerFMask),
		string(LayerDwgsUser), string(LayerCmtsUser), string(LayerEco1User), string(LayerEco2User),
		string(LayerEdgeCuts), string(LayerFCrtYd), string(LayerBCrtYd), string(LayerFFab), string(LayerBFab):
		return PcbLayer(s), nil
	}
	if strings.HasPrefix(s, "In") && strings.HasSuffix(s, ".Cu") {
		numStr := strings.TrimSuffix(strings.TrimPrefix(s, "In"), ".Cu")
		if n, err := strconv.Atoi(numStr); err == nil && n >= 1 && n <= 30 {
			return PcbLayer(s), nil
		}
	}
	if strings.HasPrefix(s, "User.") {
		numStr := strings.TrimPrefix(s, "User.")
		if n, err := strconv.Atoi(numStr); err == nil && n >= 1 && n <= 9 {
			return PcbLayer(s), nil
		}
	}
	return "", fmt.Errorf("kicad: %w: %q", ErrInvalidLayer, s)
}

func allInnerLayers() []PcbLayer {
	out := make([]PcbLayer, 0, 30)
	for i := 1; i <= 30; i++ {
		l, _ := InnerLayer(i)
		out = append(out, l)
	}
	return out
}

// AllCopperLayers returns F.Cu, In1.Cu..In30.Cu, B.Cu in board order.
func AllCopperLayers() []PcbLayer {
	out := []PcbLayer{LayerFCu}
	out = append(out, allInnerLayers()...)
	out = append(out, LayerBCu)
	return out
}

// SerializeLayerList renders a set of layers following the `*.suffix`
// compaction rule of spec.md §4.4: for each suffix present on both `F.` and
// `B.` sides (and, for `Cu`, on the complete In1..In30 run too), a single
// compacted `*.suffix` token is emitted in place of the individual layer
// names.
func SerializeLayerList(layers []PcbLayer) []string {
	set := make(map[PcbLayer]bool, len(layers))
	order := make([]PcbLayer, 0, len(layers))
	for _, l := range layers {
		if !set[l] {
			set[l] = true
			order = append(order, l)
		}
	}

	compactable := map[string]bool{}
	for _, suffix := range userLayerSuffixes {
		f := PcbLayer("F." + suffix)
		b := PcbLayer("B." + suffix)
		if !set[f] || !set[b] {
			continue
		}
		if suffix == "Cu" {
			full := true
			for _, inner := range allInnerLayers() {
				if !set[inner] {
					full = false
					break
				}
			}
			if !full {
				continue
			}
		}
		compactable[suffix] = true
	}

	var out []string
	emitted := map[PcbLayer]bool{}
	for _, l := range order {
		if emitted[l] {
			continue
		}
		suffix, side := splitLayerSuffix(l)
		if side != "" && compactable[suffix] {
			out = append(out, "*."+suffix)
			emitted[PcbLayer("F."+suffix)] = true
			emitted[PcbLayer("B."+suffix)] = true
			if suffix == "Cu" {
				for _, inner := range allInnerLayers() {
					emitted[inner] = true
				}
			}
			continue
		}
		out = append(out, string(l))
		emitted[l] = true
	}
	return out
}

// splitLayerSuffix returns (suffix, "F"|"B") for front/back layers that
// participate in compaction, ("Cu", "In") for inner copper layers, or
// ("", "") for layers that never compact (Edge.Cuts, the *.User drawing
// layers, User.1-9).
func splitLayerSuffix(l PcbLayer) (suffix, side string) {
	s := string(l)
	switch {
	case strings.HasPrefix(s, "F."):
		suf := strings.TrimPrefix(s, "F.")
		if isCompactableSuffix(suf) {
			return suf, "F"
		}
	case strings.HasPrefix(s, "B."):
		suf := strings.TrimPrefix(s, "B.")
		if isCompactableSuffix(suf) {
			return suf, "B"
		}
	case strings.HasPrefix(s, "In") && strings.HasSuffix(s, ".Cu"):
		return "Cu", "In"
	}
	return "", ""
}

func isCompactableSuffix(suf string) bool {
	for _, s := range userLayerSuffixes {
		if s == suf {
			return true
		}
	}
	return false
}

// ParseLayerList is the inverse of SerializeLayerList: it accepts compacted
// `*.suffix` tokens, the extended `F&B.suffix` form, and explicit layer
// names, per spec.md §4.4.
func ParseLayerList(tokens []string) ([]PcbLayer, error) {
	var out []PcbLayer
	seen := map[PcbLayer]bool{}
	add := func(l PcbLayer) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "*."):
			suffix := strings.TrimPrefix(tok, "*.")
			add(PcbLayer("F." + suffix))
			add(PcbLayer("B." + suffix))
			if suffix == "Cu" {
				for _, inner := range allInnerLayers() {
					add(inner)
				}
			}
		case strings.HasPrefix(tok, "F&B."):
			suffix := strings.TrimPrefix(tok, "F&B.")
			add(PcbLayer("F." + suffix))
			add(PcbLayer("B." + suffix))
		default:
			l, err := ParseLayer(tok)
			if err != nil {
				return nil, err
			}
			add(l)
		}
	}
	return out, nil
}

// SortLayers orders layers the way Kicad conventionally does: F.Cu,
// In1..In30.Cu, B.Cu, then the remaining technical layers alphabetically.
// Not required by any invariant, but keeps output deterministic.
func SortLayers(layers []PcbLayer) []PcbLayer {
	out := append([]PcbLayer(nil), layers...)
	rank := func(l PcbLayer) int {
		for i, c := range AllCopperLayers() {
			if c == l {
				return i
			}
		}
		return 1000
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

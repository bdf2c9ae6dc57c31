package kicad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SparkyTD/jlcrs/sexp"
)

func TestParseColorHexForms(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#f00", Color{R: 0xff, G: 0, B: 0, A: 0xff}},
		{"#f00f", Color{R: 0xff, G: 0, B: 0, A: 0xff}},
		{"112233", Color{R: 0x11, G: 0x22, B: 0x33, A: 0xff}},
		{"#11223344", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}
	for _, tc := range cases {
		got, err := ParseColorHex(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestColorToHexRoundTrip(t *testing.T) {
	c, err := ParseColorHex("#a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4", c.ToHex())

	c2, err := ParseColorHex(c.ToHex())
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}

func TestParseColorHexRejectsBadLength(t *testing.T) {
	_, err := ParseColorHex("abcde")
	assert.Error(t, err)
}

func TestStrokeSerializeDeserialize(t *testing.T) {
	col := Color{R: 10, G: 20, B: 30, A: 255}
	s := StrokeDefinition{Width: 0.254, Dash: DashDashDot, Color: &col}

	n := s.Serialize()
	out, err := DeserializeStroke(n)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestStrokeDefaultDashOnEmpty(t *testing.T) {
	s := StrokeDefinition{Width: 0.1}
	n := s.Serialize()
	typeNode, ok := n.Find("type")
	require.True(t, ok)
	a, ok := typeNode.ArgAt(0)
	require.True(t, ok)
	assert.Equal(t, string(DashDefault), a.AsIdent())
}

func TestPositionWithAngleRoundTrip(t *testing.T) {
	angle := 90.0
	p := Position{X: 1.5, Y: -2.5, Angle: &angle}
	at := sexp.NewNode("at")
	p.argsInto(at)

	out, err := parsePositionArgs(at)
	require.NoError(t, err)
	assert.Equal(t, p.X, out.X)
	assert.Equal(t, p.Y, out.Y)
	require.NotNil(t, out.Angle)
	assert.Equal(t, *p.Angle, *out.Angle)
}

func TestPositionWithoutAngle(t *testing.T) {
	p := Position{X: 1, Y: 2}
	at := sexp.NewNode("at")
	p.argsInto(at)

	out, err := parsePositionArgs(at)
	require.NoError(t, err)
	assert.Nil(t, out.Angle)
}

func TestFontSerializeDeserialize(t *testing.T) {
	thickness := 0.15
	f := Font{Size: FontSize{W: 1.27, H: 1.27}, Thickness: &thickness, Bold: true}
	n := f.Serialize()
	out, err := DeserializeFont(n)
	require.NoError(t, err)
	assert.Equal(t, f.Size, out.Size)
	assert.True(t, out.Bold)
	require.NotNil(t, out.Thickness)
	assert.Equal(t, thickness, *out.Thickness)
}

func TestTextJustifyIsZero(t *testing.T) {
	assert.True(t, TextJustify{}.IsZero())
	assert.False(t, TextJustify{H: HAlignLeft}.IsZero())
}

func TestTextEffectSerializeDeserialize(t *testing.T) {
	e := TextEffect{
		Font:    Font{Size: FontSize{W: 1, H: 1}},
		Justify: TextJustify{H: HAlignRight, V: VAlignTop, Mirror: true},
		Hide:    true,
	}
	n := e.Serialize()
	out, err := DeserializeEffects(n)
	require.NoError(t, err)
	assert.Equal(t, e.Justify, out.Justify)
	assert.True(t, out.Hide)
}

func TestBoolYesNoRoundTrip(t *testing.T) {
	assert.Equal(t, "yes", boolYesNo(true))
	assert.Equal(t, "no", boolYesNo(false))
	assert.True(t, parseYesNo("yes"))
	assert.True(t, parseYesNo("true"))
	assert.True(t, parseYesNo("solid"))
	assert.False(t, parseYesNo("no"))
}

func TestPrintThenParseSymbolLib(t *testing.T) {
	lib := SymbolLib{
		Version:   20211014,
		Generator: "jlcrs",
		Symbols: []Symbol{{
			ID:      "R",
			InBOM:   true,
			OnBoard: true,
			Properties: []SymbolProperty{
				{Key: "Reference", Value: "R", ID: 0, Effects: DefaultTextEffect},
			},
		}},
	}
	printed := sexp.Print(lib.Serialize().Tokens(), SameLineSetFor("kicad_symbol_lib"))
	require.True(t, strings.Contains(printed, "kicad_symbol_lib"))

	node, err := sexp.Parse(strings.NewReader(printed))
	require.NoError(t, err)

	lib2, err := DeserializeSymbolLib(node)
	require.NoError(t, err)
	assert.Equal(t, lib.Version, lib2.Version)
	assert.Equal(t, lib.Generator, lib2.Generator)
	require.Len(t, lib2.Symbols, 1)
	assert.Equal(t, "R", lib2.Symbols[0].ID)
}

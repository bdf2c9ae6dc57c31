package kicad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SparkyTD/jlcrs/sexp"
)

func TestSymbolPinSerializeDeserialize(t *testing.T) {
	name := "A0"
	number := "1"
	p := SymbolPin{
		ElectricalType: PinInput,
		GraphicStyle:   PinLine,
		Position:       Position{X: 0, Y: 2.54},
		Length:         2.54,
		Name:           &name,
		NameEffects:    DefaultTextEffect,
		Number:         &number,
		NumberEffects:  DefaultTextEffect,
	}
	n := p.Serialize()
	out, err := DeserializeSymbolPin(n)
	require.NoError(t, err)
	assert.Equal(t, p.ElectricalType, out.ElectricalType)
	assert.Equal(t, p.GraphicStyle, out.GraphicStyle)
	assert.Equal(t, p.Position, out.Position)
	assert.Equal(t, p.Length, out.Length)
	require.NotNil(t, out.Name)
	assert.Equal(t, *p.Name, *out.Name)
	require.NotNil(t, out.Number)
	assert.Equal(t, *p.Number, *out.Number)
}

func TestSymbolWithUnitsRoundTrip(t *testing.T) {
	unit1 := Symbol{ID: "U_0_1", Pins: []SymbolPin{{
		ElectricalType: PinPassive,
		GraphicStyle:   PinLine,
		Position:       Position{X: 0, Y: 0},
		Length:         2.54,
	}}}
	unit2 := Symbol{ID: "U_0_2", Pins: []SymbolPin{{
		ElectricalType: PinPassive,
		GraphicStyle:   PinLine,
		Position:       Position{X: 0, Y: -2.54},
		Length:         2.54,
	}}}
	sym := Symbol{
		ID:      "U",
		InBOM:   true,
		OnBoard: true,
		Units:   []Symbol{unit1, unit2},
	}

	n := sym.Serialize()
	out, err := DeserializeSymbol(n)
	require.NoError(t, err)
	assert.Equal(t, "U", out.ID)
	require.Len(t, out.Units, 2)
	assert.Equal(t, "U_0_1", out.Units[0].ID)
	assert.Equal(t, "U_0_2", out.Units[1].ID)
	require.Len(t, out.Units[0].Pins, 1)
}

func TestSymbolArcCircleRectangleRoundTrip(t *testing.T) {
	sym := Symbol{
		ID: "Shape",
		Arcs: []SymbolArc{{
			Start: Position{X: 0, Y: 0}, Mid: Position{X: 1, Y: 1}, End: Position{X: 2, Y: 0},
			Stroke: StrokeDefinition{Width: 0.254}, Fill: FillNone,
		}},
		Circles: []SymbolCircle{{
			Center: Position{X: 0, Y: 0}, Radius: 1, Stroke: StrokeDefinition{Width: 0.254}, Fill: FillBackground,
		}},
		Rectangles: []SymbolRectangle{{
			Start: Position{X: -1, Y: -1}, End: Position{X: 1, Y: 1}, Stroke: StrokeDefinition{Width: 0.254}, Fill: FillOutline,
		}},
	}
	n := sym.Serialize()
	out, err := DeserializeSymbol(n)
	require.NoError(t, err)
	require.Len(t, out.Arcs, 1)
	require.Len(t, out.Circles, 1)
	require.Len(t, out.Rectangles, 1)
	assert.Equal(t, sym.Arcs[0].Start, out.Arcs[0].Start)
	assert.Equal(t, FillBackground, out.Circles[0].Fill)
	assert.Equal(t, FillOutline, out.Rectangles[0].Fill)
}

func TestSymbolRejectsUnknownNode(t *testing.T) {
	sym := Symbol{ID: "X"}
	n := sym.Serialize()
	n.Children = append(n.Children, *sexp.NewNode("totally_unknown_thing"))
	_, err := DeserializeSymbol(n)
	require.Error(t, err)
	var unk *UnknownNode
	assert.ErrorAs(t, err, &unk)
}

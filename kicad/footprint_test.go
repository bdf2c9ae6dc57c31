package kicad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SparkyTD/jlcrs/sexp"
)

func TestDrillDefinitionRoundRoundTrip(t *testing.T) {
	d := DrillDefinition{Shape: DrillRound, Width: 0.8}
	n := d.serialize()
	out, err := deserializeDrill(n)
	require.NoError(t, err)
	assert.Equal(t, d, out)
}

func TestDrillDefinitionOvalRoundTrip(t *testing.T) {
	off := Position{X: 0.1, Y: -0.1}
	d := DrillDefinition{Shape: DrillOval, Width: 0.6, Height: 1.2, Offset: &off}
	n := d.serialize()
	out, err := deserializeDrill(n)
	require.NoError(t, err)
	assert.Equal(t, d.Shape, out.Shape)
	assert.Equal(t, d.Width, out.Width)
	assert.Equal(t, d.Height, out.Height)
	require.NotNil(t, out.Offset)
	assert.Equal(t, *d.Offset, *out.Offset)
}

func TestFootprintPadSerializeDeserialize(t *testing.T) {
	drill := DrillDefinition{Shape: DrillRound, Width: 0.8}
	ratio := 0.25
	pad := FootprintPad{
		Name:            "1",
		Kind:            PadThruHole,
		Shape:           PadRoundRect,
		Position:        Position{X: 1, Y: 2},
		SizeW:           1.7,
		SizeH:           1.7,
		Drill:           &drill,
		Layers:          []PcbLayer{LayerFCu, LayerBCu, LayerFMask, LayerBMask},
		RoundRectRRatio: &ratio,
		NetIndex:        3,
		NetName:         "GND",
	}
	n := pad.Serialize()
	out, err := DeserializeFootprintPad(n)
	require.NoError(t, err)
	assert.Equal(t, pad.Name, out.Name)
	assert.Equal(t, pad.Kind, out.Kind)
	assert.Equal(t, pad.Shape, out.Shape)
	assert.Equal(t, pad.Position, out.Position)
	require.NotNil(t, out.Drill)
	assert.Equal(t, drill, *out.Drill)
	assert.ElementsMatch(t, pad.Layers, out.Layers)
	require.NotNil(t, out.RoundRectRRatio)
	assert.Equal(t, ratio, *out.RoundRectRRatio)
	assert.Equal(t, pad.NetIndex, out.NetIndex)
	assert.Equal(t, pad.NetName, out.NetName)
}

func TestFootprintRoundTrip(t *testing.T) {
	fp := Footprint{
		Name:      "R_0402",
		Layer:     LayerFCu,
		Descr:     "a resistor",
		Tags:      "resistor smd",
		Attribute: "smd",
		Properties: []FootprintProperty{
			{Key: "Reference", Value: "R1", Layer: LayerFSilkS, Effects: DefaultTextEffect},
		},
		Pads: []FootprintPad{{
			Name:     "1",
			Kind:     PadSMD,
			Shape:    PadRect,
			Position: Position{X: -0.5, Y: 0},
			SizeW:    0.6,
			SizeH:    0.6,
			Layers:   []PcbLayer{LayerFCu, LayerFPaste, LayerFMask},
		}},
		Lines: []FootprintLine{{
			Start: Position{X: 0, Y: 0}, End: Position{X: 1, Y: 1},
			Stroke: StrokeDefinition{Width: 0.1}, Layer: LayerFSilkS,
		}},
	}
	n := fp.Serialize()
	out, err := DeserializeFootprint(n)
	require.NoError(t, err)
	assert.Equal(t, fp.Name, out.Name)
	assert.Equal(t, fp.Layer, out.Layer)
	assert.Equal(t, fp.Descr, out.Descr)
	assert.Equal(t, fp.Attribute, out.Attribute)
	require.Len(t, out.Properties, 1)
	assert.Equal(t, "Reference", out.Properties[0].Key)
	require.Len(t, out.Pads, 1)
	assert.Equal(t, "1", out.Pads[0].Name)
	require.Len(t, out.Lines, 1)
}

func TestFootprintToleratesOpaqueNodes(t *testing.T) {
	fp := Footprint{Name: "X", Layer: LayerFCu}
	n := fp.Serialize()
	n.Child(nil) // no-op, exercises Child's nil guard
	n.Children = append(n.Children, *sexp.NewNode("teardrop"))
	_, err := DeserializeFootprint(n)
	require.NoError(t, err)
}

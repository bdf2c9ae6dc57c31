package easyeda

import "encoding/json"

// parseSymbolHead decodes the HEAD record's inline JSON object, keyed
// symbolType/originX/originY/version per symbol.rs's Head.
func parseSymbolHead(raw json.RawMessage) (SymbolHead, error) {
	var obj struct {
		SymbolType int     `json:"symbolType"`
		OriginX    float64 `json:"originX"`
		OriginY    float64 `json:"originY"`
		Version    string  `json:"version"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return SymbolHead{}, &FieldTypeError{Tag: "HEAD", Field: "parameters"}
	}
	return SymbolHead{
		SymbolType: obj.SymbolType,
		OriginX:    obj.OriginX,
		OriginY:    obj.OriginY,
		Version:    obj.Version,
	}, nil
}

// parsePart decodes a PART line's bounding-box object, keyed "BBOX" with a
// four-element [x, y, end_x, end_y] array, per symbol.rs's Part.
func parsePart(id string, raw json.RawMessage) (*Part, error) {
	var obj struct {
		BBox []float64 `json:"BBOX"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj.BBox) != 4 {
		return nil, &FieldTypeError{Tag: "PART", Field: "bbox"}
	}
	return &Part{
		ID:       id,
		BBoxX:    obj.BBox[0],
		BBoxY:    obj.BBox[1],
		BBoxEndX: obj.BBox[2],
		BBoxEndY: obj.BBox[3],
	}, nil
}

func parseSymbolAttr(cur *arrayReader) (SymbolAttribute, error) {
	a := SymbolAttribute{}
	id, err := cur.requireString("id")
	if err != nil {
		return a, err
	}
	a.ID = id
	a.ParentID, _ = cur.readOptionalString()
	key, err := cur.requireString("key")
	if err != nil {
		return a, err
	}
	a.Key = key
	a.Value = cur.optionalString()
	keyVisible, err := cur.requireBool("key_visible")
	if err != nil {
		return a, err
	}
	a.KeyVisible = keyVisible
	valueVisible, err := cur.requireBool("value_visible")
	if err != nil {
		return a, err
	}
	a.ValueVisible = valueVisible
	a.X = cur.optionalFloat()
	a.Y = cur.optionalFloat()
	a.Rotation = cur.optionalFloat()
	a.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		a.Locked = *b
	}
	return a, nil
}

func parseRectangle(cur *arrayReader) (*Rectangle, error) {
	r := &Rectangle{}
	var err error
	if r.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if r.X, err = cur.requireFloat("x"); err != nil {
		return nil, err
	}
	if r.Y, err = cur.requireFloat("y"); err != nil {
		return nil, err
	}
	if r.EndX, err = cur.requireFloat("end_x"); err != nil {
		return nil, err
	}
	if r.EndY, err = cur.requireFloat("end_y"); err != nil {
		return nil, err
	}
	if f := cur.optionalFloat(); f != nil {
		r.RX = *f
	}
	if f := cur.optionalFloat(); f != nil {
		r.RY = *f
	}
	if f := cur.optionalFloat(); f != nil {
		r.Rotation = *f
	}
	r.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		r.Locked = *b
	}
	return r, nil
}

func parseCircle(cur *arrayReader) (*Circle, error) {
	c := &Circle{}
	var err error
	if c.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if c.CX, err = cur.requireFloat("cx"); err != nil {
		return nil, err
	}
	if c.CY, err = cur.requireFloat("cy"); err != nil {
		return nil, err
	}
	if c.R, err = cur.requireFloat("r"); err != nil {
		return nil, err
	}
	c.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		c.Locked = *b
	}
	return c, nil
}

func parseEllipse(cur *arrayReader) (*Ellipse, error) {
	e := &Ellipse{}
	var err error
	if e.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if e.CX, err = cur.requireFloat("cx"); err != nil {
		return nil, err
	}
	if e.CY, err = cur.requireFloat("cy"); err != nil {
		return nil, err
	}
	if e.RX, err = cur.requireFloat("rx"); err != nil {
		return nil, err
	}
	if e.RY, err = cur.requireFloat("ry"); err != nil {
		return nil, err
	}
	e.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		e.Locked = *b
	}
	return e, nil
}

func decodePointList(tag string, raw json.RawMessage) ([]Point2D, error) {
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, &FieldTypeError{Tag: tag, Field: "points"}
	}
	if len(flat)%2 != 0 {
		return nil, &FieldTypeError{Tag: tag, Field: "points"}
	}
	pts := make([]Point2D, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		pts = append(pts, Point2D{X: flat[i], Y: flat[i+1]})
	}
	return pts, nil
}

func parsePolyLine(tag string, cur *arrayReader) (*PolyLine, error) {
	pl := &PolyLine{}
	var err error
	if pl.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	raw, err := cur.requireValue("points")
	if err != nil {
		return nil, err
	}
	if pl.Points, err = decodePointList(tag, raw); err != nil {
		return nil, err
	}
	closed, err := cur.requireBool("is_closed")
	if err != nil {
		return nil, err
	}
	pl.Closed = closed
	pl.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		pl.Locked = *b
	}
	return pl, nil
}

func parseArc(cur *arrayReader) (*Arc, error) {
	a := &Arc{}
	var err error
	if a.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if a.X1, err = cur.requireFloat("x1"); err != nil {
		return nil, err
	}
	if a.Y1, err = cur.requireFloat("y1"); err != nil {
		return nil, err
	}
	if a.X2, err = cur.requireFloat("x2"); err != nil {
		return nil, err
	}
	if a.Y2, err = cur.requireFloat("y2"); err != nil {
		return nil, err
	}
	if a.X3, err = cur.requireFloat("x3"); err != nil {
		return nil, err
	}
	if a.Y3, err = cur.requireFloat("y3"); err != nil {
		return nil, err
	}
	a.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		a.Locked = *b
	}
	return a, nil
}

func parseBezier(tag string, cur *arrayReader) (*Bezier, error) {
	bz := &Bezier{}
	var err error
	if bz.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	raw, err := cur.requireValue("points")
	if err != nil {
		return nil, err
	}
	if bz.Points, err = decodePointList(tag, raw); err != nil {
		return nil, err
	}
	closed, err := cur.requireBool("is_closed")
	if err != nil {
		return nil, err
	}
	bz.Closed = closed
	bz.StyleID = cur.optionalString()
	if b := cur.optionalBool(); b != nil {
		bz.Locked = *b
	}
	return bz, nil
}

func parseSymbolText(cur *arrayReader) (*Text, error) {
	t := &Text{}
	var err error
	if t.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if t.X, err = cur.requireFloat("x"); err != nil {
		return nil, err
	}
	if t.Y, err = cur.requireFloat("y"); err != nil {
		return nil, err
	}
	if f := cur.optionalFloat(); f != nil {
		t.Rotation = *f
	}
	value, err := cur.requireString("value")
	if err != nil {
		return nil, err
	}
	t.Value = value
	t.FontFamily = cur.optionalString()
	if f := cur.optionalFloat(); f != nil {
		t.FontSize = *f
	}
	if b := cur.optionalBool(); b != nil {
		t.Bold = *b
	}
	if b := cur.optionalBool(); b != nil {
		t.Italic = *b
	}
	return t, nil
}

func parsePin(cur *arrayReader) (*Pin, error) {
	p := &Pin{}
	var err error
	if p.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	display, err := cur.requireBool("display")
	if err != nil {
		return nil, err
	}
	p.Display = display
	p.Electric = cur.optionalBool()
	if p.X, err = cur.requireFloat("x"); err != nil {
		return nil, err
	}
	if p.Y, err = cur.requireFloat("y"); err != nil {
		return nil, err
	}
	if p.Length, err = cur.requireFloat("length"); err != nil {
		return nil, err
	}
	if f := cur.optionalFloat(); f != nil {
		p.Rotation = *f
	}
	p.PinColor = cur.optionalString()
	if n, ok := cur.readInt(); ok {
		p.PinShape = n
	}
	if b := cur.optionalBool(); b != nil {
		p.Locked = *b
	}
	return p, nil
}

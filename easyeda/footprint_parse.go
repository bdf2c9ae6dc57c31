package easyeda

import "encoding/json"

func parseFootprintHead(raw json.RawMessage) (FootprintHead, error) {
	var obj struct {
		EditorVersion string `json:"editorVersion"`
		ImportFlag    int    `json:"importFlag"`
		UUID          string `json:"uuid"`
		Source        string `json:"source"`
		Title         string `json:"title"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return FootprintHead{}, &FieldTypeError{Tag: "HEAD", Field: "parameters"}
	}
	return FootprintHead{
		EditorVersion: obj.EditorVersion,
		ImportFlag:    obj.ImportFlag,
		UUID:          obj.UUID,
		Source:        obj.Source,
		Title:         obj.Title,
	}, nil
}

func parseCanvas(cur *arrayReader) (Canvas, error) {
	c := Canvas{}
	var err error
	if c.OriginX, err = cur.requireFloat("origin_x"); err != nil {
		return c, err
	}
	if c.OriginY, err = cur.requireFloat("origin_y"); err != nil {
		return c, err
	}
	if c.Unit, err = cur.requireString("unit"); err != nil {
		return c, err
	}
	if c.GridSizeX, err = cur.requireFloat("grid_size_x"); err != nil {
		return c, err
	}
	if c.GridSizeY, err = cur.requireFloat("grid_size_y"); err != nil {
		return c, err
	}
	if c.SnapSizeX, err = cur.requireFloat("snap_size_x"); err != nil {
		return c, err
	}
	if c.SnapSizeY, err = cur.requireFloat("snap_size_y"); err != nil {
		return c, err
	}
	if cur.canRead() {
		c.AltSnapSizeX = cur.optionalFloat()
	}
	if cur.canRead() {
		c.AltSnapSizeY = cur.optionalFloat()
	}
	if cur.canRead() {
		c.GridType = cur.optionalString()
	}
	if cur.canRead() {
		c.MultiGridType = cur.optionalString()
	}
	if cur.canRead() {
		c.MultiGridRatio = cur.optionalFloat()
	}
	return c, nil
}

func parseLayer(cur *arrayReader) (*Layer, error) {
	l := &Layer{}
	var err error
	if l.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	if l.LayerType, err = cur.requireString("layer_type"); err != nil {
		return nil, err
	}
	if l.Name, err = cur.requireString("name"); err != nil {
		return nil, err
	}
	if l.Status, err = cur.requireString("status"); err != nil {
		return nil, err
	}
	l.ActiveColor = cur.optionalString()
	if f := cur.optionalFloat(); f != nil {
		l.ActiveTransparency = *f
	}
	l.InactiveColor = cur.optionalString()
	if f := cur.optionalFloat(); f != nil {
		l.InactiveTransparency = *f
	}
	return l, nil
}

func parsePhysicalLayer(cur *arrayReader) (*PhysicalLayer, error) {
	pl := &PhysicalLayer{}
	var err error
	if pl.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	pl.Material = cur.optionalString()
	if pl.Thickness, err = cur.requireFloat("thickness"); err != nil {
		return nil, err
	}
	pl.Permittivity = cur.optionalFloat()
	pl.LossTangent = cur.optionalFloat()
	if b := cur.optionalBool(); b != nil {
		pl.IsKeepIsland = *b
	}
	return pl, nil
}

func parseFill(cur *arrayReader) (*Fill, error) {
	f := &Fill{}
	var err error
	if f.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	f.GroupID, _ = cur.readOptionalString()
	if f.Net, err = cur.requireString("net"); err != nil {
		return nil, err
	}
	if f.LayerID, err = cur.requireString("layer_id"); err != nil {
		return nil, err
	}
	if f.Width, err = cur.requireFloat("width"); err != nil {
		return nil, err
	}
	f.FillStyle = cur.optionalString()
	path, err := cur.requireValue("path")
	if err != nil {
		return nil, err
	}
	f.Path = path
	if b := cur.optionalBool(); b != nil {
		f.Locked = *b
	}
	return f, nil
}

func parsePoly(cur *arrayReader) (*Poly, error) {
	p := &Poly{}
	var err error
	if p.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	p.GroupID, _ = cur.readOptionalString()
	if p.Net, err = cur.requireString("net"); err != nil {
		return nil, err
	}
	if p.LayerID, err = cur.requireString("layer_id"); err != nil {
		return nil, err
	}
	if p.Width, err = cur.requireFloat("width"); err != nil {
		return nil, err
	}
	path, err := cur.requireValue("path")
	if err != nil {
		return nil, err
	}
	p.Path = path
	if b := cur.optionalBool(); b != nil {
		p.Locked = *b
	}
	return p, nil
}

func parsePad(cur *arrayReader) (*Pad, error) {
	p := &Pad{}
	var err error
	if p.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	p.GroupID, _ = cur.readOptionalString()
	if p.Net, err = cur.requireString("net"); err != nil {
		return nil, err
	}
	if p.LayerID, err = cur.requireString("layer_id"); err != nil {
		return nil, err
	}
	if p.Num, err = cur.requireString("num"); err != nil {
		return nil, err
	}
	if p.CenterX, err = cur.requireFloat("center_x"); err != nil {
		return nil, err
	}
	if p.CenterY, err = cur.requireFloat("center_y"); err != nil {
		return nil, err
	}
	if p.Rotation, err = cur.requireFloat("rotation"); err != nil {
		return nil, err
	}
	if p.Hole, err = cur.requireValue("hole"); err != nil {
		return nil, err
	}
	if p.Path, err = cur.requireValue("path"); err != nil {
		return nil, err
	}
	if p.SpecialPad, err = cur.requireValue("special_pad"); err != nil {
		return nil, err
	}
	if p.HoleOffsetX, err = cur.requireFloat("hole_offset_x"); err != nil {
		return nil, err
	}
	if p.HoleOffsetY, err = cur.requireFloat("hole_offset_y"); err != nil {
		return nil, err
	}
	p.HoleRotation = cur.optionalFloat()
	isPlated, err := cur.requireBool("is_plated")
	if err != nil {
		return nil, err
	}
	p.IsPlated = isPlated
	if p.PadType, err = cur.requireString("pad_type"); err != nil {
		return nil, err
	}
	p.TopSolderExpansion = cur.optionalFloat()
	p.BottomSolderExpansion = cur.optionalFloat()
	p.TopPasteExpansion = cur.optionalFloat()
	p.BottomPasteExpansion = cur.optionalFloat()
	if b := cur.optionalBool(); b != nil {
		p.Locked = *b
	}
	if cur.canRead() {
		if n, ok := cur.readInt(); ok {
			p.ConnectMode = &n
		}
	}
	if cur.canRead() {
		p.SpokeSpace = cur.optionalFloat()
	}
	if cur.canRead() {
		p.SpokeWidth = cur.optionalFloat()
	}
	if cur.canRead() {
		p.SpokeAngle = cur.optionalFloat()
	}
	if cur.canRead() {
		p.UnusedInnerLayers, _ = cur.readValue()
	}
	return p, nil
}

func parseVia(cur *arrayReader) (*Via, error) {
	v := &Via{}
	var err error
	if v.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	v.GroupID, _ = cur.readOptionalString()
	if v.Net, err = cur.requireString("net"); err != nil {
		return nil, err
	}
	if v.CenterX, err = cur.requireFloat("center_x"); err != nil {
		return nil, err
	}
	if v.CenterY, err = cur.requireFloat("center_y"); err != nil {
		return nil, err
	}
	if v.Diameter, err = cur.requireFloat("diameter"); err != nil {
		return nil, err
	}
	if v.DrillDiameter, err = cur.requireFloat("drill_diameter"); err != nil {
		return nil, err
	}
	if b := cur.optionalBool(); b != nil {
		v.Locked = *b
	}
	return v, nil
}

func parseNet(cur *arrayReader) (Net, error) {
	n := Net{}
	var err error
	if n.Name, err = cur.requireString("name"); err != nil {
		return n, err
	}
	n.NetType = cur.optionalString()
	n.SpecialColor = cur.optionalString()
	n.HideRatline = cur.optionalBool()
	n.DifferentialName = cur.optionalString()
	if cur.canRead() {
		n.EqualLengthGroupName, _ = cur.readValue()
	}
	n.IsPositiveNet = cur.optionalBool()
	return n, nil
}

func parseRule(cur *arrayReader) (Rule, error) {
	r := Rule{}
	var err error
	if r.RuleType, err = cur.requireString("rule_type"); err != nil {
		return r, err
	}
	if r.Name, err = cur.requireString("name"); err != nil {
		return r, err
	}
	isDefault, err := cur.requireBool("is_default")
	if err != nil {
		return r, err
	}
	r.IsDefault = isDefault
	ctx, err := cur.requireValue("context")
	if err != nil {
		return r, err
	}
	r.Context = ctx
	return r, nil
}

func parsePrimitive(cur *arrayReader) (Primitive, error) {
	p := Primitive{}
	var err error
	if p.Name, err = cur.requireString("name"); err != nil {
		return p, err
	}
	display, err := cur.requireBool("display")
	if err != nil {
		return p, err
	}
	p.Display = display
	pick, err := cur.requireBool("pick")
	if err != nil {
		return p, err
	}
	p.Pick = pick
	return p, nil
}

func parseFootprintString(cur *arrayReader) (*FootprintString, error) {
	s := &FootprintString{}
	var err error
	if s.ID, err = cur.requireString("id"); err != nil {
		return nil, err
	}
	s.GroupID, _ = cur.readOptionalString()
	if s.LayerID, err = cur.requireString("layer_id"); err != nil {
		return nil, err
	}
	if s.PosX, err = cur.requireFloat("pos_x"); err != nil {
		return nil, err
	}
	if s.PosY, err = cur.requireFloat("pos_y"); err != nil {
		return nil, err
	}
	if s.Text, err = cur.requireString("text"); err != nil {
		return nil, err
	}
	s.FontFamily = cur.optionalString()
	if f := cur.optionalFloat(); f != nil {
		s.FontSize = *f
	}
	if f := cur.optionalFloat(); f != nil {
		s.StrokeWidth = *f
	}
	if b := cur.optionalBool(); b != nil {
		s.IsBold = *b
	}
	if b := cur.optionalBool(); b != nil {
		s.IsItalic = *b
	}
	if n, ok := cur.readInt(); ok {
		s.Origin = n
	}
	if f := cur.optionalFloat(); f != nil {
		s.Angle = *f
	}
	if b := cur.optionalBool(); b != nil {
		s.IsReverse = *b
	}
	if f := cur.optionalFloat(); f != nil {
		s.ReverseExpansion = *f
	}
	if b := cur.optionalBool(); b != nil {
		s.IsMirrored = *b
	}
	if b := cur.optionalBool(); b != nil {
		s.Locked = *b
	}
	return s, nil
}

func parseFootprintAttribute(cur *arrayReader) (FootprintAttribute, error) {
	a := FootprintAttribute{}
	var err error
	if a.ID, err = cur.requireString("id"); err != nil {
		return a, err
	}
	a.GroupID, _ = cur.readOptionalString()
	a.ParentID, _ = cur.readOptionalString()
	if a.LayerID, err = cur.requireString("layer_id"); err != nil {
		return a, err
	}
	a.X = cur.optionalFloat()
	a.Y = cur.optionalFloat()
	if a.Key, err = cur.requireString("key"); err != nil {
		return a, err
	}
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
	a.FontFamily = cur.optionalString()
	if f := cur.optionalFloat(); f != nil {
		a.FontSize = *f
	}
	if f := cur.optionalFloat(); f != nil {
		a.StrokeWidth = *f
	}
	if b := cur.optionalBool(); b != nil {
		a.IsBold = *b
	}
	if b := cur.optionalBool(); b != nil {
		a.IsItalic = *b
	}
	if n, ok := cur.readInt(); ok {
		a.Origin = n
	}
	if f := cur.optionalFloat(); f != nil {
		a.Angle = *f
	}
	if b := cur.optionalBool(); b != nil {
		a.IsReverse = *b
	}
	if f := cur.optionalFloat(); f != nil {
		a.ReverseExpansion = *f
	}
	if b := cur.optionalBool(); b != nil {
		a.IsMirrored = *b
	}
	if b := cur.optionalBool(); b != nil {
		a.Locked = *b
	}
	return a, nil
}

package importer

// NoopStepBoundingBox is a StepBoundingBox that always returns a zero
// bounding box. Real STEP-kernel geometry is explicitly out of scope; a
// 3D model is still downloaded and written when requested, it is simply
// never measured.
type NoopStepBoundingBox struct{}

func (NoopStepBoundingBox) Bounds(data []byte) (BoundingBox, error) {
	return BoundingBox{}, nil
}

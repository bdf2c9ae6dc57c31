// Package importer wires the easyeda/translate/kicad core into a runnable
// import pipeline: fetch a part from the catalog, translate its symbol and
// footprint, and merge the result into an on-disk KiCad project library.
package importer

import "context"

// HttpFetcher retrieves the bytes at url. Implementations are free to add
// their own timeout/retry policy; the core treats a non-nil error as fatal
// to the import.
type HttpFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Filesystem abstracts the on-disk operations Import needs, so the core can
// be exercised without touching a real disk.
type Filesystem interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	Mkdirs(path string) error
	Exists(path string) bool
}

// BoundingBox is the axis-aligned extent of a STEP model, in millimetres.
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// StepBoundingBox computes the bounding box of a STEP model's bytes. Real
// STEP-kernel geometry is out of scope; see NoopStepBoundingBox.
type StepBoundingBox interface {
	Bounds(data []byte) (BoundingBox, error)
}

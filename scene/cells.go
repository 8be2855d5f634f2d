package scene

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
)

var cellsDrift = ms2.Vec{X: 8, Y: 5} // pixels per second

// Cells partitions the region into jittered Voronoi cells, each colored by its
// identity hash, with dark borders and a glow around every site.
type Cells struct {
	cellSize float32
}

// NewCells returns the cell scene with cells of side cellSize pixels.
func NewCells(cellSize float32) *Cells {
	return &Cells{cellSize: cellSize}
}

// Shade implements [Scene].
func (c *Cells) Shade(p, size ms2.Vec, fc sdfpix.FrameContext) sdfpix.Color {
	t := fc.Elapsed
	q := ms2.Add(p, ms2.Scale(t, cellsDrift))
	f1, f2, cell := sdfpix.VoronoiEdge(q, c.cellSize)
	id := sdfpix.CellHash(cell)
	pulse := 0.75 + 0.25*math32.Sin(2*t+id*2*math32.Pi)
	base := sdfpix.HSV(id, 0.55, 0.85*pulse)
	border := sdfpix.SmoothStep(0, 3, f2-f1)
	glow := sdfpix.ExpFalloff(f1, 6/c.cellSize)
	col := ms3.Add(ms3.Scale(border, base), ms3.Scale(0.6*glow, ms3.Vec{X: 1, Y: 1, Z: 1}))
	return sdfpix.Opaque(col)
}

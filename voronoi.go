package sdfpix

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

const (
	// Sites are kept inside the inner 80% of their cell.
	siteMargin = 0.1
	siteSpan   = 0.8
)

var (
	// siteJitterOffset decorrelates the Y jitter hash from the X jitter hash.
	siteJitterOffset = ms2.Vec{X: 57, Y: 113}
	cellIDOffset     = ms2.Vec{X: 271.3, Y: 19.7}
)

// Cell is a square tile of an implicit partition of the plane, identified by
// integer tile coordinates. Its site and identity are recomputed from X and Y
// on every call; nothing is stored.
type Cell struct {
	X, Y int
}

// CellOf returns the cell of side cellSize containing p.
func CellOf(p ms2.Vec, cellSize float32) Cell {
	return Cell{
		X: int(math32.Floor(p.X / cellSize)),
		Y: int(math32.Floor(p.Y / cellSize)),
	}
}

func (c Cell) vec() ms2.Vec {
	return ms2.Vec{X: float32(c.X), Y: float32(c.Y)}
}

// CellJitter returns the cell's site jitter in [0,1)x[0,1), from two
// independent hash calls on the tile coordinates.
func CellJitter(c Cell) ms2.Vec {
	cv := c.vec()
	return ms2.Vec{
		X: Hash(cv),
		Y: Hash(ms2.Add(cv, siteJitterOffset)),
	}
}

// CellSite returns the jittered site point of c, which lies in the inner 80% of the cell.
func CellSite(c Cell, cellSize float32) ms2.Vec {
	j := CellJitter(c)
	return ms2.Vec{
		X: (float32(c.X) + siteMargin + siteSpan*j.X) * cellSize,
		Y: (float32(c.Y) + siteMargin + siteSpan*j.Y) * cellSize,
	}
}

// CellNominalCenter returns the center of c, where its site would lie without jitter.
func CellNominalCenter(c Cell, cellSize float32) ms2.Vec {
	return ms2.Vec{
		X: (float32(c.X) + 0.5) * cellSize,
		Y: (float32(c.Y) + 0.5) * cellSize,
	}
}

// CellHash returns the identity hash of c in [0,1).
func CellHash(c Cell) float32 {
	return Hash(ms2.Add(c.vec(), cellIDOffset))
}

// Voronoi returns the distance from p to the nearest cell site among the 3x3
// cells around p and the identity hash of that site's cell.
// On exactly equal distances the first scanned neighbor wins.
func Voronoi(p ms2.Vec, cellSize float32) (minDist, cellHash float32) {
	f1, _, winner := VoronoiEdge(p, cellSize)
	return f1, CellHash(winner)
}

// VoronoiEdge is like [Voronoi] but also returns the distance to the second
// nearest site, so that f2-f1 approaches zero at cell borders, and the winning cell.
// Neighbors are scanned row by row from the bottom-left.
func VoronoiEdge(p ms2.Vec, cellSize float32) (f1, f2 float32, winner Cell) {
	c := CellOf(p, cellSize)
	f1, f2 = largenum, largenum
	winner = c
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := Cell{X: c.X + dx, Y: c.Y + dy}
			d := Euclidean(p, CellSite(n, cellSize))
			if d < f1 {
				f2 = f1
				f1 = d
				winner = n
			} else if d < f2 {
				f2 = d
			}
		}
	}
	return f1, f2, winner
}

package sdfpix_test

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
	"github.com/soypat/sdfpix/gleval"
)

func randVec(rng *rand.Rand, scale float32) ms2.Vec {
	return ms2.Vec{X: scale * (2*rng.Float32() - 1), Y: scale * (2*rng.Float32() - 1)}
}

func randVec3(rng *rand.Rand, scale float32) ms3.Vec {
	return ms3.Vec{X: scale * (2*rng.Float32() - 1), Y: scale * (2*rng.Float32() - 1), Z: scale * (2*rng.Float32() - 1)}
}

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol*math32.Max(1, math32.Max(math32.Abs(a), math32.Abs(b)))
}

func TestMetrics(t *testing.T) {
	const tol = 1e-5
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a, b := randVec(rng, 100), randVec(rng, 100)
		euc := sdfpix.Euclidean(a, b)
		sq := sdfpix.SquaredEuclidean(a, b)
		man := sdfpix.Manhattan(a, b)
		cheb := sdfpix.Chebyshev(a, b)
		if euc != sdfpix.Euclidean(b, a) || man != sdfpix.Manhattan(b, a) || cheb != sdfpix.Chebyshev(b, a) || sq != sdfpix.SquaredEuclidean(b, a) {
			t.Fatalf("metric not commutative for %v %v", a, b)
		}
		if euc < 0 || man < 0 || cheb < 0 || sq < 0 {
			t.Fatalf("negative metric for %v %v", a, b)
		}
		if !near(euc*euc, sq, tol) {
			t.Errorf("euclidean^2 %v != squared %v", euc*euc, sq)
		}
		if cheb > euc*(1+tol) || euc > man*(1+tol) {
			t.Errorf("want chebyshev <= euclidean <= manhattan, got %v %v %v", cheb, euc, man)
		}
		if !near(sdfpix.Minkowski(a, b, 1), man, tol) || !near(sdfpix.Minkowski(a, b, 2), euc, tol) {
			t.Errorf("minkowski does not match manhattan/euclidean at p=1,2")
		}
		mk4 := sdfpix.Minkowski(a, b, 4)
		if mk4 > euc*(1+tol) || mk4 < cheb*(1-tol) {
			t.Errorf("minkowski p=4 %v outside [chebyshev, euclidean]", mk4)
		}
		if sdfpix.Euclidean(a, a) != 0 || sdfpix.Manhattan(a, a) != 0 || sdfpix.Chebyshev(a, a) != 0 {
			t.Fatal("nonzero self distance")
		}
	}
	for i := 0; i < 500; i++ {
		a, b := randVec3(rng, 100), randVec3(rng, 100)
		euc := sdfpix.Euclidean3(a, b)
		if !near(euc*euc, sdfpix.SquaredEuclidean3(a, b), tol) {
			t.Error("3D euclidean/squared mismatch")
		}
		if sdfpix.Chebyshev3(a, b) > euc*(1+tol) || euc > sdfpix.Manhattan3(a, b)*(1+tol) {
			t.Error("3D metric ordering violated")
		}
		if !near(sdfpix.Minkowski3(a, b, 2), euc, tol) || !near(sdfpix.Minkowski3(a, b, 1), sdfpix.Manhattan3(a, b), tol) {
			t.Error("3D minkowski mismatch")
		}
		if euc != sdfpix.Euclidean3(b, a) {
			t.Error("3D euclidean not commutative")
		}
	}
	// Known values.
	a, b := ms2.Vec{X: 1, Y: 2}, ms2.Vec{X: 4, Y: 6}
	if sdfpix.Euclidean(a, b) != 5 || sdfpix.Manhattan(a, b) != 7 || sdfpix.Chebyshev(a, b) != 4 || sdfpix.SquaredEuclidean(a, b) != 25 {
		t.Error("known metric values mismatch")
	}
}

func TestParseMetric(t *testing.T) {
	for _, m := range []sdfpix.Metric{sdfpix.MetricEuclidean, sdfpix.MetricSquaredEuclidean, sdfpix.MetricManhattan, sdfpix.MetricChebyshev, sdfpix.MetricMinkowski} {
		got, err := sdfpix.ParseMetric(strings.ToUpper(m.String()))
		if err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Errorf("parse %q got %s", m.String(), got)
		}
		text, err := m.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back sdfpix.Metric
		if err := back.UnmarshalText(text); err != nil || back != m {
			t.Errorf("text round trip of %s: %v %v", m, back, err)
		}
	}
	if _, err := sdfpix.ParseMetric("hamming"); err == nil {
		t.Error("expected error for unknown metric")
	}
	p := ms2.Vec{X: 3, Y: 4}
	if d := sdfpix.MetricEuclidean.Distance(ms2.Vec{}, p, 0); d != 5 {
		t.Errorf("Metric.Distance euclidean got %v", d)
	}
	if d := sdfpix.MetricMinkowski.Distance(ms2.Vec{}, p, 1); !near(d, 7, 1e-6) {
		t.Errorf("Metric.Distance minkowski p=1 got %v", d)
	}
}

func TestSDFOracle(t *testing.T) {
	const tol = 1e-4
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		center := randVec(rng, 10)
		radius := 0.1 + 5*rng.Float32()
		half := ms2.Vec{X: 0.1 + 4*rng.Float32(), Y: 0.1 + 4*rng.Float32()}
		circ, err := sdf.Circle2D(float64(radius))
		if err != nil {
			t.Fatal(err)
		}
		box := sdf.Box2D(v2.Vec{X: 2 * float64(half.X), Y: 2 * float64(half.Y)}, 0)
		for j := 0; j < 50; j++ {
			p := randVec(rng, 20)
			rel := ms2.Sub(p, center)
			q := v2.Vec{X: float64(rel.X), Y: float64(rel.Y)}
			want := float32(circ.Evaluate(q))
			got := sdfpix.SDFCircle(p, center, radius)
			if !near(got, want, tol) {
				t.Fatalf("circle(%v,%v) at %v: got %v, sdfx %v", center, radius, p, got, want)
			}
			want = float32(box.Evaluate(q))
			got = sdfpix.SDFRect(p, center, half)
			if !near(got, want, tol) {
				t.Fatalf("rect(%v,%v) at %v: got %v, sdfx %v", center, half, p, got, want)
			}
		}
	}
}

func TestSDFRectSigns(t *testing.T) {
	c, h := ms2.Vec{X: 1, Y: 1}, ms2.Vec{X: 2, Y: 1}
	for _, test := range []struct {
		p    ms2.Vec
		want float32
	}{
		{p: c, want: -1},                            // Center: nearest edge is 1 away.
		{p: ms2.Vec{X: 3, Y: 1}, want: 0},           // On right edge.
		{p: ms2.Vec{X: 5, Y: 1}, want: 2},           // Right of box.
		{p: ms2.Vec{X: 6, Y: 6}, want: 5},           // Past corner (3,2): sqrt(9+16).
		{p: ms2.Vec{X: 2.5, Y: 1.5}, want: -0.5},    // Inside, nearest top and right edges equally.
		{p: ms2.Vec{X: -1, Y: 1.25}, want: 0},       // On left edge.
		{p: ms2.Vec{X: 1, Y: -0.5}, want: 0.5},      // Below box.
		{p: ms2.Vec{X: 0.5, Y: 0.75}, want: -0.75},  // Inside, nearest to bottom edge.
		{p: ms2.Vec{X: -1.25, Y: 0.5}, want: 0.25},  // Left of box.
		{p: ms2.Vec{X: 2.75, Y: 1.0}, want: -0.25},  // Inside, nearest to right edge.
	} {
		got := sdfpix.SDFRect(test.p, c, h)
		if !near(got, test.want, 1e-6) {
			t.Errorf("SDFRect(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestDistancePointToSegment(t *testing.T) {
	a, b := ms2.Vec{X: 0, Y: 0}, ms2.Vec{X: 4, Y: 0}
	for _, test := range []struct {
		p    ms2.Vec
		want float32
	}{
		{p: ms2.Vec{X: 2, Y: 3}, want: 3},  // Projects inside.
		{p: ms2.Vec{X: -3, Y: 4}, want: 5}, // Clamped to start.
		{p: ms2.Vec{X: 7, Y: 4}, want: 5},  // Clamped to end.
		{p: ms2.Vec{X: 1, Y: 0}, want: 0},  // On segment.
	} {
		got := sdfpix.DistancePointToSegment(test.p, a, b)
		if !near(got, test.want, 1e-6) {
			t.Errorf("segment distance at %v = %v, want %v", test.p, got, test.want)
		}
		if got != sdfpix.DistancePointToSegment(test.p, b, a) {
			t.Errorf("segment distance depends on endpoint order at %v", test.p)
		}
	}
	// Degenerate segment resolves to point distance, never NaN.
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		p, s := randVec(rng, 10), randVec(rng, 10)
		got := sdfpix.DistancePointToSegment(p, s, s)
		if math32.IsNaN(got) || got != sdfpix.Euclidean(p, s) {
			t.Fatalf("degenerate segment at %v: got %v want %v", p, got, sdfpix.Euclidean(p, s))
		}
	}
	if got := sdfpix.DistancePointToSegment(a, a, a); got != 0 {
		t.Errorf("degenerate segment at its own point got %v", got)
	}
}

func TestCombinators(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		d1, d2 := 50*(2*rng.Float32()-1), 50*(2*rng.Float32()-1)
		if sdfpix.Union(d1, d2) != math32.Min(d1, d2) || sdfpix.Intersection(d1, d2) != math32.Max(d1, d2) {
			t.Fatal("hard combinators wrong")
		}
		k := 0.5 + 10*rng.Float32()
		su := sdfpix.SmoothUnion(d1, d2, k)
		if su > sdfpix.Union(d1, d2)+1e-5 {
			t.Fatalf("smooth union %v above hard union %v", su, sdfpix.Union(d1, d2))
		}
		if math32.Abs(d1-d2) >= k && su != sdfpix.Union(d1, d2) {
			t.Fatalf("smooth union distorts far apart distances: %v %v k=%v got %v", d1, d2, k, su)
		}
		// Maximum deviation from hard union is k/4 at the seam.
		if sdfpix.Union(d1, d2)-su > k/4+1e-5 {
			t.Fatalf("smooth union deviates more than k/4")
		}
		// Convergence as k -> 0.
		if small := sdfpix.SmoothUnion(d1, d2, 1e-4); math32.Abs(small-sdfpix.Union(d1, d2)) > 1e-4 {
			t.Fatalf("small k smooth union %v does not converge to %v", small, sdfpix.Union(d1, d2))
		}
	}
	if got := sdfpix.SmoothUnion(1, 1, 4); got != 0 {
		t.Errorf("smooth union at seam: got %v, want 1-4/4=0", got)
	}
	if got := sdfpix.Difference(-1, -2); got != 2 {
		t.Errorf("difference got %v", got)
	}
	if got := sdfpix.Xor(-1, -2); got != 1 {
		t.Errorf("xor inside both got %v", got)
	}
	if got := sdfpix.Xor(-1, 3); got != -1 {
		t.Errorf("xor inside one got %v", got)
	}
}

func TestUnionNOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ds := make([]float32, 7)
	for i := range ds {
		ds[i] = 20 * (2*rng.Float32() - 1)
	}
	want := sdfpix.UnionN(ds...)
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(ds), func(i, j int) { ds[i], ds[j] = ds[j], ds[i] })
		if got := sdfpix.UnionN(ds...); got != want {
			t.Fatalf("UnionN order dependent: %v != %v", got, want)
		}
	}
	if sdfpix.UnionN() < 1e19 {
		t.Error("empty union should be far outside")
	}
	// Smooth union folds left to right.
	a, b, c := float32(0), float32(1), float32(3)
	k := float32(4)
	want = sdfpix.SmoothUnion(sdfpix.SmoothUnion(a, b, k), c, k)
	if got := sdfpix.SmoothUnionN(k, a, b, c); got != want {
		t.Errorf("SmoothUnionN not a left fold: got %v want %v", got, want)
	}
}

func TestBuilderErrors(t *testing.T) {
	var bld sdfpix.Builder
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for negative radius by default")
			}
		}()
		bld.NewCircle(ms2.Vec{}, -1)
	}()
	bld.SetFlags(sdfpix.FlagNoDimensionPanic)
	bld.NewCircle(ms2.Vec{}, -1)
	bld.NewRect(ms2.Vec{}, ms2.Vec{X: 1, Y: -1})
	bld.NewSegment(ms2.Vec{X: float32(math.NaN())}, ms2.Vec{})
	bld.SmoothUnion2D(0, bld.NewCircle(ms2.Vec{}, 1), bld.NewCircle(ms2.Vec{X: 1}, 1))
	err := bld.Err()
	if err == nil {
		t.Fatal("expected accumulated errors")
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 4 {
		t.Errorf("expected 4 joined errors, got %v", err)
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("errors not cleared")
	}
	// Zero length segments are valid.
	bld.NewSegment(ms2.Vec{X: 1}, ms2.Vec{X: 1})
	if bld.Err() != nil {
		t.Error(bld.Err())
	}
}

func TestShapeEvaluate(t *testing.T) {
	var bld sdfpix.Builder
	circle := bld.NewCircle(ms2.Vec{X: 1}, 2)
	rect := bld.NewRect(ms2.Vec{X: -2, Y: 1}, ms2.Vec{X: 1, Y: 3})
	seg := bld.NewSegment(ms2.Vec{X: -3}, ms2.Vec{X: 3, Y: 2})
	dot := bld.NewSegment(ms2.Vec{X: 2, Y: 2}, ms2.Vec{X: 2, Y: 2})
	shapes := []sdfpix.Shape2D{
		circle, rect, seg, dot,
		bld.Union2D(circle, rect, seg),
		bld.Union2D(bld.Union2D(circle, dot), rect),
		bld.Intersection2D(circle, rect),
		bld.Difference2D(rect, circle),
		bld.SmoothUnion2D(1.5, circle, rect, seg),
	}
	rng := rand.New(rand.NewSource(6))
	pos := make([]ms2.Vec, 256)
	for i := range pos {
		pos[i] = randVec(rng, 8)
	}
	dist := make([]float32, len(pos))
	var vp gleval.VecPool
	for _, s := range shapes {
		if _, err := gleval.AssertSDF2(s); err != nil {
			t.Fatal(err)
		}
		single, err := gleval.Evaluate2(s, pos[0], &vp)
		if err != nil || !near(single, s.Distance(pos[0]), 1e-6) {
			t.Fatalf("%T single evaluation %v: %v", s, single, err)
		}
		err = s.Evaluate(pos, dist, &vp)
		if err != nil {
			t.Fatalf("%T: %v", s, err)
		}
		bb := s.Bounds()
		for i, p := range pos {
			want := s.Distance(p)
			if !near(dist[i], want, 1e-6) {
				t.Fatalf("%T batch distance %v != pointwise %v at %v", s, dist[i], want, p)
			}
			inBox := p.X >= bb.Min.X && p.Y >= bb.Min.Y && p.X <= bb.Max.X && p.Y <= bb.Max.Y
			if want < 0 && !inBox {
				t.Fatalf("%T inside point %v outside bounds %v", s, p, bb)
			}
		}
	}
	if err := vp.AssertAllReleased(); err != nil {
		t.Error(err)
	}
	if err := circle.Evaluate(pos, dist[:3], nil); err == nil {
		t.Error("expected length mismatch error")
	}
	if err := bld.Union2D(circle, rect).Evaluate(pos, dist, nil); err == nil {
		t.Error("expected error for missing VecPool")
	}
}

func TestHash(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var sum float64
	const n = 20000
	var buckets [10]int
	for i := 0; i < n; i++ {
		p := randVec(rng, 4000)
		h := sdfpix.Hash(p)
		if h < 0 || h >= 1 || math32.IsNaN(h) {
			t.Fatalf("Hash(%v) = %v out of [0,1)", p, h)
		}
		if h != sdfpix.Hash(p) {
			t.Fatalf("Hash(%v) not deterministic", p)
		}
		h3 := sdfpix.Hash3(randVec3(rng, 4000))
		if h3 < 0 || h3 >= 1 {
			t.Fatalf("Hash3 out of range: %v", h3)
		}
		sum += float64(h)
		buckets[int(h*10)]++
	}
	mean := sum / n
	if mean < 0.45 || mean > 0.55 {
		t.Errorf("hash mean %v not near 0.5", mean)
	}
	for i, c := range buckets {
		if c < n/10/2 || c > n/10*3/2 {
			t.Errorf("bucket %d has %d samples, hash badly distributed", i, c)
		}
	}
	// Integer lattice points, as used by cells, vary.
	if sdfpix.Hash(ms2.Vec{X: 1, Y: 2}) == sdfpix.Hash(ms2.Vec{X: 2, Y: 1}) {
		t.Error("hash symmetric in its arguments")
	}
}

func TestFract(t *testing.T) {
	for _, x := range []float32{0, 0.25, -0.25, 1, -1, 1e6 + 0.5, -1e-9, 12345.678} {
		f := sdfpix.Fract(x)
		if f < 0 || f >= 1 {
			t.Errorf("Fract(%v) = %v out of [0,1)", x, f)
		}
	}
	if got := sdfpix.Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25) = %v", got)
	}
}

func TestVoronoi(t *testing.T) {
	const cellSize = 40
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 3000; i++ {
		p := randVec(rng, 1000)
		f1, f2, winner := sdfpix.VoronoiEdge(p, cellSize)
		d, id := sdfpix.Voronoi(p, cellSize)
		if d != f1 || id != sdfpix.CellHash(winner) {
			t.Fatalf("Voronoi and VoronoiEdge disagree at %v", p)
		}
		if f2 < f1 {
			t.Fatalf("second nearest %v closer than nearest %v", f2, f1)
		}
		// Brute force over a 5x5 neighborhood: the 3x3 scan must find the true nearest site.
		c := sdfpix.CellOf(p, cellSize)
		best := float32(math.MaxFloat32)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				site := sdfpix.CellSite(sdfpix.Cell{X: c.X + dx, Y: c.Y + dy}, cellSize)
				best = math32.Min(best, sdfpix.Euclidean(p, site))
			}
		}
		if best < f1 {
			t.Fatalf("3x3 scan missed nearer site at %v: %v < %v", p, best, f1)
		}
		// Nearest site is no farther than the own cell's site.
		if own := sdfpix.Euclidean(p, sdfpix.CellSite(c, cellSize)); own < f1 {
			t.Fatalf("own site closer than reported nearest at %v", p)
		}
	}
}

func TestCellSite(t *testing.T) {
	const cellSize = 40
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			c := sdfpix.Cell{X: x, Y: y}
			site := sdfpix.CellSite(c, cellSize)
			if sdfpix.CellOf(site, cellSize) != c {
				t.Fatalf("site %v of cell %v lies in another cell", site, c)
			}
			// Site lies within the inner 80% of the cell.
			local := ms2.Sub(site, ms2.Vec{X: float32(x) * cellSize, Y: float32(y) * cellSize})
			lo, hi := float32(0.1*cellSize-1e-3), float32(0.9*cellSize+1e-3)
			if local.X < lo || local.X > hi || local.Y < lo || local.Y > hi {
				t.Fatalf("site %v of cell %v outside inner 80%%", site, c)
			}
			if site != sdfpix.CellSite(c, cellSize) {
				t.Fatal("cell site not deterministic")
			}
			id := sdfpix.CellHash(c)
			if id < 0 || id >= 1 {
				t.Fatalf("cell hash %v out of range", id)
			}
			center := sdfpix.CellNominalCenter(c, cellSize)
			if sdfpix.CellOf(center, cellSize) != c {
				t.Fatalf("nominal center %v outside cell %v", center, c)
			}
		}
	}
	if got := sdfpix.CellOf(ms2.Vec{X: -0.5, Y: 39.9}, cellSize); got != (sdfpix.Cell{X: -1, Y: 0}) {
		t.Errorf("CellOf floor rounding got %v", got)
	}
}

func TestEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 1000; i++ {
		d := 200 * rng.Float32()
		r := sdfpix.Ripple(d, 0.3, 1, 2, 0.01)
		if math32.Abs(r) > 2*math32.Exp(-d*0.01)+1e-6 {
			t.Fatalf("ripple %v exceeds attenuated amplitude at %v", r, d)
		}
		rings := sdfpix.Rings(d, 10, 0.2, 0.8)
		if rings < 0 || rings > 1 {
			t.Fatalf("rings out of range: %v", rings)
		}
		if sdfpix.Rings(d, 10, 0.2, 0.8) != sdfpix.Rings(d+10*3, 10, 0.2, 0.8) && math32.Abs(sdfpix.Rings(d, 10, 0.2, 0.8)-sdfpix.Rings(d+30, 10, 0.2, 0.8)) > 1e-3 {
			t.Fatalf("rings not periodic at %v", d)
		}
		g := sdfpix.RadialGradient(d, 20, 120)
		if g < 0 || g > 1 {
			t.Fatalf("gradient out of range: %v", g)
		}
		e := sdfpix.ExpFalloff(d, 0.05)
		if e <= 0 || e > 1 {
			t.Fatalf("falloff out of range: %v", e)
		}
	}
	if sdfpix.RadialGradient(10, 20, 120) != 0 || sdfpix.RadialGradient(200, 20, 120) != 1 || sdfpix.RadialGradient(70, 20, 120) != 0.5 {
		t.Error("radial gradient endpoints wrong")
	}
	if sdfpix.ExpFalloff(0, 3) != 1 {
		t.Error("falloff at zero distance should be 1")
	}
	if sdfpix.Step(0.5, 0.4) != 0 || sdfpix.Step(0.5, 0.5) != 1 {
		t.Error("step wrong")
	}
	if sdfpix.Mix(2, 4, 0.5) != 3 || sdfpix.Clamp(5, 0, 1) != 1 || sdfpix.SmoothStep(0, 1, 0.5) != 0.5 {
		t.Error("helpers wrong")
	}
}

func TestSmoothNoise(t *testing.T) {
	n1 := sdfpix.NewSmoothNoise(42)
	n2 := sdfpix.NewSmoothNoise(42)
	rng := rand.New(rand.NewSource(10))
	for i := 0; i < 500; i++ {
		p := randVec(rng, 50)
		tm := 10 * rng.Float32()
		v := n1.EvalAt(p, tm)
		if v != n2.EvalAt(p, tm) || n1.Eval(p) != n2.Eval(p) {
			t.Fatal("same seed gives different noise")
		}
		if v < -1 || v > 1 {
			t.Fatalf("noise %v out of [-1,1]", v)
		}
		fbm := n1.FBM(p, tm, 4, 0.5)
		if fbm < -1 || fbm > 1 {
			t.Fatalf("fbm %v out of [-1,1]", fbm)
		}
		// Small steps give small changes.
		if math32.Abs(n1.Eval(p)-n1.Eval(ms2.Add(p, ms2.Vec{X: 1e-3}))) > 0.05 {
			t.Fatalf("noise not smooth at %v", p)
		}
	}
	if d := sdfpix.Perturb(3, ms2.Vec{X: 1, Y: 2}, 0); d != 3 {
		t.Errorf("zero perturbation changed distance: %v", d)
	}
	if d := sdfpix.Perturb(3, ms2.Vec{X: 1, Y: 2}, 1); d < 2.5 || d >= 3.5 {
		t.Errorf("perturbation out of range: %v", d)
	}
}

func TestColor(t *testing.T) {
	nan := float32(math.NaN())
	for _, test := range []struct {
		c    sdfpix.Color
		want [4]uint8
	}{
		{c: sdfpix.Color{R: 1, G: 0.5, B: 0, A: 1}, want: [4]uint8{255, 128, 0, 255}},
		{c: sdfpix.Color{R: 2, G: -1, B: 0.5, A: 3}, want: [4]uint8{255, 0, 128, 255}},
		{c: sdfpix.Color{R: nan, G: nan, B: nan, A: 1}, want: [4]uint8{0, 0, 0, 255}},
		{c: sdfpix.Color{R: 1, G: 1, B: 1, A: 0.5}, want: [4]uint8{128, 128, 128, 128}},
		{c: sdfpix.Color{R: 1, G: 1, B: 1, A: nan}, want: [4]uint8{0, 0, 0, 0}},
	} {
		got := test.c.RGBA8()
		if [4]uint8{got.R, got.G, got.B, got.A} != test.want {
			t.Errorf("%v.RGBA8() = %v, want %v", test.c, got, test.want)
		}
	}
	mid := sdfpix.MixColor(sdfpix.Color{}, sdfpix.Color{R: 1, G: 1, B: 1, A: 1}, 0.25)
	if mid != (sdfpix.Color{R: 0.25, G: 0.25, B: 0.25, A: 0.25}) {
		t.Errorf("MixColor got %v", mid)
	}
	if rgb := sdfpix.HSV(0, 1, 1); rgb != (ms3.Vec{X: 1}) {
		t.Errorf("HSV red got %v", rgb)
	}
	if c := sdfpix.Opaque(ms3.Vec{X: 0.1, Y: 0.2, Z: 0.3}); c.A != 1 || c.RGB() != (ms3.Vec{X: 0.1, Y: 0.2, Z: 0.3}) {
		t.Errorf("Opaque got %v", c)
	}
}

func TestResolution(t *testing.T) {
	r := sdfpix.Resolution{Width: 640, Height: 480}
	if r.String() != "640x480" || r.Pixels() != 640*480 || r.IsZero() {
		t.Errorf("bad resolution helpers for %v", r)
	}
	if !(sdfpix.Resolution{Width: 10}).IsZero() {
		t.Error("zero height not reported")
	}
}

func TestSDFCircleExact(t *testing.T) {
	for _, test := range []struct {
		center ms2.Vec
		radius float32
	}{
		{center: ms2.Vec{}, radius: 5},
		{center: ms2.Vec{X: 10, Y: -4}, radius: 5},
		{center: ms2.Vec{X: -2.5, Y: 7.25}, radius: 0.5},
	} {
		c, r := test.center, test.radius
		if got := sdfpix.SDFCircle(c, c, r); got != -r {
			t.Errorf("SDFCircle at center %v = %v, want %v", c, got, -r)
		}
		// Axis offsets are exactly representable for these centers and radii.
		for _, off := range []ms2.Vec{{X: r}, {X: -r}, {Y: r}, {Y: -r}} {
			p := ms2.Add(c, off)
			if got := sdfpix.SDFCircle(p, c, r); got != 0 {
				t.Errorf("SDFCircle at %v on boundary = %v, want exactly 0", p, got)
			}
		}
	}
	// 3-4-5 triangle is exact.
	if got := sdfpix.SDFCircle(ms2.Vec{X: 3, Y: 4}, ms2.Vec{}, 5); got != 0 {
		t.Errorf("SDFCircle on 3-4-5 boundary = %v, want 0", got)
	}
	if got := sdfpix.SDFRect(ms2.Vec{X: 2, Y: 0.5}, ms2.Vec{}, ms2.Vec{X: 2, Y: 1}); got != 0 {
		t.Errorf("SDFRect on edge = %v, want 0", got)
	}
}

func TestHashMagnitudes(t *testing.T) {
	for exp := -6; exp <= 38; exp++ {
		mag := float32(math.Pow(10, float64(exp)))
		if math32.IsInf(mag, 0) {
			continue
		}
		for _, p := range []ms2.Vec{
			{X: mag, Y: mag},
			{X: -mag, Y: mag},
			{X: mag, Y: 0},
			{X: 1.5 * mag, Y: -0.75 * mag},
		} {
			h := sdfpix.Hash(p)
			if !(h >= 0 && h < 1) {
				t.Errorf("Hash(%v) = %v outside [0,1)", p, h)
			}
			h3 := sdfpix.Hash3(ms3.Vec{X: p.X, Y: p.Y, Z: -p.X})
			if !(h3 >= 0 && h3 < 1) {
				t.Errorf("Hash3(%v) = %v outside [0,1)", p, h3)
			}
		}
	}
}

func TestVoronoiNominalCenter(t *testing.T) {
	const cellSize = 40
	for y := -10; y < 10; y++ {
		for x := -10; x < 10; x++ {
			c := sdfpix.Cell{X: x, Y: y}
			p := sdfpix.CellNominalCenter(c, cellSize)
			d, _ := sdfpix.Voronoi(p, cellSize)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					site := sdfpix.CellSite(sdfpix.Cell{X: x + dx, Y: y + dy}, cellSize)
					if nd := sdfpix.Euclidean(p, site); d > nd {
						t.Fatalf("cell %v center: voronoi distance %v exceeds neighbor (%d,%d) site distance %v", c, d, dx, dy, nd)
					}
				}
			}
		}
	}
}

package sdfpix

import (
	"errors"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Euclidean returns the straight line distance between a and b.
func Euclidean(a, b ms2.Vec) float32 {
	return ms2.Norm(ms2.Sub(b, a))
}

// SquaredEuclidean returns the squared straight line distance between a and b.
// Prefer it over [Euclidean] when only the relative ordering of distances matters.
func SquaredEuclidean(a, b ms2.Vec) float32 {
	d := ms2.Sub(b, a)
	return ms2.Dot(d, d)
}

// Manhattan returns the sum of absolute coordinate differences (L1 norm).
func Manhattan(a, b ms2.Vec) float32 {
	d := ms2.AbsElem(ms2.Sub(b, a))
	return d.X + d.Y
}

// Chebyshev returns the largest absolute coordinate difference (L∞ norm).
func Chebyshev(a, b ms2.Vec) float32 {
	d := ms2.AbsElem(ms2.Sub(b, a))
	return math32.Max(d.X, d.Y)
}

// Minkowski returns the Lp distance between a and b. p=1 is the Manhattan distance,
// p=2 the Euclidean distance and large p approach the Chebyshev distance.
// The caller must ensure p > 0; p == 0 results in NaN or Inf.
func Minkowski(a, b ms2.Vec, p float32) float32 {
	d := ms2.AbsElem(ms2.Sub(b, a))
	return math32.Pow(math32.Pow(d.X, p)+math32.Pow(d.Y, p), 1/p)
}

// Euclidean3 is the 3D version of [Euclidean].
func Euclidean3(a, b ms3.Vec) float32 {
	return ms3.Norm(ms3.Sub(b, a))
}

// SquaredEuclidean3 is the 3D version of [SquaredEuclidean].
func SquaredEuclidean3(a, b ms3.Vec) float32 {
	d := ms3.Sub(b, a)
	return ms3.Dot(d, d)
}

// Manhattan3 is the 3D version of [Manhattan].
func Manhattan3(a, b ms3.Vec) float32 {
	d := ms3.AbsElem(ms3.Sub(b, a))
	return d.X + d.Y + d.Z
}

// Chebyshev3 is the 3D version of [Chebyshev].
func Chebyshev3(a, b ms3.Vec) float32 {
	d := ms3.AbsElem(ms3.Sub(b, a))
	return math32.Max(d.X, math32.Max(d.Y, d.Z))
}

// Minkowski3 is the 3D version of [Minkowski]. Same precondition on p applies.
func Minkowski3(a, b ms3.Vec, p float32) float32 {
	d := ms3.AbsElem(ms3.Sub(b, a))
	return math32.Pow(math32.Pow(d.X, p)+math32.Pow(d.Y, p)+math32.Pow(d.Z, p), 1/p)
}

// Metric selects one of the distance metrics of this package so that it may
// be chosen through configuration.
type Metric uint8

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricChebyshev
	MetricMinkowski
	numMetrics
)

var metricNames = [numMetrics]string{
	MetricEuclidean:        "euclidean",
	MetricSquaredEuclidean: "squared-euclidean",
	MetricManhattan:        "manhattan",
	MetricChebyshev:        "chebyshev",
	MetricMinkowski:        "minkowski",
}

var errUnknownMetric = errors.New("unknown distance metric")

// Distance computes the distance between a and b under the metric. p is only
// used by [MetricMinkowski].
func (m Metric) Distance(a, b ms2.Vec, p float32) float32 {
	switch m {
	case MetricEuclidean:
		return Euclidean(a, b)
	case MetricSquaredEuclidean:
		return SquaredEuclidean(a, b)
	case MetricManhattan:
		return Manhattan(a, b)
	case MetricChebyshev:
		return Chebyshev(a, b)
	case MetricMinkowski:
		return Minkowski(a, b, p)
	}
	panic("invalid Metric")
}

// String returns the metric's name as accepted by [ParseMetric].
func (m Metric) String() string {
	if m >= numMetrics {
		return "Metric(invalid)"
	}
	return metricNames[m]
}

// ParseMetric parses a metric name. Matching is case insensitive.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range metricNames {
		if s == name {
			return Metric(i), nil
		}
	}
	return 0, errUnknownMetric
}

// MarshalText implements [encoding.TextMarshaler].
func (m Metric) MarshalText() ([]byte, error) {
	if m >= numMetrics {
		return nil, errUnknownMetric
	}
	return []byte(metricNames[m]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Metric) UnmarshalText(text []byte) error {
	got, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = got
	return nil
}

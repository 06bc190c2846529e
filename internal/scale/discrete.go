package scale

import (
	"fmt"
	"math"
	"sort"
)

// banded places n buckets side by side over a pixel range.
type banded struct {
	rng [2]float64
	n   int
}

func (b banded) center(i int) float64 {
	return lerp(b.rng, (float64(i)+0.5)/float64(b.n))
}

func (b banded) bucketAt(px float64) int {
	i := int(math.Floor(unlerp(b.rng, px) * float64(b.n)))
	return clampIndex(i, b.n)
}

func (b banded) bandwidth() float64 {
	return math.Abs(b.rng[1]-b.rng[0]) / float64(b.n)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// quantize divides a continuous domain into equal-width buckets.
type quantize struct {
	banded
	domain [2]float64
}

func newQuantize(domain, rng [2]float64, cfg config) *quantize {
	if cfg.nice {
		domain = niceLinear(domain, cfg.ticks)
	}
	return &quantize{banded: banded{rng: rng, n: cfg.ticks}, domain: domain}
}

func (s *quantize) Kind() Kind         { return KindQuantize }
func (s *quantize) Domain() [2]float64 { return s.domain }
func (s *quantize) Range() [2]float64  { return s.rng }

func (s *quantize) Map(x float64) float64 {
	t := unlerp(s.domain, x)
	return s.center(clampIndex(int(math.Floor(t*float64(s.n))), s.n))
}

// Invert returns the domain value at the center of the bucket under px.
func (s *quantize) Invert(px float64) float64 {
	i := s.bucketAt(px)
	return lerp(s.domain, (float64(i)+0.5)/float64(s.n))
}

func (s *quantize) Ticks(n int) []float64 {
	return linearTicks(s.domain, n)
}

func (s *quantize) String() string {
	return fmt.Sprintf("quantize(%d) [%g,%g] -> [%g,%g]", s.n, s.domain[0], s.domain[1], s.rng[0], s.rng[1])
}

// quantile buckets values by the quantiles of a data sample.
type quantile struct {
	banded
	domain     [2]float64
	thresholds []float64
}

func newQuantile(domain, rng [2]float64, cfg config) *quantile {
	sample := append([]float64(nil), cfg.values...)
	if len(sample) == 0 {
		sample = []float64{domain[0], domain[1]}
	}
	sort.Float64s(sample)

	n := cfg.ticks
	thresholds := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		thresholds = append(thresholds, quantileOf(sample, float64(i)/float64(n)))
	}
	return &quantile{
		banded:     banded{rng: rng, n: n},
		domain:     [2]float64{sample[0], sample[len(sample)-1]},
		thresholds: thresholds,
	}
}

// quantileOf returns the p-quantile of a sorted sample by linear
// interpolation between closest ranks.
func quantileOf(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func (s *quantile) Kind() Kind         { return KindQuantile }
func (s *quantile) Domain() [2]float64 { return s.domain }
func (s *quantile) Range() [2]float64  { return s.rng }

func (s *quantile) Map(x float64) float64 {
	return s.center(sort.SearchFloat64s(s.thresholds, math.Nextafter(x, math.Inf(1))))
}

// Invert returns the lower threshold of the bucket under px.
func (s *quantile) Invert(px float64) float64 {
	i := s.bucketAt(px)
	if i == 0 {
		return s.domain[0]
	}
	return s.thresholds[i-1]
}

func (s *quantile) Ticks(int) []float64 {
	return append([]float64(nil), s.thresholds...)
}

func (s *quantile) String() string {
	return fmt.Sprintf("quantile(%d) [%g,%g] -> [%g,%g]", s.n, s.domain[0], s.domain[1], s.rng[0], s.rng[1])
}

// threshold buckets values at the nice ticks of the domain.
type threshold struct {
	banded
	domain     [2]float64
	thresholds []float64
}

func newThreshold(domain, rng [2]float64, cfg config) *threshold {
	if cfg.nice {
		domain = niceLinear(domain, cfg.ticks)
	}
	thresholds := linearTicks(domain, cfg.ticks)
	return &threshold{
		banded:     banded{rng: rng, n: len(thresholds) + 1},
		domain:     domain,
		thresholds: thresholds,
	}
}

func (s *threshold) Kind() Kind         { return KindThreshold }
func (s *threshold) Domain() [2]float64 { return s.domain }
func (s *threshold) Range() [2]float64  { return s.rng }

func (s *threshold) Map(x float64) float64 {
	return s.center(sort.SearchFloat64s(s.thresholds, math.Nextafter(x, math.Inf(1))))
}

// Invert returns the threshold opening the bucket under px.
func (s *threshold) Invert(px float64) float64 {
	i := s.bucketAt(px)
	if i == 0 {
		return math.Min(s.domain[0], s.domain[1])
	}
	return s.thresholds[i-1]
}

func (s *threshold) Ticks(int) []float64 {
	return append([]float64(nil), s.thresholds...)
}

func (s *threshold) String() string {
	return fmt.Sprintf("threshold%v -> [%g,%g]", s.thresholds, s.rng[0], s.rng[1])
}

// ordinal places each distinct category at the center of its band.
type ordinal struct {
	banded
	categories []float64
}

func newOrdinal(domain, rng [2]float64, cfg config) *ordinal {
	cats := append([]float64(nil), cfg.values...)
	if len(cats) == 0 {
		lo, hi := math.Min(domain[0], domain[1]), math.Max(domain[0], domain[1])
		for v := math.Ceil(lo); v <= hi && len(cats) < 10000; v++ {
			cats = append(cats, v)
		}
	}
	sort.Float64s(cats)
	cats = dedupe(cats)
	if len(cats) == 0 {
		cats = []float64{domain[0]}
	}
	return &ordinal{banded: banded{rng: rng, n: len(cats)}, categories: cats}
}

func dedupe(sorted []float64) []float64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func (s *ordinal) Kind() Kind { return KindOrdinal }

func (s *ordinal) Domain() [2]float64 {
	return [2]float64{s.categories[0], s.categories[len(s.categories)-1]}
}

func (s *ordinal) Range() [2]float64 { return s.rng }

// Map places x at the band of the nearest category.
func (s *ordinal) Map(x float64) float64 {
	return s.center(s.nearest(x))
}

func (s *ordinal) nearest(x float64) int {
	i := sort.SearchFloat64s(s.categories, x)
	switch {
	case i == 0:
		return 0
	case i == len(s.categories):
		return i - 1
	case x-s.categories[i-1] <= s.categories[i]-x:
		return i - 1
	default:
		return i
	}
}

func (s *ordinal) Invert(px float64) float64 {
	return s.categories[s.bucketAt(px)]
}

// Ticks returns every category, thinned evenly to at most n.
func (s *ordinal) Ticks(n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := (len(s.categories) + n - 1) / n
	var out []float64
	for i := 0; i < len(s.categories); i += step {
		out = append(out, s.categories[i])
	}
	return out
}

func (s *ordinal) String() string {
	return fmt.Sprintf("ordinal(%d) -> [%g,%g]", len(s.categories), s.rng[0], s.rng[1])
}

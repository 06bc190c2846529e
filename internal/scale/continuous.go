package scale

import (
	"fmt"
	"math"

	mscale "github.com/aclements/go-moremath/scale"
)

// continuous covers linear, pow and sqrt scales: a moremath linear scale over
// the transformed domain.
type continuous struct {
	kind   Kind
	lin    mscale.Linear
	fwd    func(float64) float64
	inv    func(float64) float64
	domain [2]float64
	rng    [2]float64
}

func newLinear(kind Kind, domain, rng [2]float64, fwd, inv func(float64) float64, cfg config) *continuous {
	if cfg.nice {
		domain = niceLinear(domain, cfg.ticks)
	}
	return &continuous{
		kind:   kind,
		lin:    mscale.Linear{Min: fwd(domain[0]), Max: fwd(domain[1]), Clamp: cfg.clamp},
		fwd:    fwd,
		inv:    inv,
		domain: domain,
		rng:    rng,
	}
}

// niceLinear rounds the domain outwards to tick boundaries, keeping its
// direction. A degenerate domain is widened by one unit.
func niceLinear(d [2]float64, ticks int) [2]float64 {
	reversed := d[0] > d[1]
	l := mscale.Linear{Min: d[0], Max: d[1]}
	l.Nice(mscale.TickOptions{Max: ticks})
	if reversed {
		return [2]float64{l.Max, l.Min}
	}
	return [2]float64{l.Min, l.Max}
}

func (s *continuous) Kind() Kind            { return s.kind }
func (s *continuous) Domain() [2]float64    { return s.domain }
func (s *continuous) Range() [2]float64     { return s.rng }
func (s *continuous) Map(x float64) float64 { return lerp(s.rng, s.lin.Map(s.fwd(x))) }

func (s *continuous) Invert(px float64) float64 {
	return s.inv(s.lin.Unmap(unlerp(s.rng, px)))
}

func (s *continuous) Ticks(n int) []float64 {
	return linearTicks(s.domain, n)
}

func (s *continuous) String() string {
	return fmt.Sprintf("%s [%g,%g] -> [%g,%g]", s.kind, s.domain[0], s.domain[1], s.rng[0], s.rng[1])
}

func linearTicks(d [2]float64, n int) []float64 {
	major, _ := mscale.Linear{Min: d[0], Max: d[1]}.Ticks(mscale.TickOptions{Max: n})
	return major
}

// logScale wraps a moremath log scale. moremath orders the domain
// ascending, so a reversed domain flips the unit interval.
type logScale struct {
	log      mscale.Log
	reversed bool
	domain   [2]float64
	rng      [2]float64
}

func newLog(domain, rng [2]float64, cfg config) (*logScale, error) {
	l, err := mscale.NewLog(domain[0], domain[1], 10)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	l.SetClamp(cfg.clamp)

	reversed := domain[0] > domain[1]
	if cfg.nice {
		l.Nice(mscale.TickOptions{Max: cfg.ticks})
	}
	d := [2]float64{l.Min, l.Max}
	if reversed {
		d = [2]float64{l.Max, l.Min}
	}
	return &logScale{log: l, reversed: reversed, domain: d, rng: rng}, nil
}

func (s *logScale) Kind() Kind         { return KindLog }
func (s *logScale) Domain() [2]float64 { return s.domain }
func (s *logScale) Range() [2]float64  { return s.rng }

func (s *logScale) Map(x float64) float64 {
	t := s.log.Map(x)
	if s.reversed {
		t = 1 - t
	}
	return lerp(s.rng, t)
}

func (s *logScale) Invert(px float64) float64 {
	t := unlerp(s.rng, px)
	if s.reversed {
		t = 1 - t
	}
	return s.log.Unmap(t)
}

func (s *logScale) Ticks(n int) []float64 {
	major, _ := s.log.Ticks(mscale.TickOptions{Max: n})
	return major
}

func (s *logScale) String() string {
	return fmt.Sprintf("log [%g,%g] -> [%g,%g]", s.domain[0], s.domain[1], s.rng[0], s.rng[1])
}

// FormatTick prints powers of ten compactly.
func (s *logScale) FormatTick(v float64, _ []float64) string {
	a := math.Abs(v)
	if e := math.Round(math.Log10(a)); v != 0 && math.Abs(e) >= 4 && math.Abs(math.Pow(10, e)-a) <= 1e-9*a {
		sign := ""
		if v < 0 {
			sign = "-"
		}
		return fmt.Sprintf("%s1e%d", sign, int(e))
	}
	return fmt.Sprintf("%g", v)
}

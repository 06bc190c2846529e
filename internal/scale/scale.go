package scale

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Kind names a scale type.
type Kind string

// Supported scale kinds.
const (
	KindLinear    Kind = "linear"
	KindPow       Kind = "pow"
	KindSqrt      Kind = "sqrt"
	KindLog       Kind = "log"
	KindQuantize  Kind = "quantize"
	KindQuantile  Kind = "quantile"
	KindThreshold Kind = "threshold"
	KindOrdinal   Kind = "ordinal"
	KindTime      Kind = "time"
)

// Kinds lists every supported kind in declaration order.
func Kinds() []string {
	return []string{
		string(KindLinear), string(KindPow), string(KindSqrt), string(KindLog),
		string(KindQuantize), string(KindQuantile), string(KindThreshold),
		string(KindOrdinal), string(KindTime),
	}
}

// Errors returned by New.
var (
	ErrUnknownKind = errors.New("unknown scale kind")
	ErrDomain      = errors.New("invalid scale domain")
)

// Scale maps a data domain onto a pixel range.
type Scale interface {
	// Kind returns the scale type.
	Kind() Kind

	// Map returns the pixel position of data value x.
	Map(x float64) float64

	// Invert returns the data value at pixel position px.
	Invert(px float64) float64

	// Domain returns the data bounds after nicing.
	Domain() [2]float64

	// Range returns the pixel bounds.
	Range() [2]float64

	// Ticks returns at most n tick values inside the domain, ascending.
	Ticks(n int) []float64

	// String describes the scale.
	String() string
}

// Formatter is implemented by scales with a preferred tick label format.
type Formatter interface {
	FormatTick(v float64, ticks []float64) string
}

// DefaultTicks is the tick count used for nicing and axis generation.
const DefaultTicks = 10

type config struct {
	nice     bool
	ticks    int
	exponent float64
	values   []float64
	clamp    bool
}

// Option configures New.
type Option func(*config)

// WithNice extends the domain to round tick values.
func WithNice(nice bool) Option {
	return func(c *config) {
		c.nice = nice
	}
}

// WithTickCount sets the tick count used for nicing and bucket counts.
func WithTickCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.ticks = n
		}
	}
}

// WithExponent sets the pow scale exponent.
func WithExponent(k float64) Option {
	return func(c *config) {
		c.exponent = k
	}
}

// WithValues supplies the data sample for quantile scales and the categories
// for ordinal scales.
func WithValues(values []float64) Option {
	return func(c *config) {
		c.values = append([]float64(nil), values...)
	}
}

// WithClamp clamps inputs to the domain.
func WithClamp(clamp bool) Option {
	return func(c *config) {
		c.clamp = clamp
	}
}

// New builds a scale of the given kind.
func New(kind Kind, domain, rng [2]float64, opts ...Option) (Scale, error) {
	cfg := config{ticks: DefaultTicks, exponent: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, v := range []float64{domain[0], domain[1], rng[0], rng[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v -> %v", ErrDomain, domain, rng)
		}
	}

	switch kind {
	case KindLinear:
		return newLinear(kind, domain, rng, identity, identity, cfg), nil
	case KindPow:
		k := cfg.exponent
		if k == 0 {
			return nil, fmt.Errorf("%w: pow exponent 0", ErrDomain)
		}
		return newLinear(kind, domain, rng, powFn(k), powFn(1/k), cfg), nil
	case KindSqrt:
		return newLinear(kind, domain, rng, powFn(0.5), powFn(2), cfg), nil
	case KindLog:
		return newLog(domain, rng, cfg)
	case KindTime:
		return newTime(domain, rng, cfg), nil
	case KindQuantize:
		return newQuantize(domain, rng, cfg), nil
	case KindQuantile:
		return newQuantile(domain, rng, cfg), nil
	case KindThreshold:
		return newThreshold(domain, rng, cfg), nil
	case KindOrdinal:
		return newOrdinal(domain, rng, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Bandwidth returns the pixel width of one band for discrete scales and 0 for
// continuous ones.
func Bandwidth(s Scale) float64 {
	if b, ok := s.(interface{ bandwidth() float64 }); ok {
		return b.bandwidth()
	}
	return 0
}

// lerp stretches t in [0, 1] over r.
func lerp(r [2]float64, t float64) float64 {
	return r[0] + t*(r[1]-r[0])
}

// unlerp is the inverse of lerp.
func unlerp(r [2]float64, px float64) float64 {
	if r[1] == r[0] {
		return 0.5
	}
	return (px - r[0]) / (r[1] - r[0])
}

func identity(x float64) float64 { return x }

// powFn returns the sign-preserving power transform x -> sign(x)|x|^k.
func powFn(k float64) func(float64) float64 {
	return func(x float64) float64 {
		if x < 0 {
			return -math.Pow(-x, k)
		}
		return math.Pow(x, k)
	}
}

// Equal reports whether a and b map and tick identically.
func Equal(a, b Scale) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() || a.Domain() != b.Domain() || a.Range() != b.Range() || a.String() != b.String() {
		return false
	}
	d := a.Domain()
	for _, t := range []float64{0.25, 0.5, 0.75} {
		x := lerp(d, t)
		if pa, pb := a.Map(x), b.Map(x); pa != pb && !(math.IsNaN(pa) && math.IsNaN(pb)) {
			return false
		}
	}
	return slices.Equal(a.Ticks(DefaultTicks), b.Ticks(DefaultTicks))
}

package scale

import (
	"fmt"
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
)

// timeSteps are the tick intervals of a time scale, one per tick level.
var timeSteps = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
	91 * 24 * time.Hour,
	365 * 24 * time.Hour,
}

// timeTicker implements the moremath Ticker interface over timeSteps.
// Domain values are Unix seconds.
type timeTicker struct {
	lo, hi   float64
	roundOut bool
}

func stepAt(level int) float64 {
	if level < 0 {
		level = 0
	}
	if level >= len(timeSteps) {
		level = len(timeSteps) - 1
	}
	return timeSteps[level].Seconds()
}

func (t timeTicker) bounds(level int) (first, last, step float64) {
	step = stepAt(level)
	if t.roundOut {
		return math.Floor(t.lo / step), math.Ceil(t.hi / step), step
	}
	return math.Ceil(t.lo / step), math.Floor(t.hi / step), step
}

func (t timeTicker) CountTicks(level int) int {
	first, last, _ := t.bounds(level)
	return int(last - first + 1)
}

func (t timeTicker) TicksAtLevel(level int) interface{} {
	first, last, step := t.bounds(level)
	ticks := make([]float64, 0, int(last-first+1))
	for n := first; n <= last; n++ {
		ticks = append(ticks, n*step)
	}
	return ticks
}

func timeLevel(lo, hi float64, n int, roundOut bool) (timeTicker, int, bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	t := timeTicker{lo: lo, hi: hi, roundOut: roundOut}
	o := mscale.TickOptions{Max: n, MinLevel: 0, MaxLevel: len(timeSteps) - 1}
	level, ok := o.FindLevel(t, len(timeSteps)/2)
	return t, level, ok
}

// timeScale is a linear scale over Unix seconds with calendar-sized ticks.
type timeScale struct {
	*continuous
}

func newTime(domain, rng [2]float64, cfg config) *timeScale {
	if cfg.nice && domain[0] != domain[1] {
		if t, level, ok := timeLevel(domain[0], domain[1], cfg.ticks, true); ok {
			first, last, step := t.bounds(level)
			if domain[0] > domain[1] {
				domain = [2]float64{last * step, first * step}
			} else {
				domain = [2]float64{first * step, last * step}
			}
		}
	}
	cfg.nice = false
	return &timeScale{continuous: newLinear(KindTime, domain, rng, identity, identity, cfg)}
}

func (s *timeScale) Ticks(n int) []float64 {
	t, level, ok := timeLevel(s.domain[0], s.domain[1], n, false)
	if !ok {
		return nil
	}
	return t.TicksAtLevel(level).([]float64)
}

// FormatTick picks a layout from the spacing between ticks.
func (s *timeScale) FormatTick(v float64, ticks []float64) string {
	step := time.Duration(math.MaxInt64)
	if len(ticks) > 1 {
		step = time.Duration((ticks[1] - ticks[0]) * float64(time.Second))
	}
	return time.Unix(int64(v), 0).UTC().Format(timeLayout(step))
}

func timeLayout(step time.Duration) string {
	switch {
	case step < time.Minute:
		return "15:04:05"
	case step < 24*time.Hour:
		return "15:04"
	case step < 30*24*time.Hour:
		return "Jan 02"
	case step < 365*24*time.Hour:
		return "Jan 2006"
	default:
		return "2006"
	}
}

func (s *timeScale) String() string {
	return fmt.Sprintf("time [%s,%s] -> [%g,%g]",
		time.Unix(int64(s.domain[0]), 0).UTC().Format(time.RFC3339),
		time.Unix(int64(s.domain[1]), 0).UTC().Format(time.RFC3339),
		s.rng[0], s.rng[1])
}

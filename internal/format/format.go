package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/tschart/internal/logging"
)

// Formatter renders a tick value as a label.
type Formatter interface {
	Format(v float64) string
	Spec() string
	Close() error
}

type config struct {
	lang    language.Tag
	logger  *logging.Logger
	timeout time.Duration
}

// Option configures Parse.
type Option func(*config)

// WithLanguage sets the locale for number formats.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.lang = tag
	}
}

// WithLogger sets the logger used to report Lua runtime failures.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds a single Lua formatter call.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// DefaultTimeout bounds a single Lua formatter call.
const DefaultTimeout = 50 * time.Millisecond

// Parse builds the formatter described by spec. An empty spec returns a nil
// formatter and no error.
func Parse(spec string, opts ...Option) (Formatter, error) {
	cfg := config{lang: language.English, logger: logging.Nop(), timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "number":
		digits, err := parseDigits(arg, -1)
		if err != nil {
			return nil, err
		}
		return newNumber(spec, digits, cfg.lang), nil
	case "percent":
		digits, err := parseDigits(arg, 0)
		if err != nil {
			return nil, err
		}
		return &funcFormatter{spec: spec, fn: percentFunc(digits, cfg.lang)}, nil
	case "si":
		digits, err := parseDigits(arg, -1)
		if err != nil {
			return nil, err
		}
		return &funcFormatter{spec: spec, fn: siFunc(digits)}, nil
	case "time":
		if arg == "" {
			return nil, fmt.Errorf("%w: %q needs a layout", ErrInvalidFormat, spec)
		}
		return &funcFormatter{spec: spec, fn: timeFunc(arg)}, nil
	case "lua":
		return newLua(spec, arg, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, kind)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(spec string, opts ...Option) Formatter {
	f, err := Parse(spec, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func parseDigits(arg string, def int) (int, error) {
	if arg == "" {
		return def, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > 20 {
		return 0, fmt.Errorf("%w: digits %q", ErrInvalidFormat, arg)
	}
	return n, nil
}

// funcFormatter adapts a plain function.
type funcFormatter struct {
	spec string
	fn   func(float64) string
}

func (f *funcFormatter) Format(v float64) string { return f.fn(v) }
func (f *funcFormatter) Spec() string            { return f.spec }
func (f *funcFormatter) Close() error            { return nil }

// numberFormatter prints grouped decimals for a locale. A negative digit
// count keeps the shortest representation.
type numberFormatter struct {
	spec    string
	digits  int
	printer *message.Printer
}

func newNumber(spec string, digits int, lang language.Tag) *numberFormatter {
	return &numberFormatter{spec: spec, digits: digits, printer: message.NewPrinter(lang)}
}

func (f *numberFormatter) Format(v float64) string {
	if f.digits < 0 {
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return f.printer.Sprintf("%d", int64(v))
		}
		return f.printer.Sprint(v)
	}
	return f.printer.Sprintf("%."+strconv.Itoa(f.digits)+"f", v)
}

func (f *numberFormatter) Spec() string { return f.spec }
func (f *numberFormatter) Close() error { return nil }

func percentFunc(digits int, lang language.Tag) func(float64) string {
	p := message.NewPrinter(lang)
	layout := "%." + strconv.Itoa(digits) + "f%%"
	return func(v float64) string {
		return p.Sprintf(layout, v*100)
	}
}

var siPrefixes = []struct {
	exp    int
	prefix string
}{
	{12, "T"}, {9, "G"}, {6, "M"}, {3, "k"}, {0, ""}, {-3, "m"}, {-6, "µ"}, {-9, "n"},
}

func siFunc(digits int) func(float64) string {
	return func(v float64) string {
		if v == 0 {
			return "0"
		}
		a := math.Abs(v)
		for _, p := range siPrefixes {
			if scaled := a / math.Pow10(p.exp); scaled >= 1 || p.exp == -9 {
				s := strconv.FormatFloat(math.Copysign(scaled, v), 'f', digits, 64)
				if digits < 0 {
					s = strconv.FormatFloat(math.Copysign(scaled, v), 'g', 6, 64)
				}
				return s + p.prefix
			}
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

func timeFunc(layout string) func(float64) string {
	return func(v float64) string {
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(layout)
	}
}

package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/dshills/tschart/internal/logging"
)

func TestParse_Empty(t *testing.T) {
	f, err := Parse("  ")
	if err != nil || f != nil {
		t.Errorf("Parse(blank) = %v, %v; want nil, nil", f, err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"color:red", ErrUnknownFormat},
		{"number:x", ErrInvalidFormat},
		{"number:-1", ErrInvalidFormat},
		{"time", ErrInvalidFormat},
		{"lua:", ErrLua},
		{"lua:return (", ErrLua},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestFormat_Builtin(t *testing.T) {
	tests := []struct {
		spec string
		opts []Option
		v    float64
		want string
	}{
		{"number", nil, 1234567, "1,234,567"},
		{"number:2", nil, 1234.5, "1,234.50"},
		{"number:0", nil, 99.6, "100"},
		{"number:2", []Option{WithLanguage(language.German)}, 1234.5, "1.234,50"},
		{"percent:1", nil, 0.256, "25.6%"},
		{"percent", nil, 0.5, "50%"},
		{"si", nil, 12000, "12k"},
		{"si", nil, 1500, "1.5k"},
		{"si:1", nil, 2500000, "2.5M"},
		{"si", nil, 0, "0"},
		{"si", nil, 0.002, "2m"},
		{"time:15:04", nil, 3600, "01:00"},
		{"time:2006-01-02", nil, 86400, "1970-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := Parse(tt.spec, tt.opts...)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			defer f.Close()
			if got := f.Format(tt.v); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
			}
			if f.Spec() != tt.spec {
				t.Errorf("Spec() = %q, want %q", f.Spec(), tt.spec)
			}
		})
	}
}

func TestFormat_Lua(t *testing.T) {
	tests := []struct {
		name string
		spec string
		v    float64
		want string
	}{
		{"expression", "lua:string.format('%.1fk', v / 1000)", 1500, "1.5k"},
		{"statements", "lua:if v < 0 then return 'neg' end return tostring(v)", -1, "neg"},
		{"statements positive", "lua:if v < 0 then return 'neg' end return tostring(v)", 3, "3"},
		{"number result", "lua:v * 2", 4, "8"},
		{"math library", "lua:math.floor(v)", 2.7, "2"},
		{"literal mentioning return", "lua:'return ' .. v", 5, "return 5"},
		{"identifier containing return", "lua:tostring(v) .. (returns or '')", 5, "5"},
		{"loop body", "lua:local s = '' for i = 1, v do s = s .. '*' end return s", 3, "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustParse(tt.spec)
			defer f.Close()
			if got := f.Format(tt.v); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormat_LuaFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	tests := []struct {
		name string
		spec string
	}{
		{"runtime error", "lua:error('boom')"},
		{"table result", "lua:return {}"},
		{"timeout", "lua:while true do end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			f, err := Parse(tt.spec, WithLogger(logger), WithTimeout(20*time.Millisecond))
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			defer f.Close()

			if got := f.Format(7); got != "7" {
				t.Errorf("Format(7) = %q, want fallback %q", got, "7")
			}
			if !strings.Contains(buf.String(), "tick format failed") {
				t.Errorf("log = %q, want a tick format warning", buf.String())
			}
		})
	}
}

func TestFormat_LuaSandbox(t *testing.T) {
	for _, name := range []string{"dofile", "loadstring", "require"} {
		f := MustParse("lua:tostring(" + name + ")")
		if got := f.Format(0); got != "nil" {
			t.Errorf("%s = %q, want nil", name, got)
		}
		f.Close()
	}
	f := MustParse("lua:tostring(io)")
	if got := f.Format(0); got != "nil" {
		t.Errorf("io = %q, want nil", got)
	}
	f.Close()
}

func TestFormat_LuaClosed(t *testing.T) {
	f := MustParse("lua:'x'")
	if err := f.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if got := f.Format(3); got != "3" {
		t.Errorf("Format() after Close = %q, want fallback %q", got, "3")
	}
}

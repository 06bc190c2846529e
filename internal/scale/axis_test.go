package scale

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewAxis_Orient(t *testing.T) {
	s := mustScale(t, KindLinear, [2]float64{0, 100}, [2]float64{0, 500})

	for _, o := range []Orient{OrientTop, OrientBottom, OrientLeft, OrientRight} {
		if _, err := NewAxis(s, o); err != nil {
			t.Errorf("NewAxis(%s) failed: %v", o, err)
		}
	}
	if _, err := NewAxis(s, Orient("middle")); !errors.Is(err, ErrOrient) {
		t.Errorf("NewAxis(middle) error = %v, want ErrOrient", err)
	}
	if _, err := NewAxis(nil, OrientBottom); err == nil {
		t.Error("NewAxis(nil) should fail")
	}
}

func TestAxis_Ticks(t *testing.T) {
	s := mustScale(t, KindLinear, [2]float64{0, 100}, [2]float64{0, 500})
	a, err := NewAxis(s, OrientBottom, WithTicks(11))
	if err != nil {
		t.Fatalf("NewAxis() failed: %v", err)
	}

	ticks := a.Ticks()
	if len(ticks) != 11 {
		t.Fatalf("len(Ticks()) = %d, want 11", len(ticks))
	}
	mid := ticks[5]
	if mid.Value != 50 || mid.Pos != 250 || mid.Label != "50" {
		t.Errorf("ticks[5] = %+v, want {50 250 50}", mid)
	}
	if !a.Horizontal() {
		t.Error("bottom axis should be horizontal")
	}
}

func TestAxis_Format(t *testing.T) {
	s := mustScale(t, KindLinear, [2]float64{0, 1}, [2]float64{0, 100})
	a, _ := NewAxis(s, OrientLeft, WithTicks(3), WithFormat(func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	}))

	ticks := a.Ticks()
	if got := ticks[len(ticks)-1].Label; got != "100%" {
		t.Errorf("last label = %q, want %q", got, "100%")
	}
}

func TestAxis_ScaleFormatter(t *testing.T) {
	s := mustScale(t, KindTime, [2]float64{0, 3600}, [2]float64{0, 600})
	a, _ := NewAxis(s, OrientBottom)

	ticks := a.Ticks()
	if len(ticks) < 2 || ticks[1].Label != "00:15" {
		t.Errorf("Ticks() = %+v, want second label 00:15", ticks)
	}
}

func TestAxis_LabelOffset(t *testing.T) {
	s := mustScale(t, KindLinear, [2]float64{0, 1}, [2]float64{0, 100})

	tests := []struct {
		orient Orient
		size   float64
		want   float64
	}{
		{OrientBottom, 6, 9},
		{OrientLeft, 6, -9},
		{OrientTop, 6, -9},
		{OrientRight, -10, 3},
	}
	for _, tt := range tests {
		a, _ := NewAxis(s, tt.orient, WithTickSize(tt.size))
		if got := a.LabelOffset(); got != tt.want {
			t.Errorf("%s LabelOffset() = %v, want %v", tt.orient, got, tt.want)
		}
	}
}

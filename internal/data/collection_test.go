package data

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
)

func pts(xy ...float64) []Point {
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func newRecorded(t *testing.T) (*Collection, *[]events.DataChanged) {
	t.Helper()
	bus := event.NewBus()
	var got []events.DataChanged
	_, err := event.SubscribeTyped(bus, events.TopicDataChanged, func(_ context.Context, ev event.Event[events.DataChanged]) error {
		got = append(got, ev.Payload)
		return nil
	})
	if err != nil {
		t.Fatalf("SubscribeTyped() failed: %v", err)
	}
	return NewCollection(WithBus(bus)), &got
}

func TestCollection_Replace(t *testing.T) {
	c, got := newRecorded(t)
	ctx := context.Background()

	err := c.Replace(ctx, []Series{
		{Name: "a", Points: pts(3, 30, 1, 10, 2, 20)},
		{Name: "b", Points: pts(1, 5)},
	})
	if err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	a, _ := c.Get("a")
	if want := pts(1, 10, 2, 20, 3, 30); !reflect.DeepEqual(a.Points, want) {
		t.Errorf("points = %v, want sorted %v", a.Points, want)
	}
	if len(*got) != 1 || (*got)[0].Kind != events.DataReplace {
		t.Fatalf("events = %+v, want one replace", *got)
	}
	if !reflect.DeepEqual((*got)[0].Series, []string{"a", "b"}) {
		t.Errorf("event series = %v, want [a b]", (*got)[0].Series)
	}
}

func TestCollection_ReplaceRejects(t *testing.T) {
	tests := []struct {
		name   string
		series []Series
		want   error
	}{
		{"nan y", []Series{{Name: "a", Points: []Point{{X: 1, Y: math.NaN()}}}}, ErrNonFinite},
		{"infinite x", []Series{{Name: "a", Points: []Point{{X: math.Inf(1), Y: 1}}}}, ErrNonFinite},
		{"duplicate", []Series{{Name: "a"}, {Name: "a"}}, ErrDuplicateSeries},
		{"empty name", []Series{{Name: ""}}, ErrInvalidSeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, got := newRecorded(t)
			_ = c.Replace(context.Background(), []Series{{Name: "keep", Points: pts(1, 1)}})
			*got = nil

			err := c.Replace(context.Background(), tt.series)
			if !errors.Is(err, tt.want) {
				t.Errorf("Replace() error = %v, want %v", err, tt.want)
			}
			if names := c.Names(); !reflect.DeepEqual(names, []string{"keep"}) {
				t.Errorf("Names() = %v, want unchanged [keep]", names)
			}
			if len(*got) != 0 {
				t.Errorf("events = %+v, want none", *got)
			}
		})
	}
}

func TestCollection_StableSort(t *testing.T) {
	c := NewCollection()
	_ = c.Replace(context.Background(), []Series{{Name: "a", Points: []Point{
		{X: 2, Y: 1}, {X: 1, Y: 9}, {X: 2, Y: 2}, {X: 2, Y: 3},
	}}})

	a, _ := c.Get("a")
	want := []Point{{X: 1, Y: 9}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	if !reflect.DeepEqual(a.Points, want) {
		t.Errorf("points = %v, want %v", a.Points, want)
	}
}

func TestCollection_AddRemove(t *testing.T) {
	c, got := newRecorded(t)
	ctx := context.Background()

	if err := c.Add(ctx, Series{Name: "a", Points: pts(1, 1)}); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := c.Add(ctx, Series{Name: "a"}); !errors.Is(err, ErrDuplicateSeries) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateSeries", err)
	}
	if err := c.Add(ctx, Series{Name: "b", Points: pts(1, 2)}); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := c.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err := c.Remove(ctx, "zzz"); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("Remove(unknown) error = %v, want ErrUnknownSeries", err)
	}

	if names := c.Names(); !reflect.DeepEqual(names, []string{"b"}) {
		t.Errorf("Names() = %v, want [b]", names)
	}
	kinds := make([]events.DataKind, len(*got))
	for i, ev := range *got {
		kinds[i] = ev.Kind
	}
	want := []events.DataKind{events.DataAdd, events.DataAdd, events.DataRemove}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("event kinds = %v, want %v", kinds, want)
	}
}

func TestCollection_AppendAndSlide(t *testing.T) {
	c, got := newRecorded(t)
	ctx := context.Background()
	_ = c.Replace(ctx, []Series{{Name: "a", Points: pts(1, 1, 2, 2, 3, 3)}})
	*got = nil

	if err := c.Append(ctx, "a", Point{X: 0, Y: 0}, Point{X: 4, Y: 4}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	a, _ := c.Get("a")
	if want := pts(0, 0, 1, 1, 2, 2, 3, 3, 4, 4); !reflect.DeepEqual(a.Points, want) {
		t.Errorf("after Append points = %v, want %v", a.Points, want)
	}

	if err := c.Slide(ctx, "a", Point{X: 5, Y: 5}); err != nil {
		t.Fatalf("Slide() failed: %v", err)
	}
	a, _ = c.Get("a")
	if want := pts(1, 1, 2, 2, 3, 3, 4, 4, 5, 5); !reflect.DeepEqual(a.Points, want) {
		t.Errorf("after Slide points = %v, want %v", a.Points, want)
	}

	if err := c.Append(ctx, "a", Point{X: math.NaN()}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Append(NaN) error = %v, want ErrNonFinite", err)
	}
	if err := c.Slide(ctx, "nope", Point{}); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("Slide(unknown) error = %v, want ErrUnknownSeries", err)
	}

	if len(*got) != 2 {
		t.Fatalf("events = %+v, want 2", *got)
	}
	for _, ev := range *got {
		if ev.Kind != events.DataAppend || ev.Kind.Structural() {
			t.Errorf("event kind = %v, want non-structural append", ev.Kind)
		}
	}
}

func TestCollection_CopiesOut(t *testing.T) {
	c := NewCollection()
	_ = c.Replace(context.Background(), []Series{{Name: "a", Points: pts(1, 1)}})

	s := c.Series()
	s[0].Points[0].Y = 99
	if a, _ := c.Get("a"); a.Points[0].Y != 1 {
		t.Errorf("stored point mutated through Series(): %v", a.Points[0])
	}
}

func TestExtent(t *testing.T) {
	c := NewCollection()
	if _, ok := c.Extent(); ok {
		t.Error("Extent() of empty collection should not be ok")
	}

	_ = c.Replace(context.Background(), []Series{
		{Name: "a", Points: pts(1, 5, 2, -3)},
		{Name: "b", Points: pts(0, 7)},
	})
	e, ok := c.Extent()
	if !ok {
		t.Fatal("Extent() not ok")
	}
	if e.X != [2]float64{0, 2} || e.Y != [2]float64{-3, 7} {
		t.Errorf("Extent() = %+v, want x [0 2] y [-3 7]", e)
	}
}

func TestSeries_Bisect(t *testing.T) {
	s := Series{Name: "a", Points: pts(0, 0, 10, 0, 20, 0)}

	tests := []struct {
		x    float64
		want int
	}{
		{-5, 0},
		{4, 0},
		{5, 0},
		{6, 1},
		{19, 2},
		{99, 2},
	}
	for _, tt := range tests {
		if got := s.Bisect(tt.x); got != tt.want {
			t.Errorf("Bisect(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
	if got := (Series{}).Bisect(1); got != -1 {
		t.Errorf("Bisect() on empty series = %d, want -1", got)
	}
}

func TestFromColumns(t *testing.T) {
	series, err := FromColumns([]float64{2, 1}, [][]float64{{20, 10}, {200, 100}}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("FromColumns() failed: %v", err)
	}
	want := []Series{
		{Name: "a", Points: pts(1, 10, 2, 20)},
		{Name: "b", Points: pts(1, 100, 2, 200)},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("FromColumns() = %v, want %v", series, want)
	}

	if _, err := FromColumns([]float64{1}, [][]float64{{1, 2}}, []string{"a"}); !errors.Is(err, ErrShape) {
		t.Errorf("row mismatch error = %v, want ErrShape", err)
	}
	if _, err := FromColumns([]float64{1}, [][]float64{{1}}, nil); !errors.Is(err, ErrShape) {
		t.Errorf("name mismatch error = %v, want ErrShape", err)
	}
}

package scene

import (
	"reflect"
	"testing"
)

func TestTrackerMark(t *testing.T) {
	tracker := NewTracker()
	if tracker.IsDirty() {
		t.Fatal("new tracker should be clean")
	}

	tracker.Mark(LayerMarks, LayerAxes, LayerMarks, Layer(99))

	if !tracker.IsLayerDirty(LayerMarks) || !tracker.IsLayerDirty(LayerAxes) {
		t.Error("marked layers should be dirty")
	}
	if tracker.IsLayerDirty(LayerLegend) {
		t.Error("legend should be clean")
	}
	if got, want := tracker.Dirty(), []Layer{LayerAxes, LayerMarks}; !reflect.DeepEqual(got, want) {
		t.Errorf("Dirty() = %v, want %v", got, want)
	}
}

func TestTrackerTake(t *testing.T) {
	tracker := NewTracker()
	tracker.Mark(LayerCursor)

	layers, full := tracker.Take()
	if full || !reflect.DeepEqual(layers, []Layer{LayerCursor}) {
		t.Errorf("Take() = %v, %v", layers, full)
	}
	if tracker.IsDirty() {
		t.Error("Take should clear the dirty set")
	}
	if tracker.Redraws(LayerCursor) != 1 || tracker.Redraws(LayerMarks) != 0 {
		t.Error("Take should count one redraw for each taken layer")
	}

	if layers, _ := tracker.Take(); layers != nil {
		t.Errorf("second Take() = %v, want nil", layers)
	}
	if tracker.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1", tracker.Flushes())
	}
}

func TestTrackerFullRedraw(t *testing.T) {
	tracker := NewTracker()
	tracker.Mark(LayerMarks)
	tracker.MarkFullRedraw()
	tracker.Mark(LayerLegend)

	if !tracker.NeedsFullRedraw() {
		t.Fatal("expected full redraw")
	}
	layers, full := tracker.Take()
	if !full || len(layers) != int(layerCount) {
		t.Errorf("Take() = %v, %v; want every layer", layers, full)
	}
	for _, l := range Layers() {
		if tracker.Redraws(l) != 1 {
			t.Errorf("Redraws(%s) = %d, want 1", l, tracker.Redraws(l))
		}
	}
}

func TestParseLayer(t *testing.T) {
	for _, l := range Layers() {
		got, err := ParseLayer(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayer(%q) = %v, %v", l, got, err)
		}
	}
	if _, err := ParseLayer("overlay"); err == nil {
		t.Error("expected an error for an unknown layer")
	}
	if Layer(42).String() != "unknown" {
		t.Error("expected unknown layer name")
	}
}

package scene

import "sync"

// Tracker records which layers need repainting and how often each layer has
// been repainted.
type Tracker struct {
	mu sync.Mutex

	// dirty has bit l set when layer l needs repainting.
	dirty uint16

	// fullRedraw marks a structural change: every layer repaints.
	fullRedraw bool

	// redraws counts repaints per layer.
	redraws [layerCount]int

	// flushes counts Take calls that returned at least one layer.
	flushes int
}

// NewTracker creates a tracker with nothing dirty.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Mark marks layers dirty. Invalid layers are ignored.
func (t *Tracker) Mark(layers ...Layer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fullRedraw {
		return
	}
	for _, l := range layers {
		if l.Valid() {
			t.dirty |= 1 << l
		}
	}
}

// MarkFullRedraw marks every layer dirty.
func (t *Tracker) MarkFullRedraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fullRedraw = true
	t.dirty = 0
}

// IsDirty returns true if any layer needs repainting.
func (t *Tracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fullRedraw || t.dirty != 0
}

// NeedsFullRedraw returns true if a structural change is pending.
func (t *Tracker) NeedsFullRedraw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fullRedraw
}

// IsLayerDirty returns true if l needs repainting.
func (t *Tracker) IsLayerDirty(l Layer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return l.Valid() && (t.fullRedraw || t.dirty&(1<<l) != 0)
}

// Dirty returns the dirty layers in paint order.
func (t *Tracker) Dirty() []Layer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirtyLocked()
}

func (t *Tracker) dirtyLocked() []Layer {
	var out []Layer
	for l := LayerBase; l < layerCount; l++ {
		if t.fullRedraw || t.dirty&(1<<l) != 0 {
			out = append(out, l)
		}
	}
	return out
}

// Take returns the dirty layers in paint order and whether the change was
// structural, counts one redraw for each, and clears the dirty state.
func (t *Tracker) Take() (layers []Layer, full bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	layers = t.dirtyLocked()
	full = t.fullRedraw
	for _, l := range layers {
		t.redraws[l]++
	}
	if len(layers) > 0 {
		t.flushes++
	}
	t.dirty = 0
	t.fullRedraw = false
	return layers, full
}

// Redraws returns how many times l has been taken for repainting.
func (t *Tracker) Redraws(l Layer) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !l.Valid() {
		return 0
	}
	return t.redraws[l]
}

// Flushes returns how many non-empty Take calls have happened.
func (t *Tracker) Flushes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushes
}

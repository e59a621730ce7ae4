package mapengine

// zoomLevels is the click-to-cycle zoom ladder. The last step wraps back
// to 1x.
var zoomLevels = []float64{1, 1.25, 1.5, 1.75, 2}

// Lightbox is the single-image viewer launched from a popup's cover image.
// Navigation wraps circularly; zoom cycles through fixed steps.
type Lightbox struct {
	images  []string
	index   int
	zoomIdx int
	open    bool
}

// Open shows the lightbox over the given image list, starting at index.
// An empty list is a no-op.
func (l *Lightbox) Open(images []string, index int) {
	if len(images) == 0 {
		return
	}
	if index < 0 || index >= len(images) {
		index = 0
	}
	l.images = images
	l.index = index
	l.zoomIdx = 0
	l.open = true
}

// IsOpen reports whether the lightbox is currently shown.
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Current returns the image currently displayed.
func (l *Lightbox) Current() string {
	if !l.open || len(l.images) == 0 {
		return ""
	}
	return l.images[l.index]
}

// Index returns the current image index.
func (l *Lightbox) Index() int {
	return l.index
}

// Next advances to the next image, wrapping to the first after the last.
func (l *Lightbox) Next() {
	if !l.open || len(l.images) == 0 {
		return
	}
	l.index = (l.index + 1) % len(l.images)
}

// Prev steps back to the previous image, wrapping to the last before the
// first.
func (l *Lightbox) Prev() {
	if !l.open || len(l.images) == 0 {
		return
	}
	l.index = (l.index - 1 + len(l.images)) % len(l.images)
}

// CycleZoom advances the zoom one step and returns the new factor.
func (l *Lightbox) CycleZoom() float64 {
	if !l.open {
		return zoomLevels[0]
	}
	l.zoomIdx = (l.zoomIdx + 1) % len(zoomLevels)
	return zoomLevels[l.zoomIdx]
}

// Zoom returns the current zoom factor.
func (l *Lightbox) Zoom() float64 {
	return zoomLevels[l.zoomIdx]
}

// Close hides the lightbox and resets zoom and index, so the next open
// starts clean.
func (l *Lightbox) Close() {
	l.open = false
	l.index = 0
	l.zoomIdx = 0
	l.images = nil
}

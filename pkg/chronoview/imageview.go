package chronoview

import "k8s.io/klog/v2"

// ImageViewState tracks the transform and selection of the displayed image.
//
// Selection is held once as (item, index) and only changed by selectAt, so the two
// can never disagree and no setter re-enters another.
type ImageViewState struct {
	notifier

	settings    Settings
	items       *Collection
	unsubscribe func()

	zoomFactor      float64
	currentRotation float64
	targetRotation  float64

	selected      *TimelineItem
	selectedIndex int
	autoPlay      bool

	viewportWidth  float64
	viewportHeight float64
	imageWidth     float64
	imageHeight    float64

	shouldFit bool
}

// ImageCommands reports which viewer commands can currently run.
type ImageCommands struct {
	Back       bool
	Next       bool
	PlayPause  bool
	ZoomIn     bool
	ZoomOut    bool
	ResetZoom  bool
	Rotate     bool
	OpenFolder bool
}

// NewImageViewState returns a state reading zoom bounds from s and items from c.
func NewImageViewState(s Settings, c *Collection) (*ImageViewState, error) {
	if err := checkSettings(s); err != nil {
		return nil, err
	}
	st := &ImageViewState{
		settings:      s,
		selectedIndex: -1,
	}
	st.zoomFactor = clamp(1.0, s.MinZoom(), s.MaxZoom())
	st.SetItems(c)
	return st, nil
}

func (s *ImageViewState) ZoomFactor() float64           { return s.zoomFactor }
func (s *ImageViewState) CurrentRotationAngle() float64 { return s.currentRotation }
func (s *ImageViewState) TargetRotationAngle() float64  { return s.targetRotation }
func (s *ImageViewState) SelectedItem() *TimelineItem   { return s.selected }
func (s *ImageViewState) SelectedIndex() int            { return s.selectedIndex }
func (s *ImageViewState) IsAutoPlay() bool              { return s.autoPlay }
func (s *ImageViewState) Items() *Collection            { return s.items }
func (s *ImageViewState) ShouldFitToViewport() bool     { return s.shouldFit }

// ViewportSize returns the available display area.
func (s *ImageViewState) ViewportSize() (float64, float64) {
	return s.viewportWidth, s.viewportHeight
}

// ImageNaturalSize returns the pixel size of the displayed image.
func (s *ImageViewState) ImageNaturalSize() (float64, float64) {
	return s.imageWidth, s.imageHeight
}

// SetItems points the state at a new collection and keeps the selection if it is still present.
func (s *ImageViewState) SetItems(c *Collection) {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if c == nil {
		c = NewCollection(nil)
	}
	s.items = c
	s.unsubscribe = c.Subscribe(s.onItemsChanged)
	s.notify(PropItems)
	s.onItemsChanged()
}

func (s *ImageViewState) onItemsChanged() {
	idx := s.items.IndexOf(s.selected)
	if idx != s.selectedIndex {
		if idx < 0 {
			s.selected = nil
		}
		s.selectedIndex = idx
		s.notify(PropSelectedItem, PropSelectedIndex)
	}
	if s.autoPlay && s.items.Len() <= 1 {
		s.autoPlay = false
		s.notify(PropIsAutoPlay)
	}
}

// SetSelectedItem selects item. An item that is not part of the collection is ignored.
// Every selection starts unrotated and fit to the viewport.
func (s *ImageViewState) SetSelectedItem(item *TimelineItem) {
	if item == nil {
		s.selectAt(-1)
		return
	}
	idx := s.items.IndexOf(item)
	if idx < 0 {
		klog.V(1).Infof("ignoring selection of %q: not in collection", item.Path)
		return
	}
	s.selectAt(idx)
}

// SetSelectedIndex selects the item at index, clamped into range. No-op on an empty collection.
func (s *ImageViewState) SetSelectedIndex(index int) {
	n := s.items.Len()
	if n == 0 {
		return
	}
	index = clampIndex(index, n)
	if s.items.At(index) == s.selected {
		return
	}
	s.selectAt(index)
}

// selectAt is the only place selection changes. i must be in range, or -1 to clear.
func (s *ImageViewState) selectAt(i int) {
	item := s.items.At(i)
	if item == nil {
		i = -1
	}
	if item != s.selected || i != s.selectedIndex {
		s.selected = item
		s.selectedIndex = i
		s.notify(PropSelectedItem, PropSelectedIndex)
	}
	s.reset()
}

func (s *ImageViewState) reset() {
	s.setTargetRotation(0)
	s.ResetZoom()
}

// StepNext advances the selection, wrapping to the first item.
func (s *ImageViewState) StepNext() {
	n := s.items.Len()
	if n == 0 {
		return
	}
	if s.selectedIndex < 0 {
		s.SetSelectedIndex(0)
		return
	}
	s.SetSelectedIndex((s.selectedIndex + 1) % n)
}

// StepPrevious moves the selection back, wrapping to the last item.
func (s *ImageViewState) StepPrevious() {
	n := s.items.Len()
	if n == 0 {
		return
	}
	if s.selectedIndex < 0 {
		s.SetSelectedIndex(0)
		return
	}
	s.SetSelectedIndex((s.selectedIndex - 1 + n) % n)
}

// ToggleAutoPlay flips autoplay. Starting requires at least two items; stopping is always allowed.
// It returns whether the flag changed.
func (s *ImageViewState) ToggleAutoPlay() bool {
	if !s.autoPlay && s.items.Len() <= 1 {
		return false
	}
	s.autoPlay = !s.autoPlay
	s.notify(PropIsAutoPlay)
	return true
}

// ZoomIn multiplies the zoom factor by the configured step.
func (s *ImageViewState) ZoomIn() {
	s.setZoom(s.zoomFactor * s.settings.ZoomStep())
}

// ZoomOut divides the zoom factor by the configured step.
func (s *ImageViewState) ZoomOut() {
	s.setZoom(s.zoomFactor / s.settings.ZoomStep())
}

// ResetZoom fits the image to the viewport. Until both sizes are known it falls back to 1.0.
func (s *ImageViewState) ResetZoom() {
	if !s.RecomputeFitToViewport() {
		s.setZoom(1.0)
	}
}

// Rotate starts a quarter turn: the previous target becomes current and the target advances by 90°.
func (s *ImageViewState) Rotate() {
	if s.currentRotation != s.targetRotation {
		s.currentRotation = s.targetRotation
		s.notify(PropCurrentRotationAngle)
	}
	next := s.targetRotation + 90
	if next >= 360 {
		next = 0
	}
	s.setTargetRotation(next)
	s.RecomputeFitToViewport()
}

// SetViewportSize records the display area and refits.
func (s *ImageViewState) SetViewportSize(width, height float64) {
	s.viewportWidth, s.viewportHeight = width, height
	s.RecomputeFitToViewport()
}

// SetImageNaturalSize records the image pixel size and refits.
func (s *ImageViewState) SetImageNaturalSize(width, height float64) {
	s.imageWidth, s.imageHeight = width, height
	s.RecomputeFitToViewport()
}

// RecomputeFitToViewport sets the zoom so the rotated image fits the viewport and raises the
// one-shot fit signal. It reports false, changing nothing, while any dimension is not positive.
func (s *ImageViewState) RecomputeFitToViewport() bool {
	scale, ok := fitScale(s.viewportWidth, s.viewportHeight, s.imageWidth, s.imageHeight, s.targetRotation)
	if !ok {
		return false
	}
	s.setZoom(scale)
	s.shouldFit = true
	s.notify(PropShouldFitToViewport)
	return true
}

// ConsumeFitSignal returns the fit signal and clears it. Renderers call this after acting on it.
func (s *ImageViewState) ConsumeFitSignal() bool {
	if !s.shouldFit {
		return false
	}
	s.shouldFit = false
	s.notify(PropShouldFitToViewport)
	return true
}

// Commands reports which commands are executable right now.
func (s *ImageViewState) Commands() ImageCommands {
	sel := s.selected != nil
	n := s.items.Len()
	idle := !s.autoPlay
	return ImageCommands{
		Back:       idle && sel && s.selectedIndex > 0,
		Next:       idle && sel && s.selectedIndex < n-1,
		PlayPause:  n > 1 && sel,
		ZoomIn:     idle && sel && s.zoomFactor < s.settings.MaxZoom(),
		ZoomOut:    idle && sel && s.zoomFactor > s.settings.MinZoom(),
		ResetZoom:  idle && sel,
		Rotate:     idle && sel,
		OpenFolder: idle,
	}
}

func (s *ImageViewState) setZoom(z float64) {
	z = clamp(z, s.settings.MinZoom(), s.settings.MaxZoom())
	if z == s.zoomFactor {
		return
	}
	s.zoomFactor = z
	s.notify(PropZoomFactor)
}

func (s *ImageViewState) setTargetRotation(deg float64) {
	deg = normalizeAngle(deg)
	if deg == s.targetRotation {
		return
	}
	s.targetRotation = deg
	s.notify(PropTargetRotationAngle)
}

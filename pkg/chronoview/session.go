// Package chronoview keeps the view state of a photo viewer paired with a capture-time timeline.
package chronoview

import (
	"math"

	"k8s.io/klog/v2"
)

// Session owns the item collection and the two view states, and keeps their selection in step.
type Session struct {
	Items    *Collection
	Image    *ImageViewState
	Timeline *TimelineViewState
}

// NewSession builds both states over one empty collection.
func NewSession(s Settings) (*Session, error) {
	c := NewCollection(nil)
	iv, err := NewImageViewState(s, c)
	if err != nil {
		return nil, err
	}
	tv, err := NewTimelineViewState(s, c)
	if err != nil {
		return nil, err
	}

	ss := &Session{Items: c, Image: iv, Timeline: tv}
	iv.Subscribe(func(p Property) {
		if p == PropSelectedItem {
			tv.SetSelectedItem(iv.SelectedItem())
		}
	})
	tv.Subscribe(func(p Property) {
		if p == PropSelectedItem && tv.SelectedItem() != iv.SelectedItem() {
			iv.SetSelectedItem(tv.SelectedItem())
		}
	})
	return ss, nil
}

// Open replaces the items and selects the first one.
func (s *Session) Open(items []*TimelineItem) {
	klog.Infof("opening %d items", len(items))
	s.Items.Replace(items)
	if s.Items.Len() > 0 {
		s.Image.SetSelectedItem(s.Items.At(0))
	}
}

// Reload replaces the items, keeping the selection on the same path when it still exists.
func (s *Session) Reload(items []*TimelineItem) {
	path := ""
	if sel := s.Image.SelectedItem(); sel != nil {
		path = sel.Path
	}
	klog.V(1).Infof("reloading %d items (selected: %q)", len(items), path)

	s.Items.Replace(items)
	if s.Items.Len() == 0 {
		return
	}
	idx := s.Items.IndexOfPath(path)
	if idx < 0 {
		idx = 0
	}
	s.Image.SetSelectedIndex(idx)
}

// SelectTimelineItem is used when a marker is picked on the timeline.
func (s *Session) SelectTimelineItem(item *TimelineItem) {
	s.Timeline.SetSelectedItem(item)
}

// ToggleAutoPlay starts or stops autoplay, selecting the first item when starting without one.
func (s *Session) ToggleAutoPlay() bool {
	if !s.Image.ToggleAutoPlay() {
		return false
	}
	if s.Image.IsAutoPlay() && s.Image.SelectedIndex() < 0 {
		s.Image.SetSelectedIndex(0)
	}
	return true
}

// Tick is the autoplay timer callback.
func (s *Session) Tick() {
	if !s.Image.IsAutoPlay() {
		return
	}
	s.Image.StepNext()
}

// TimelineScrollOffset is the scroll position that centers the selected marker.
func (s *Session) TimelineScrollOffset(viewportWidth float64) float64 {
	sel := s.Image.SelectedItem()
	if sel == nil {
		return 0
	}
	pos := s.Timeline.CalculateMarkerPosition(sel.Timestamp)
	return math.Max(0, pos-viewportWidth/2)
}

// MarkerAt returns the item whose marker lies nearest to x, if it is within tolerance pixels.
func (s *Session) MarkerAt(x, tolerance float64) *TimelineItem {
	var best *TimelineItem
	bestDist := math.Inf(1)
	for _, it := range s.Items.Items() {
		d := math.Abs(s.Timeline.CalculateMarkerPosition(it.Timestamp) - x)
		if d <= tolerance && d < bestDist {
			best, bestDist = it, d
		}
	}
	return best
}

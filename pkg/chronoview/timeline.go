package chronoview

import (
	"math"
	"time"

	"k8s.io/klog/v2"
)

const (
	// DefaultTargetWidthPx is the rendered width the default scale aims for.
	DefaultTargetWidthPx = 1600.0
	// MinTargetWidthPx is the floor applied to SetTargetWidthPx.
	MinTargetWidthPx = 300.0
	// TimelineZoomFactor is the multiplier applied by ZoomIn and ZoomOut.
	TimelineZoomFactor = 1.5

	// timelineMargin is the leading plus trailing space reserved for labels.
	timelineMargin = 100.0
	// markerOffset is the leading half of timelineMargin.
	markerOffset = 50.0
	// minContentWidth is the smallest content width the default scale is computed for.
	minContentWidth = 200.0

	// Empirically tuned zoom range around the computed default.
	minPpsDivisor  = 20.0
	maxPpsMultiple = 40.0

	ppsEpsilon = 0.0000001
)

// TimelineViewState maps capture time onto horizontal pixels.
type TimelineViewState struct {
	notifier

	items       *Collection
	unsubscribe func()
	selected    *TimelineItem

	pixelsPerSecond        float64
	minPixelsPerSecond     float64
	maxPixelsPerSecond     float64
	defaultPixelsPerSecond float64
	absoluteMinPps         float64
	absoluteMaxPps         float64

	targetWidthPx float64
	minTimestamp  time.Time
	maxTimestamp  time.Time
	timelineWidth float64
	startText     string
	endText       string
	redraw        int

	locked    bool
	collapsed bool
}

// TimelineCommands reports which timeline commands can currently run.
type TimelineCommands struct {
	ZoomIn         bool
	ZoomOut        bool
	ResetZoom      bool
	CollapseExpand bool
}

// NewTimelineViewState returns a state over c, seeded with the collapsed flag from s.
func NewTimelineViewState(s Settings, c *Collection) (*TimelineViewState, error) {
	if err := checkSettings(s); err != nil {
		return nil, err
	}
	t := &TimelineViewState{
		absoluteMinPps: 0.00001,
		absoluteMaxPps: 10000.0,
		targetWidthPx:  DefaultTargetWidthPx,
		collapsed:      s.IsTimelineCollapsed(),
	}
	t.minPixelsPerSecond = t.clampAbsolute(0.001)
	t.maxPixelsPerSecond = t.clampAbsolute(10.0)
	t.defaultPixelsPerSecond = t.clampAbsolute(0.02)
	t.pixelsPerSecond = t.defaultPixelsPerSecond
	t.SetItems(c)
	return t, nil
}

func (t *TimelineViewState) Items() *Collection              { return t.items }
func (t *TimelineViewState) SelectedItem() *TimelineItem     { return t.selected }
func (t *TimelineViewState) PixelsPerSecond() float64        { return t.pixelsPerSecond }
func (t *TimelineViewState) MinPixelsPerSecond() float64     { return t.minPixelsPerSecond }
func (t *TimelineViewState) MaxPixelsPerSecond() float64     { return t.maxPixelsPerSecond }
func (t *TimelineViewState) DefaultPixelsPerSecond() float64 { return t.defaultPixelsPerSecond }
func (t *TimelineViewState) AbsoluteMinPps() float64         { return t.absoluteMinPps }
func (t *TimelineViewState) AbsoluteMaxPps() float64         { return t.absoluteMaxPps }
func (t *TimelineViewState) TargetWidthPx() float64          { return t.targetWidthPx }
func (t *TimelineViewState) MinTimestamp() time.Time         { return t.minTimestamp }
func (t *TimelineViewState) MaxTimestamp() time.Time         { return t.maxTimestamp }
func (t *TimelineViewState) TimelineWidth() float64          { return t.timelineWidth }
func (t *TimelineViewState) StartDateText() string           { return t.startText }
func (t *TimelineViewState) EndDateText() string             { return t.endText }
func (t *TimelineViewState) RedrawTrigger() int              { return t.redraw }
func (t *TimelineViewState) IsLocked() bool                  { return t.locked }
func (t *TimelineViewState) IsCollapsed() bool               { return t.collapsed }

// SelectedLabel describes the selected item, or "" when nothing is selected.
func (t *TimelineViewState) SelectedLabel() string {
	return t.selected.Label()
}

// SetItems replaces the collection reference, re-subscribes to it and resets the scale.
func (t *TimelineViewState) SetItems(c *Collection) {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if c == nil {
		c = NewCollection(nil)
	}
	t.items = c
	t.unsubscribe = c.Subscribe(t.onItemsChanged)
	t.notify(PropItems)
	t.onItemsChanged()
}

func (t *TimelineViewState) onItemsChanged() {
	if t.selected != nil && t.items.IndexOf(t.selected) < 0 {
		t.SetSelectedItem(nil)
	}
	t.RecomputeMetrics()
	t.RecomputeBoundsAndMaybeReset(true)
}

// SetSelectedItem changes the highlighted marker. An item that is not part of the collection is ignored.
func (t *TimelineViewState) SetSelectedItem(item *TimelineItem) {
	if item == t.selected {
		return
	}
	if item != nil && t.items.IndexOf(item) < 0 {
		klog.V(1).Infof("ignoring timeline selection of %q: not in collection", item.Path)
		return
	}
	t.selected = item
	t.notify(PropSelectedItem)
}

// SetPixelsPerSecond sets the scale, clamped to the current bounds.
func (t *TimelineViewState) SetPixelsPerSecond(v float64) {
	v = clamp(v, t.minPixelsPerSecond, t.maxPixelsPerSecond)
	if v == t.pixelsPerSecond {
		return
	}
	t.pixelsPerSecond = v
	t.notify(PropPixelsPerSecond)
	t.RecomputeMetrics()
}

// ZoomIn widens the timeline. Disabled while locked or with nothing selected.
func (t *TimelineViewState) ZoomIn() bool {
	if t.locked || t.selected == nil {
		return false
	}
	t.SetPixelsPerSecond(math.Min(t.pixelsPerSecond*TimelineZoomFactor, t.maxPixelsPerSecond))
	return true
}

// ZoomOut narrows the timeline. Disabled while locked or with nothing selected.
func (t *TimelineViewState) ZoomOut() bool {
	if t.locked || t.selected == nil {
		return false
	}
	t.SetPixelsPerSecond(math.Max(t.pixelsPerSecond/TimelineZoomFactor, t.minPixelsPerSecond))
	return true
}

// ResetZoom returns to the data-derived default scale.
func (t *TimelineViewState) ResetZoom() {
	t.SetPixelsPerSecond(t.defaultPixelsPerSecond)
}

// SetLocked enables or disables timeline zoom.
func (t *TimelineViewState) SetLocked(locked bool) {
	if locked == t.locked {
		return
	}
	t.locked = locked
	t.notify(PropIsLocked)
}

// ToggleCollapsed flips the collapsed flag. Persisting it is the caller's job.
func (t *TimelineViewState) ToggleCollapsed() {
	t.collapsed = !t.collapsed
	t.notify(PropIsCollapsed)
}

// SetAbsoluteBounds changes the hard limits for every scale value and recomputes bounds.
func (t *TimelineViewState) SetAbsoluteBounds(lo, hi float64) {
	if lo <= 0 || hi < lo {
		klog.Warningf("ignoring invalid absolute pps bounds [%g, %g]", lo, hi)
		return
	}
	t.absoluteMinPps, t.absoluteMaxPps = lo, hi
	t.RecomputeBoundsAndMaybeReset(false)
}

// SetTargetWidthPx sets the desired rendered width, floored at MinTargetWidthPx.
func (t *TimelineViewState) SetTargetWidthPx(px float64) {
	px = math.Max(MinTargetWidthPx, px)
	if px == t.targetWidthPx {
		return
	}
	t.targetWidthPx = px
	t.notify(PropTargetWidthPx)
	t.RecomputeBoundsAndMaybeReset(false)
}

// totalSeconds is the span of the data, never less than one second.
func (t *TimelineViewState) totalSeconds() float64 {
	return math.Max(t.maxTimestamp.Sub(t.minTimestamp).Seconds(), 1)
}

// RecomputeMetrics derives the timestamp range, width and labels from the items.
func (t *TimelineViewState) RecomputeMetrics() {
	items := t.items.Items()
	if len(items) == 0 {
		t.minTimestamp, t.maxTimestamp = time.Time{}, time.Time{}
		t.timelineWidth = 0
		t.startText, t.endText = "", ""
		t.notify(PropTimestamps, PropTimelineWidth)
		return
	}

	lo, hi := items[0].Timestamp, items[0].Timestamp
	for _, i := range items[1:] {
		if i.Timestamp.Before(lo) {
			lo = i.Timestamp
		}
		if i.Timestamp.After(hi) {
			hi = i.Timestamp
		}
	}
	t.minTimestamp, t.maxTimestamp = lo, hi
	t.timelineWidth = t.totalSeconds()*t.pixelsPerSecond + timelineMargin
	t.startText = lo.Format(LabelFormat)
	t.endText = hi.Format(LabelFormat)
	t.redraw++
	klog.V(2).Infof("timeline: %s .. %s, %.0fpx at %g px/s", t.startText, t.endText, t.timelineWidth, t.pixelsPerSecond)
	t.notify(PropTimestamps, PropTimelineWidth, PropRedrawTrigger)
}

// CalculateMarkerPosition returns the x offset of a marker for ts, or 0 with no items.
func (t *TimelineViewState) CalculateMarkerPosition(ts time.Time) float64 {
	if t.items.Len() == 0 {
		return 0
	}
	return markerOffset + ts.Sub(t.minTimestamp).Seconds()*t.pixelsPerSecond
}

// RecomputeBoundsAndMaybeReset derives the scale bounds from the data span and target width.
// The scale snaps to the new default when forced or when it falls outside the new bounds.
func (t *TimelineViewState) RecomputeBoundsAndMaybeReset(forceReset bool) {
	if t.items.Len() == 0 || t.minTimestamp.IsZero() || t.maxTimestamp.IsZero() {
		return
	}

	total := t.totalSeconds()
	desired := math.Max(minContentWidth, t.targetWidthPx-timelineMargin)
	computedDefault := desired / total
	computedMin := computedDefault / minPpsDivisor
	computedMax := computedDefault * maxPpsMultiple

	t.defaultPixelsPerSecond = t.clampAbsolute(computedDefault)
	t.minPixelsPerSecond = clamp(computedMin, t.absoluteMinPps, t.defaultPixelsPerSecond)
	t.maxPixelsPerSecond = clamp(computedMax, t.defaultPixelsPerSecond, t.absoluteMaxPps)
	t.notify(PropMinPixelsPerSecond, PropMaxPixelsPerSecond, PropDefaultPixelsPerSecond)

	if forceReset || t.pixelsPerSecond < t.minPixelsPerSecond || t.pixelsPerSecond > t.maxPixelsPerSecond {
		t.pixelsPerSecond = t.defaultPixelsPerSecond
		t.notify(PropPixelsPerSecond)
		t.RecomputeMetrics()
	}
}

// Commands reports which timeline commands are executable right now.
func (t *TimelineViewState) Commands() TimelineCommands {
	active := !t.locked && t.selected != nil
	return TimelineCommands{
		ZoomIn:         active && t.pixelsPerSecond < t.maxPixelsPerSecond,
		ZoomOut:        active && t.pixelsPerSecond > t.minPixelsPerSecond,
		ResetZoom:      active && math.Abs(t.pixelsPerSecond-t.defaultPixelsPerSecond) > ppsEpsilon,
		CollapseExpand: true,
	}
}

func (t *TimelineViewState) clampAbsolute(v float64) float64 {
	return clamp(v, t.absoluteMinPps, t.absoluteMaxPps)
}

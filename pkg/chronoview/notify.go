package chronoview

// Property names a piece of observable state that changed.
type Property string

const (
	PropSelectedItem         Property = "SelectedItem"
	PropSelectedIndex        Property = "SelectedIndex"
	PropItems                Property = "Items"
	PropZoomFactor           Property = "ZoomFactor"
	PropCurrentRotationAngle Property = "CurrentRotationAngle"
	PropTargetRotationAngle  Property = "TargetRotationAngle"
	PropIsAutoPlay           Property = "IsAutoPlay"
	PropShouldFitToViewport  Property = "ShouldFitToViewport"

	PropPixelsPerSecond        Property = "PixelsPerSecond"
	PropMinPixelsPerSecond     Property = "MinPixelsPerSecond"
	PropMaxPixelsPerSecond     Property = "MaxPixelsPerSecond"
	PropDefaultPixelsPerSecond Property = "DefaultPixelsPerSecond"
	PropTargetWidthPx          Property = "TargetWidthPx"
	PropTimelineWidth          Property = "TimelineWidth"
	PropTimestamps             Property = "Timestamps"
	PropRedrawTrigger          Property = "RedrawTrigger"
	PropIsLocked               Property = "IsLocked"
	PropIsCollapsed            Property = "IsCollapsed"
)

// Listener is called synchronously after a property changes.
type Listener func(Property)

// notifier fans property changes out to subscribers.
type notifier struct {
	next      int
	listeners map[int]Listener
	order     []int
}

// Subscribe registers l and returns a function that removes it.
func (n *notifier) Subscribe(l Listener) (cancel func()) {
	if n.listeners == nil {
		n.listeners = map[int]Listener{}
	}
	id := n.next
	n.next++
	n.listeners[id] = l
	n.order = append(n.order, id)

	return func() {
		delete(n.listeners, id)
		for i, o := range n.order {
			if o == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

func (n *notifier) notify(ps ...Property) {
	// copy so listeners may unsubscribe while being called
	ids := append([]int(nil), n.order...)
	for _, p := range ps {
		for _, id := range ids {
			if l, ok := n.listeners[id]; ok {
				l(p)
			}
		}
	}
}

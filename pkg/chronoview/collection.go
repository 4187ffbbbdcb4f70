package chronoview

// Collection is the ordered set of items shared by the view states.
// Both states hold the same *Collection; neither keeps its own copy.
type Collection struct {
	items []*TimelineItem
	subs  notifier
}

// NewCollection wraps items. The slice is copied.
func NewCollection(items []*TimelineItem) *Collection {
	return &Collection{items: append([]*TimelineItem(nil), items...)}
}

// Len returns the number of items. A nil collection is empty.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at i, or nil when i is out of range.
func (c *Collection) At(i int) *TimelineItem {
	if c == nil || i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// IndexOf returns the position of item, compared by identity, or -1.
func (c *Collection) IndexOf(item *TimelineItem) int {
	if c == nil || item == nil {
		return -1
	}
	for i, it := range c.items {
		if it == item {
			return i
		}
	}
	return -1
}

// IndexOfPath returns the position of the first item with the given path, or -1.
func (c *Collection) IndexOfPath(path string) int {
	if c == nil {
		return -1
	}
	for i, it := range c.items {
		if it.Path == path {
			return i
		}
	}
	return -1
}

// Items returns a copy of the items in order.
func (c *Collection) Items() []*TimelineItem {
	if c == nil {
		return nil
	}
	return append([]*TimelineItem(nil), c.items...)
}

// Replace swaps the contents and notifies subscribers.
func (c *Collection) Replace(items []*TimelineItem) {
	c.items = append([]*TimelineItem(nil), items...)
	c.subs.notify(PropItems)
}

// Append adds items to the end and notifies subscribers.
func (c *Collection) Append(items ...*TimelineItem) {
	if len(items) == 0 {
		return
	}
	c.items = append(c.items, items...)
	c.subs.notify(PropItems)
}

// Subscribe registers fn to be called after every mutation.
func (c *Collection) Subscribe(fn func()) (cancel func()) {
	return c.subs.Subscribe(func(Property) { fn() })
}

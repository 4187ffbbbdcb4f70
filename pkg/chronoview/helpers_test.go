package chronoview

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// itemsAt returns items taken at the given offsets (in seconds) from testStart.
func itemsAt(offsets ...int) []*TimelineItem {
	is := []*TimelineItem{}
	for i, o := range offsets {
		is = append(is, &TimelineItem{
			Path:        fmt.Sprintf("/photos/%03d.jpg", i),
			DisplayName: fmt.Sprintf("%03d.jpg", i),
			Timestamp:   testStart.Add(time.Duration(o) * time.Second),
		})
	}
	return is
}

func newImageState(t *testing.T, is []*TimelineItem) *ImageViewState {
	t.Helper()
	s, err := NewImageViewState(DefaultSettings, NewCollection(is))
	require.NoError(t, err)
	return s
}

func newTimelineState(t *testing.T, is []*TimelineItem) *TimelineViewState {
	t.Helper()
	s, err := NewTimelineViewState(DefaultSettings, NewCollection(is))
	require.NoError(t, err)
	return s
}

// record collects every property notification.
func record(n interface{ Subscribe(Listener) func() }) *[]Property {
	ps := &[]Property{}
	n.Subscribe(func(p Property) { *ps = append(*ps, p) })
	return ps
}

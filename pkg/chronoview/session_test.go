package chronoview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(DefaultSettings)
	require.NoError(t, err)
	return s
}

func TestSessionRequiresSettings(t *testing.T) {
	_, err := NewSession(nil)
	require.ErrorIs(t, err, ErrNilSettings)
}

func TestSessionSharesOneCollection(t *testing.T) {
	s := newSession(t)
	require.Same(t, s.Items, s.Image.Items())
	require.Same(t, s.Items, s.Timeline.Items())
}

func TestSessionOpenSelectsFirst(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 10, 20)
	s.Open(is)

	require.Equal(t, 0, s.Image.SelectedIndex())
	require.Same(t, is[0], s.Timeline.SelectedItem())
	require.InDelta(t, 75, s.Timeline.DefaultPixelsPerSecond(), 1e-9)
}

func TestSessionOpenEmpty(t *testing.T) {
	s := newSession(t)
	s.Open(nil)
	require.Equal(t, -1, s.Image.SelectedIndex())
	require.Nil(t, s.Timeline.SelectedItem())
}

func TestSessionSelectionSyncsBothWays(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 10, 20)
	s.Open(is)

	s.Image.StepNext()
	require.Same(t, is[1], s.Timeline.SelectedItem())

	s.SelectTimelineItem(is[2])
	require.Equal(t, 2, s.Image.SelectedIndex())
	require.Same(t, is[2], s.Image.SelectedItem())
}

func TestSessionIgnoresTimelineItemOutsideCollection(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 10)
	s.Open(is)

	s.SelectTimelineItem(&TimelineItem{Path: "x", Timestamp: testStart})
	require.Same(t, is[0], s.Image.SelectedItem())
	require.Same(t, is[0], s.Timeline.SelectedItem())

	s.Open(nil)
	s.SelectTimelineItem(is[1])
	require.Nil(t, s.Image.SelectedItem())
	require.Nil(t, s.Timeline.SelectedItem())
}

func TestSessionRejectsInvalidSettings(t *testing.T) {
	_, err := NewSession(StaticSettings{Min: 2, Max: 1, Step: 1.25})
	require.Error(t, err)
	_, err = NewSession(StaticSettings{Min: 0.1, Max: 8})
	require.Error(t, err)
}

func TestSessionSelectionNotifiesOncePerState(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 10, 20)
	s.Open(is)

	img := record(s.Image)
	tl := record(s.Timeline)
	s.SelectTimelineItem(is[2])

	count := func(ps []Property) int {
		n := 0
		for _, p := range ps {
			if p == PropSelectedItem {
				n++
			}
		}
		return n
	}
	require.Equal(t, 1, count(*img))
	require.Equal(t, 1, count(*tl))
}

func TestSessionReloadKeepsSelectionByPath(t *testing.T) {
	s := newSession(t)
	s.Open(itemsAt(0, 10, 20))
	s.Image.SetSelectedIndex(1)

	// same paths, new pointers, one item prepended
	fresh := append([]*TimelineItem{{Path: "/photos/new.jpg", Timestamp: testStart.Add(-5 * time.Second)}}, itemsAt(0, 10, 20)...)
	s.Reload(fresh)

	require.Equal(t, 2, s.Image.SelectedIndex())
	require.Equal(t, "/photos/001.jpg", s.Image.SelectedItem().Path)
	require.Same(t, s.Image.SelectedItem(), s.Timeline.SelectedItem())
}

func TestSessionReloadFallsBackToFirst(t *testing.T) {
	s := newSession(t)
	s.Open(itemsAt(0, 10))
	s.Image.SetSelectedIndex(1)

	s.Reload([]*TimelineItem{{Path: "/other/a.jpg", Timestamp: testStart}})
	require.Equal(t, 0, s.Image.SelectedIndex())
	require.Equal(t, "/other/a.jpg", s.Timeline.SelectedItem().Path)
}

func TestSessionAutoPlayTick(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 10, 20)
	s.Items.Replace(is)

	s.Tick()
	require.Equal(t, -1, s.Image.SelectedIndex(), "tick is ignored while paused")

	require.True(t, s.ToggleAutoPlay())
	require.Equal(t, 0, s.Image.SelectedIndex(), "starting autoplay selects the first item")

	s.Tick()
	s.Tick()
	require.Equal(t, 2, s.Image.SelectedIndex())
	s.Tick()
	require.Equal(t, 0, s.Image.SelectedIndex())
	require.Same(t, is[0], s.Timeline.SelectedItem())
}

func TestSessionTimelineScrollOffset(t *testing.T) {
	s := newSession(t)
	s.Open(itemsAt(0, 10))
	require.Equal(t, 0.0, s.TimelineScrollOffset(800))

	s.Image.SetSelectedIndex(1)
	// marker at 50 + 10*150 = 1550
	require.InDelta(t, 1150, s.TimelineScrollOffset(800), 1e-9)
}

func TestSessionMarkerAt(t *testing.T) {
	s := newSession(t)
	is := itemsAt(0, 4, 10)
	s.Open(is)

	// markers at 50, 650, 1550
	require.Same(t, is[1], s.MarkerAt(655, 10))
	require.Same(t, is[0], s.MarkerAt(45, 10))
	require.Nil(t, s.MarkerAt(1000, 10))
}

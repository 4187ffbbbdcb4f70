package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tstromberg/chronoview/pkg/chronoview"
)

var start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, n int) (Model, *chronoview.Session) {
	t.Helper()
	s, err := chronoview.NewSession(chronoview.DefaultSettings)
	require.NoError(t, err)

	is := []*chronoview.TimelineItem{}
	for i := 0; i < n; i++ {
		is = append(is, &chronoview.TimelineItem{
			Path:        fmt.Sprintf("/photos/%d.jpg", i),
			DisplayName: fmt.Sprintf("%d.jpg", i),
			Timestamp:   start.Add(time.Duration(i) * 10 * time.Second),
		})
	}
	s.Open(is)

	m := NewModel(s, Options{
		Root:        "/photos",
		NaturalSize: func(string) (int, int, error) { return 1600, 1200, nil },
	})
	return m, s
}

func press(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	nm, _ := m.Update(msg)
	return nm.(Model)
}

func TestWindowSizeSetsViewportAndTargetWidth(t *testing.T) {
	m, s := newTestModel(t, 2)
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 8 + 30})
	_ = nm

	w, h := s.Image.ViewportSize()
	require.Equal(t, 800.0, w)
	require.Equal(t, 480.0, h)
	require.Equal(t, 800.0, s.Timeline.TargetWidthPx())
	// 1600x1200 into 800x480
	require.InDelta(t, 0.4, s.Image.ZoomFactor(), 1e-9)
	require.False(t, s.Image.ShouldFitToViewport(), "fit signal consumed")
}

func TestNaturalSizeFedOnSelection(t *testing.T) {
	_, s := newTestModel(t, 2)
	w, h := s.Image.ImageNaturalSize()
	require.Equal(t, 1600.0, w)
	require.Equal(t, 1200.0, h)
}

func TestNavigationKeys(t *testing.T) {
	m, s := newTestModel(t, 3)
	m = press(m, "right")
	require.Equal(t, 1, s.Image.SelectedIndex())
	m = press(m, "left")
	m = press(m, "left")
	require.Equal(t, 2, s.Image.SelectedIndex())

	// vi-style aliases; lowercase l navigates and never locks the timeline
	m = press(m, "h")
	require.Equal(t, 1, s.Image.SelectedIndex())
	_ = press(m, "l")
	require.Equal(t, 2, s.Image.SelectedIndex())
	require.False(t, s.Timeline.IsLocked())
}

func TestRotateAndZoomKeys(t *testing.T) {
	m, s := newTestModel(t, 1)
	m = press(m, "r")
	require.Equal(t, 90.0, s.Image.TargetRotationAngle())
	z := s.Image.ZoomFactor()
	m = press(m, "+")
	require.InDelta(t, z*1.25, s.Image.ZoomFactor(), 1e-9)
	_ = press(m, "0")
	require.InDelta(t, 1.0, s.Image.ZoomFactor(), 1e-9)
}

func TestPlayPauseSchedulesTick(t *testing.T) {
	m, s := newTestModel(t, 3)
	nm, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = nm.(Model)
	require.True(t, s.Image.IsAutoPlay())
	require.NotNil(t, cmd)

	// manual navigation is disabled while playing
	m = press(m, "right")
	require.Equal(t, 0, s.Image.SelectedIndex())

	nm, cmd = m.Update(tickMsg(time.Now()))
	m = nm.(Model)
	require.Equal(t, 1, s.Image.SelectedIndex())
	require.NotNil(t, cmd)

	m = press(m, " ")
	require.False(t, s.Image.IsAutoPlay())
	_, cmd = m.Update(tickMsg(time.Now()))
	require.Nil(t, cmd)
	require.Equal(t, 1, s.Image.SelectedIndex())
}

func TestTimelineKeys(t *testing.T) {
	m, s := newTestModel(t, 2)
	pps := s.Timeline.PixelsPerSecond()
	m = press(m, "]")
	require.InDelta(t, pps*chronoview.TimelineZoomFactor, s.Timeline.PixelsPerSecond(), 1e-9)
	m = press(m, "=")
	require.InDelta(t, pps, s.Timeline.PixelsPerSecond(), 1e-9)

	m = press(m, "L")
	require.True(t, s.Timeline.IsLocked())
	m = press(m, "]")
	require.InDelta(t, pps, s.Timeline.PixelsPerSecond(), 1e-9)

	_ = press(m, "t")
	require.True(t, s.Timeline.IsCollapsed())
}

func TestReloadMessage(t *testing.T) {
	m, s := newTestModel(t, 2)
	nm, _ := m.Update(reloadMsg{items: []*chronoview.TimelineItem{{Path: "/photos/1.jpg", Timestamp: start}}})
	m = nm.(Model)
	require.Equal(t, 1, s.Items.Len())
	require.Equal(t, 0, s.Image.SelectedIndex())
	require.Contains(t, m.status, "reloaded 1")
}

func TestExportWithoutOutDir(t *testing.T) {
	m, _ := newTestModel(t, 1)
	m = press(m, "e")
	require.Contains(t, m.status, "-out")
}

func TestViewShowsSelection(t *testing.T) {
	m, _ := newTestModel(t, 3)
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := nm.(Model).View()
	require.Contains(t, out, "0.jpg")
	require.Contains(t, out, "1/3")
	require.Contains(t, out, "▲")
	require.True(t, strings.Contains(out, "2024.06.01 12:00:00"))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, 1)
	nm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Empty(t, nm.(Model).View())
}

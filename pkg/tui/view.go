package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the header, image pane, timeline strip and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.imagePane()))
	b.WriteString("\n")
	if !m.session.Timeline.IsCollapsed() {
		b.WriteString(m.timelineStrip())
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) header() string {
	iv := m.session.Image
	state := "paused"
	if iv.IsAutoPlay() {
		state = "playing"
	}
	pos := "-"
	if iv.SelectedIndex() >= 0 {
		pos = fmt.Sprintf("%d/%d", iv.SelectedIndex()+1, m.session.Items.Len())
	}
	return headerStyle.Render(fmt.Sprintf("chronoview  %s  %s  [%s]", filepath.Base(m.opts.Root), pos, state))
}

func (m Model) imagePane() string {
	iv := m.session.Image
	sel := iv.SelectedItem()
	if sel == nil {
		return "no images"
	}
	w, h := iv.ImageNaturalSize()
	return strings.Join([]string{
		selectedStyle.Render(sel.DisplayName),
		sel.Path,
		fmt.Sprintf("taken:    %s", sel.Timestamp.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("size:     %.0fx%.0f", w, h),
		fmt.Sprintf("zoom:     %.0f%%", iv.ZoomFactor()*100),
		fmt.Sprintf("rotation: %.0f°", iv.TargetRotationAngle()),
	}, "\n")
}

// timelineStrip draws one column per cell, scrolled so the selected marker is centered.
func (m Model) timelineStrip() string {
	tv := m.session.Timeline
	cols := m.width
	if cols <= 0 || m.session.Items.Len() == 0 {
		return ""
	}

	offset := m.session.TimelineScrollOffset(float64(cols * cellWidth))
	line := make([]string, cols)
	for i := range line {
		line[i] = dimStyle.Render("─")
	}
	sel := m.session.Image.SelectedItem()
	for _, it := range m.session.Items.Items() {
		x := int((tv.CalculateMarkerPosition(it.Timestamp) - offset) / cellWidth)
		if x < 0 || x >= cols {
			continue
		}
		if it == sel {
			continue
		}
		line[x] = markerStyle.Render("|")
	}
	if sel != nil {
		x := int((tv.CalculateMarkerPosition(sel.Timestamp) - offset) / cellWidth)
		if x >= 0 && x < cols {
			line[x] = selectedStyle.Render("▲")
		}
	}

	labels := fmt.Sprintf("%s  …  %s   %.3g px/s", tv.StartDateText(), tv.EndDateText(), tv.PixelsPerSecond())
	if tv.IsLocked() {
		labels += "  (locked)"
	}
	return strings.Join(line, "") + "\n" + dimStyle.Render(labels) + "\n" + tv.SelectedLabel()
}

func (m Model) helpLine() string {
	parts := []string{}
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}


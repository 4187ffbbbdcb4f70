package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/tstromberg/chronoview/pkg/chronoview"
)

// Update handles input, timer ticks and folder reloads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := max(1, msg.Height-chromeRows)
		m.session.Image.SetViewportSize(float64(msg.Width*cellWidth), float64(rows*cellHeight))
		m.session.Timeline.SetTargetWidthPx(float64(msg.Width * cellWidth))
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tickMsg:
		if !m.session.Image.IsAutoPlay() {
			return m, nil
		}
		m.session.Tick()
		cmd = m.tick()
	case changedMsg:
		m.status = "folder changed, reloading"
		cmd = tea.Batch(m.reload(), m.waitForChange())
	case reloadMsg:
		if msg.err != nil {
			klog.Errorf("reload: %v", msg.err)
			m.status = fmt.Sprintf("reload failed: %v", msg.err)
			break
		}
		m.session.Reload(msg.items)
		m.status = fmt.Sprintf("reloaded %d images", len(msg.items))
	}

	m.syncImage()
	if m.session.Image.ConsumeFitSignal() {
		klog.V(1).Infof("fit to viewport at %.2f", m.session.Image.ZoomFactor())
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	iv := m.session.Image
	tv := m.session.Timeline
	ic := iv.Commands()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Prev):
		if !iv.IsAutoPlay() {
			iv.StepPrevious()
		}
	case key.Matches(msg, m.keys.Next):
		if !iv.IsAutoPlay() {
			iv.StepNext()
		}
	case key.Matches(msg, m.keys.PlayPause):
		if m.session.ToggleAutoPlay() && iv.IsAutoPlay() {
			m.status = "playing"
			return m.tick()
		}
		m.status = "paused"
	case key.Matches(msg, m.keys.ZoomIn):
		if ic.ZoomIn {
			iv.ZoomIn()
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if ic.ZoomOut {
			iv.ZoomOut()
		}
	case key.Matches(msg, m.keys.ResetZoom):
		if ic.ResetZoom {
			iv.ResetZoom()
		}
	case key.Matches(msg, m.keys.Rotate):
		if ic.Rotate {
			iv.Rotate()
		}
	case key.Matches(msg, m.keys.TimelineIn):
		tv.ZoomIn()
	case key.Matches(msg, m.keys.TimelineOut):
		tv.ZoomOut()
	case key.Matches(msg, m.keys.TimelineReset):
		if tv.Commands().ResetZoom {
			tv.ResetZoom()
		}
	case key.Matches(msg, m.keys.Collapse):
		tv.ToggleCollapsed()
	case key.Matches(msg, m.keys.Lock):
		tv.SetLocked(!tv.IsLocked())
	case key.Matches(msg, m.keys.Export):
		m.export(func() (string, error) { return chronoview.ExportView(iv, m.opts.OutDir) })
	case key.Matches(msg, m.keys.CopyOriginal):
		m.export(func() (string, error) { return chronoview.CopyOriginal(iv.SelectedItem(), m.opts.OutDir) })
	}
	return nil
}

func (m *Model) export(fn func() (string, error)) {
	if m.opts.OutDir == "" {
		m.status = "no output directory (-out)"
		return
	}
	p, err := fn()
	if err != nil {
		klog.Errorf("export: %v", err)
		m.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	m.status = "wrote " + p
}

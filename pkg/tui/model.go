// Package tui draws a chronoview session in the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/tstromberg/chronoview/pkg/chronoview"
)

const (
	// cellWidth and cellHeight approximate the pixel size of one terminal cell.
	cellWidth  = 8
	cellHeight = 16

	// chromeRows is the number of rows not available to the image pane.
	chromeRows = 8

	defaultInterval = 2 * time.Second
)

// Options configures the viewer.
type Options struct {
	Root     string
	Interval time.Duration
	OutDir   string

	// Load re-reads the folder; used when Changes fires.
	Load func() ([]*chronoview.TimelineItem, error)
	// Changes signals that the folder changed on disk. May be nil.
	Changes <-chan struct{}
	// NaturalSize probes image dimensions. Defaults to chronoview.NaturalSize.
	NaturalSize func(path string) (int, int, error)
}

// Model is the root Bubble Tea model.
type Model struct {
	session *chronoview.Session
	opts    Options
	keys    keyMap

	width  int
	height int

	shownPath string
	status    string
	quitting  bool
}

type tickMsg time.Time

type changedMsg struct{}

type reloadMsg struct {
	items []*chronoview.TimelineItem
	err   error
}

// NewModel returns a viewer over s.
func NewModel(s *chronoview.Session, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.NaturalSize == nil {
		opts.NaturalSize = chronoview.NaturalSize
	}
	m := Model{session: s, opts: opts, keys: newKeyMap()}
	m.syncImage()
	return m
}

// Init starts listening for folder changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) waitForChange() tea.Cmd {
	if m.opts.Changes == nil {
		return nil
	}
	ch := m.opts.Changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) reload() tea.Cmd {
	if m.opts.Load == nil {
		return nil
	}
	load := m.opts.Load
	return func() tea.Msg {
		is, err := load()
		return reloadMsg{items: is, err: err}
	}
}

// syncImage feeds the natural size of a newly selected image into the image state.
func (m *Model) syncImage() {
	sel := m.session.Image.SelectedItem()
	if sel == nil {
		m.shownPath = ""
		return
	}
	if sel.Path == m.shownPath {
		return
	}
	m.shownPath = sel.Path
	w, h, err := m.opts.NaturalSize(sel.Path)
	if err != nil {
		klog.Warningf("size of %s: %v", sel.Path, err)
		return
	}
	m.session.Image.SetImageNaturalSize(float64(w), float64(h))
}

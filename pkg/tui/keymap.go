package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	Prev          key.Binding
	Next          key.Binding
	PlayPause     key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	ResetZoom     key.Binding
	Rotate        key.Binding
	TimelineIn    key.Binding
	TimelineOut   key.Binding
	TimelineReset key.Binding
	Collapse      key.Binding
	Lock          key.Binding
	Export        key.Binding
	CopyOriginal  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Prev:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		PlayPause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		ZoomIn:        key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "zoom in")),
		ZoomOut:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ResetZoom:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fit")),
		Rotate:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		TimelineIn:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "timeline in")),
		TimelineOut:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "timeline out")),
		TimelineReset: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "timeline reset")),
		Collapse:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "collapse")),
		Lock:          key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lock timeline")),
		Export:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export view")),
		CopyOriginal:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy original")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{
		k.Prev, k.Next, k.PlayPause, k.ZoomIn, k.ZoomOut, k.ResetZoom, k.Rotate,
		k.TimelineOut, k.TimelineIn, k.TimelineReset, k.Collapse, k.Lock, k.Export, k.CopyOriginal, k.Quit,
	}
}

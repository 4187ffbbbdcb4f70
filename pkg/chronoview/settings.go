package chronoview

import (
	"errors"
	"fmt"
)

// ErrNilSettings is returned when a view state is constructed without settings.
var ErrNilSettings = errors.New("settings provider is required")

// Settings supplies read-only configuration to the view states.
type Settings interface {
	MinZoom() float64
	MaxZoom() float64
	ZoomStep() float64
	IsTimelineCollapsed() bool
	// Validate reports unusable settings. A nil pointer implementation returns ErrNilSettings.
	Validate() error
}

func checkSettings(s Settings) error {
	if s == nil {
		return ErrNilSettings
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// StaticSettings is a fixed Settings value, handy for tests and embedding.
type StaticSettings struct {
	Min       float64
	Max       float64
	Step      float64
	Collapsed bool
}

func (s StaticSettings) MinZoom() float64          { return s.Min }
func (s StaticSettings) MaxZoom() float64          { return s.Max }
func (s StaticSettings) ZoomStep() float64         { return s.Step }
func (s StaticSettings) IsTimelineCollapsed() bool { return s.Collapsed }

// Validate checks that the zoom range is usable.
func (s StaticSettings) Validate() error {
	if s.Min <= 0 || s.Max < s.Min {
		return fmt.Errorf("invalid zoom range [%g, %g]", s.Min, s.Max)
	}
	if s.Step <= 1 {
		return fmt.Errorf("zoom step %g must be greater than 1", s.Step)
	}
	return nil
}

// DefaultSettings mirrors the defaults written to a fresh settings file.
var DefaultSettings = StaticSettings{Min: 0.1, Max: 8.0, Step: 1.25}

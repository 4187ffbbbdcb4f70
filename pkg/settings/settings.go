// Package settings loads and saves viewer settings as an XML file.
package settings

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"

	"github.com/tstromberg/chronoview/pkg/chronoview"
	"github.com/tstromberg/chronoview/pkg/validate"
)

// FileName is the settings file name inside the config directory.
const FileName = "Config.xml"

// Data is the persisted settings document.
type Data struct {
	XMLName  xml.Name `xml:"Settings"`
	Theme    string   `xml:"Theme" validate:"oneof=Dark Light"`
	Language string   `xml:"Language" validate:"required"`

	MinWidth            int  `xml:"MinWidth" validate:"gt=0"`
	MinHeight           int  `xml:"MinHeight" validate:"gt=0"`
	IsTimelineCollapsed bool `xml:"IsTimelineCollapsed"`

	MinZoom                float64 `xml:"MinZoom" validate:"gt=0"`
	MaxZoom                float64 `xml:"MaxZoom" validate:"gtefield=MinZoom"`
	ZoomStep               float64 `xml:"ZoomStep" validate:"gt=1"`
	ImageFormat            string  `xml:"ImageFormat" validate:"oneof=png jpg bmp gif ico tiff dds"`
	IsRecursiveImageSearch bool    `xml:"IsRecursiveImageSearch"`
}

// Defaults returns the settings written to a fresh file.
func Defaults() Data {
	return Data{
		Theme:     "Dark",
		Language:  "EN",
		MinWidth:  1280,
		MinHeight: 768,
		MinZoom:   0.1,
		MaxZoom:   8.0,
		ZoomStep:  1.25,

		ImageFormat: "jpg",
	}
}

// Settings is a settings file on disk and its current values.
type Settings struct {
	Path string `validate:"required"`
	Data Data
}

// DefaultPath returns the per-user settings location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "chronoview", FileName), nil
}

// Load reads path, creating it with defaults when it does not exist.
func Load(path string) (*Settings, error) {
	s := &Settings{Path: path, Data: Defaults()}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		klog.Infof("no settings at %s, writing defaults", path)
		return s, s.Save()
	}
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if err := xml.Unmarshal(bs, &s.Data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validate.Struct(s.Data); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	klog.V(1).Infof("loaded settings from %s: %+v", path, s.Data)
	return s, nil
}

// Save writes the settings to disk.
func (s *Settings) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	bs, err := xml.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	bs = append([]byte(xml.Header), bs...)
	if err := os.WriteFile(s.Path, bs, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *Settings) MinZoom() float64          { return s.Data.MinZoom }
func (s *Settings) MaxZoom() float64          { return s.Data.MaxZoom }
func (s *Settings) ZoomStep() float64         { return s.Data.ZoomStep }
func (s *Settings) IsTimelineCollapsed() bool { return s.Data.IsTimelineCollapsed }

// Validate checks the loaded values. A nil *Settings reports chronoview.ErrNilSettings.
func (s *Settings) Validate() error {
	if s == nil {
		return chronoview.ErrNilSettings
	}
	return validate.Struct(s.Data)
}

// SetTimelineCollapsed records the collapsed flag; call Save to persist it.
func (s *Settings) SetTimelineCollapsed(v bool) { s.Data.IsTimelineCollapsed = v }

// Extensions returns the file extensions matching the configured image format.
func (s *Settings) Extensions() []string {
	switch s.Data.ImageFormat {
	case "jpg":
		return []string{".jpg", ".jpeg"}
	case "tiff":
		return []string{".tif", ".tiff"}
	default:
		return []string{"." + s.Data.ImageFormat}
	}
}

// ParseExtensions splits a comma-separated extension list such as "jpg,.png".
// Blank entries are skipped; anything that is not alphanumeric is rejected.
func ParseExtensions(csv string) ([]string, error) {
	var exts []string
	for _, e := range strings.Split(csv, ",") {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e == "" {
			continue
		}
		if err := validate.Var(e, "alphanum,max=8"); err != nil {
			return nil, fmt.Errorf("extension %q: %w", e, err)
		}
		exts = append(exts, "."+strings.ToLower(e))
	}
	if len(exts) == 0 {
		return nil, chronoview.ErrNoExtensions
	}
	return exts, nil
}

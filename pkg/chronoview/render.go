package chronoview

import (
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/otiai10/copy"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	"k8s.io/klog/v2"
)

// ExportQuality is the JPEG quality used by ExportView.
var ExportQuality = 90

// NaturalSize returns the pixel dimensions of the image at path without decoding it fully.
func NaturalSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	ic, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to decode: %w", err)
	}
	return ic.Width, ic.Height, nil
}

// RenderView rotates img clockwise by angle degrees and scales it by zoom.
func RenderView(img image.Image, angle, zoom float64) (image.Image, error) {
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("empty image: %v", img.Bounds())
	}
	if zoom <= 0 {
		return nil, fmt.Errorf("invalid zoom %g", zoom)
	}

	out := img
	if a := normalizeAngle(angle); a != 0 {
		out = transform.Rotate(out, a, &transform.RotationOptions{ResizeBounds: true})
	}
	if zoom == 1 {
		return out, nil
	}

	x := int(math.Max(1, math.Round(float64(out.Bounds().Dx())*zoom)))
	y := int(math.Max(1, math.Round(float64(out.Bounds().Dy())*zoom)))
	return transform.Resize(out, x, y, transform.Lanczos), nil
}

// ExportView writes the currently selected image as displayed (rotation and zoom applied)
// into outDir, returning the written path.
func ExportView(s *ImageViewState, outDir string) (string, error) {
	i := s.SelectedItem()
	if i == nil {
		return "", fmt.Errorf("nothing selected")
	}

	img, err := imgio.Open(i.Path)
	if err != nil {
		return "", fmt.Errorf("imgio.Open: %w", err)
	}

	rimg, err := RenderView(img, s.TargetRotationAngle(), s.ZoomFactor())
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	p := filepath.Join(outDir, viewFileName(i, s.TargetRotationAngle(), s.ZoomFactor()))
	klog.Infof("exporting %s -> %s", i.Path, p)
	if err := imgio.Save(p, rimg, imgio.JPEGEncoder(ExportQuality)); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	return p, nil
}

// CopyOriginal copies the item's source file into outDir, returning the new path.
func CopyOriginal(i *TimelineItem, outDir string) (string, error) {
	if i == nil {
		return "", fmt.Errorf("nothing selected")
	}
	p := filepath.Join(outDir, filepath.Base(i.Path))
	klog.Infof("copying %s -> %s", i.Path, p)
	if err := copy.Copy(i.Path, p); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return p, nil
}

// viewFileName names an exported view after its source, rotation and zoom.
func viewFileName(i *TimelineItem, angle, zoom float64) string {
	base := filepath.Base(i.Path)
	noExt := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s@r%d_z%d.jpg", noExt, int(normalizeAngle(angle)), int(math.Round(zoom*100)))
}

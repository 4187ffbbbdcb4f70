// chronoview shows a folder of photos alongside a timeline of when they were taken.
package main

import (
	"context"
	"flag"
	"io"
	"time"

	"k8s.io/klog/v2"

	"github.com/tstromberg/chronoview/pkg/chronoview"
	"github.com/tstromberg/chronoview/pkg/settings"
	"github.com/tstromberg/chronoview/pkg/tui"
)

var (
	inDir        = flag.String("in", "", "Location of input directory")
	outDir       = flag.String("out", "", "Location of output directory for exported views")
	settingsPath = flag.String("settings", "", "Path to settings file (default: user config dir)")
	exts         = flag.String("ext", "", "comma-separated file extensions (default: from settings)")
	recursive    = flag.Bool("recursive", false, "include subdirectories (default: from settings)")
	useExif      = flag.Bool("exif", false, "use EXIF DateTimeOriginal as the timestamp (requires exiftool)")
	interval     = flag.Duration("interval", 2*time.Second, "autoplay interval")
	watchFlag    = flag.Bool("watch", false, "watch for changes to inDir and reload")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *inDir == "" {
		klog.Exitf("--in is a required flag")
	}

	path := *settingsPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			klog.Exitf("settings path: %v", err)
		}
		path = p
	}
	st, err := settings.Load(path)
	if err != nil {
		klog.Exitf("settings: %v", err)
	}

	opts := chronoview.LoadOptions{
		Recursive:  *recursive || st.Data.IsRecursiveImageSearch,
		Extensions: st.Extensions(),
	}
	if *exts != "" {
		e, err := settings.ParseExtensions(*exts)
		if err != nil {
			klog.Exitf("-ext: %v", err)
		}
		opts.Extensions = e
	}
	if *useExif {
		d, err := chronoview.NewExifDater()
		if err != nil {
			klog.Exitf("exif: %v", err)
		}
		defer func() {
			if err := d.Close(); err != nil {
				klog.Errorf("close exiftool: %v", err)
			}
		}()
		opts.Dater = d
	}

	load := func() ([]*chronoview.TimelineItem, error) {
		return chronoview.Load(*inDir, opts)
	}
	items, err := load()
	if err != nil {
		klog.Exitf("load failed: %v", err)
	}

	s, err := chronoview.NewSession(st)
	if err != nil {
		klog.Exitf("session: %v", err)
	}
	s.Open(items)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan struct{}
	if *watchFlag {
		changes, err = chronoview.Watch(ctx, *inDir, opts.Recursive)
		if err != nil {
			klog.Exitf("watch: %v", err)
		}
	}

	// Keep log output from corrupting the screen unless it is going to a file.
	quiet := flag.Lookup("log_file").Value.String() == ""
	if quiet {
		klog.LogToStderr(false)
		klog.SetOutput(io.Discard)
	}
	err = tui.Run(s, tui.Options{
		Root:     *inDir,
		Interval: *interval,
		OutDir:   *outDir,
		Load:     load,
		Changes:  changes,
	})
	if quiet {
		klog.LogToStderr(true)
	}
	if err != nil {
		klog.Errorf("viewer failed: %v", err)
	}

	if s.Timeline.IsCollapsed() != st.IsTimelineCollapsed() {
		st.SetTimelineCollapsed(s.Timeline.IsCollapsed())
		if err := st.Save(); err != nil {
			klog.Errorf("save settings: %v", err)
		}
	}
	klog.Flush()
}

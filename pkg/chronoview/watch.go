package chronoview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// WatchThrottle is how long Watch waits for a burst of events to settle.
var WatchThrottle = 100 * time.Millisecond

// Watch signals on the returned channel whenever files under root change.
// Bursts of events are coalesced into one signal. The channel closes when ctx is done.
func Watch(ctx context.Context, root string, recursive bool) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	root = filepath.Clean(root)
	dirs, err := watchDirs(root, recursive)
	if err != nil {
		w.Close()
		return nil, err
	}
	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				klog.V(1).Infof("event: %s", event)
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				if recursive && event.Has(fsnotify.Create) {
					if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
						if err := w.Add(event.Name); err != nil {
							klog.Warningf("watch %s: %v", event.Name, err)
						}
					}
				}
				if timer == nil {
					timer = time.NewTimer(WatchThrottle)
					fire = timer.C
				}
			case <-fire:
				timer, fire = nil, nil
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				klog.Warningf("watch error: %v", err)
			}
		}
	}()
	return out, nil
}

func watchDirs(root string, recursive bool) ([]string, error) {
	if !recursive {
		return []string{root}, nil
	}
	dirs := []string{}
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if !de.IsDir() {
				return nil
			}
			if path != root && filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}
			dirs = append(dirs, path)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}

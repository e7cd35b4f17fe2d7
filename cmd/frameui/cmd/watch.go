package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/go-drift/frameui/pkg/config"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// watchReplay replays the scene, then again after every change to the scene
// file or the config file, until ctx is done. Failed runs are printed and
// watching continues.
func watchReplay(ctx context.Context, opts replayOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	scenePath, err := filepath.Abs(opts.path)
	if err != nil {
		return err
	}
	cfgDir, err := filepath.Abs(configDir)
	if err != nil {
		return err
	}
	watched := map[string]bool{
		scenePath: true,
		filepath.Join(cfgDir, config.FileName):     true,
		filepath.Join(cfgDir, config.TOMLFileName): true,
	}
	for _, dir := range []string{filepath.Dir(scenePath), cfgDir} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
	}

	run := func() {
		if _, err := replayOnce(opts); err != nil {
			fmt.Fprintf(stdout, "error: %v\n", err)
		}
		fmt.Fprintf(stdout, "watching %s (Ctrl+C to stop)\n", opts.path)
	}
	run()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || !watched[name] {
				continue
			}
			debounce = time.After(watchDebounce)

		case <-debounce:
			debounce = nil
			fmt.Fprintln(stdout)
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch error: %v\n", err)
		}
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/jhenstridge/go-inotify"
)

// Watch re-parses filename whenever it is rewritten and hands valid
// configs to apply. Invalid configs are logged and skipped. The returned
// function stops watching and reports the error closing the watcher.
func Watch(filename string, apply func(*Config)) (func() error, error) {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create inotify watcher: %w", err)
	}

	_, err = watcher.Watch(filename)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("could not watch %s: %w", filename, err)
	}

	logger := log.New("config")
	go func() {
		for ev := range watcher.Event {
			if ev.Mask&inotify.IN_CLOSE_WRITE == 0 {
				continue
			}
			logger.Debugf("Reloading %s due to inotify event", filename)
			time.Sleep(100 * time.Millisecond)

			cfg, err := Parse(filename)
			if err != nil {
				logger.Errorf("Not applying %s: %s", filename, err)
				continue
			}
			apply(cfg)
		}
	}()

	stop := func() error {
		err := watcher.Close()
		if err != nil {
			logger.Errorf("could not stop watching %s: %s", filename, err)
			return fmt.Errorf("could not stop watching %s: %w", filename, err)
		}
		return nil
	}
	return stop, nil
}

// ApplyLogLevel is a Watch callback that follows log_level changes.
func ApplyLogLevel(cfg *Config) {
	if cfg.Level() != log.Level() {
		log.New("config").Infof("log level is now %s", cfg.Level())
		log.SetLevel(cfg.Level())
	}
}

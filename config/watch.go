package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github/itish2003/growthvision/logger"
)

// Watcher reloads the config file when its content changes and hands the new
// config to a callback. Only sessions created after a reload see new values.
type Watcher struct {
	path     string
	lastHash string
	onChange func(*Config)
}

// NewWatcher prepares a watcher for the given file. The file's current hash is
// recorded so that touching it without edits does not trigger a reload.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not determine absolute path for %s: %w", path, err)
	}
	hash, err := calculateFileHash(abs)
	if err != nil {
		return nil, fmt.Errorf("could not hash config file: %w", err)
	}
	return &Watcher{path: abs, lastHash: hash, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled. The parent directory is watched rather
// than the file because many editors save by writing a temp file and renaming.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.For("CONFIG")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to add path to watcher: %w", err)
	}
	log.WithField("file", w.path).Info("Watching config file")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handleChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Config watcher error")
		case <-ctx.Done():
			log.Info("Context cancelled, shutting down config watcher.")
			return nil
		}
	}
}

func (w *Watcher) handleChange() {
	log := logger.For("CONFIG").WithField("file", w.path)

	hash, err := calculateFileHash(w.path)
	if err != nil {
		log.WithError(err).Warn("Could not hash config file")
		return
	}
	if hash == w.lastHash {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		log.WithError(err).Error("Config changed but could not be loaded, keeping previous values")
		return
	}
	w.lastHash = hash
	log.Info("Config reloaded")
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func calculateFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

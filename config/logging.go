package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TFMV/miniofs/pkg/errors"
)

// SetupLogger creates a configured zerolog logger based on the
// configuration. Console output goes through the console writer; file
// output is JSON with size-based rotation.
func SetupLogger(cfg *Config) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	if cfg.Log.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.Log.FilePath != "" {
		fileWriter, err := newRotatingWriter(&cfg.Log)
		if err != nil {
			return zerolog.Logger{}, errors.Wrap(ErrLogSetupFailed, err, "failed to setup file writer")
		}
		writers = append(writers, fileWriter)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).With().
		Timestamp().
		Str("component", "miniofs").
		Logger()

	return logger, nil
}

// rotatingWriter appends to a log file and rotates it to a
// timestamped backup once it crosses the configured size.
type rotatingWriter struct {
	cfg  *LogConfig
	file *os.File
}

func newRotatingWriter(cfg *LogConfig) (*rotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, err
	}

	w := &rotatingWriter{cfg: cfg}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *rotatingWriter) open() error {
	file, err := os.OpenFile(w.cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	w.file = file
	return nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	if err := w.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

func (w *rotatingWriter) rotateIfNeeded() error {
	if w.cfg.MaxSize <= 0 {
		return nil
	}

	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < int64(w.cfg.MaxSize)*1024*1024 {
		return nil
	}

	w.file.Close()

	backup := fmt.Sprintf("%s.%s", w.cfg.FilePath, time.Now().Format("2006-01-02-15-04-05"))
	if err := os.Rename(w.cfg.FilePath, backup); err != nil {
		return err
	}

	w.pruneBackups()

	return w.open()
}

// pruneBackups keeps the newest MaxBackups rotated files. Failures
// here never block logging.
func (w *rotatingWriter) pruneBackups() {
	if w.cfg.MaxBackups <= 0 {
		return
	}

	dir := filepath.Dir(w.cfg.FilePath)
	base := filepath.Base(w.cfg.FilePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, base+".") {
			backups = append(backups, name)
		}
	}

	if len(backups) <= w.cfg.MaxBackups {
		return
	}

	// Backup names embed the rotation timestamp, so they sort oldest
	// first.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-w.cfg.MaxBackups] {
		os.Remove(filepath.Join(dir, name))
	}
}

// Close closes the underlying log file.
func (w *rotatingWriter) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

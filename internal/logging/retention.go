package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget describes a directory whose log files should be pruned.
type RetentionTarget struct {
	Directory string
	MaxAge    time.Duration
}

// CleanupOldLogs removes log files older than each target's MaxAge. Targets
// with a non-positive MaxAge or empty directory are skipped. Failures are
// logged and do not abort the sweep.
func CleanupOldLogs(logger *slog.Logger, targets ...RetentionTarget) {
	if logger == nil {
		logger = NewNop()
	}
	now := time.Now()
	for _, target := range targets {
		dir := strings.TrimSpace(target.Directory)
		if dir == "" || target.MaxAge <= 0 {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("read log directory", String("directory", dir), Error(err))
			}
			continue
		}
		cutoff := now.Add(-target.MaxAge)
		removed := 0
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				logger.Warn("remove old log file", String("path", path), Error(err))
				continue
			}
			removed++
		}
		if removed > 0 {
			logger.Info("pruned old log files", String("directory", dir), Int("removed", removed))
		}
	}
}

package sweep

import (
	"os"
	"time"

	"logsweep/internal/fs"
	"logsweep/internal/models"

	"go.uber.org/zap"
)

// Sweeper enforces a retention window over a flat directory of log files.
type Sweeper struct {
	Logger *zap.Logger
	DryRun bool
}

// Sweep deletes the files directly inside dir that match pattern and whose
// last-modified time is strictly before now minus maxAge. A file that cannot
// be removed is recorded in the result and does not stop the sweep of the
// remaining files. The returned error covers enumeration problems only; a
// missing directory is treated as empty and returns a zero-valued result.
func (s *Sweeper) Sweep(dir, pattern string, maxAge time.Duration) (models.SweepResult, error) {
	result := models.SweepResult{SweptAt: time.Now()}

	candidates, err := fs.Scan(dir, pattern)
	if err != nil {
		return result, err
	}

	cutoff := result.SweptAt.Add(-maxAge)
	for _, c := range candidates {
		if !c.ModTime.Before(cutoff) {
			continue
		}

		if s.DryRun {
			s.Logger.Info("would have removed file",
				zap.String("path", c.Path),
				zap.Time("mod_time", c.ModTime))
			continue
		}

		// Digest before removal: once the file is gone this is the only
		// trace of what it contained.
		digest, err := fs.Digest(c.Path)
		if err != nil {
			s.Logger.Warn("cannot digest file", zap.String("path", c.Path), zap.Error(err))
		}

		if err := os.Remove(c.Path); err != nil {
			s.Logger.Warn("cannot remove file", zap.String("path", c.Path), zap.Error(err))
			result.Failed = append(result.Failed, models.SweepFailure{
				Path:   c.Path,
				Reason: err.Error(),
			})
			continue
		}

		s.Logger.Info("removed old file",
			zap.String("path", c.Path),
			zap.Time("mod_time", c.ModTime))

		result.Deleted = append(result.Deleted, models.DeletedFile{
			Path:    c.Path,
			Size:    c.Size,
			ModTime: c.ModTime,
			Digest:  digest,
		})
		result.FreedBytes += c.Size
	}

	return result, nil
}

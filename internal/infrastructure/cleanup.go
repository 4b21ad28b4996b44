package infrastructure

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// RemoveTempFiles deletes the given temp files. Paths that are already gone
// are skipped, so the call is safe to repeat. Every path is attempted even
// when earlier removals fail; failures are aggregated into the returned
// error.
func RemoveTempFiles(logger *zap.Logger, paths ...string) error {
	var result *multierror.Error

	for _, path := range paths {
		if path == "" {
			continue
		}

		err := os.Remove(path)
		switch {
		case err == nil:
			logger.Debug("Removed temp file", zap.String("path", path))
		case os.IsNotExist(err):
			// already gone
		default:
			logger.Warn("Failed to remove temp file", zap.String("path", path), zap.Error(err))
			result = multierror.Append(result, fmt.Errorf("remove %s: %w", path, err))
		}
	}

	return result.ErrorOrNil()
}

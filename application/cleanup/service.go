package cleanup

import (
	"fmt"

	"media-transcribe/domain/media"

	"go.uber.org/zap"
)

// Service removes intermediate audio created during a run
type Service struct {
	fileChecker media.FileChecker
	remover     media.FileRemover
	logger      *zap.Logger
}

// NewService creates a new cleanup service
func NewService(fileChecker media.FileChecker, remover media.FileRemover, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileChecker: fileChecker,
		remover:     remover,
		logger:      logger,
	}
}

// RemoveScratch deletes the working audio file if it differs from the
// original input and still exists. The original input is never deleted.
// It reports whether a file was removed.
func (s *Service) RemoveScratch(originalPath, workingPath string) (bool, error) {
	if workingPath == "" || media.SamePath(originalPath, workingPath) {
		return false, nil
	}
	if !s.fileChecker.Exists(workingPath) {
		return false, nil
	}

	if err := s.remover.Remove(workingPath); err != nil {
		return false, fmt.Errorf("failed to remove scratch audio %s: %w", workingPath, err)
	}

	s.logger.Info("removed scratch audio", zap.String("path", workingPath))
	return true, nil
}

package infrastructure

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/logger"
)

// FileLoggerAdapter writes structured JSON log lines to a file
type FileLoggerAdapter struct {
	*SlogLoggerAdapter
	file *os.File
}

// NewFileLoggerAdapter opens (or creates) logPath in append mode
func NewFileLoggerAdapter(logPath string, level slog.Level) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLoggerAdapter{
		SlogLoggerAdapter: NewSlogLoggerAdapter(logger.NewWithWriter(file, level).Logger),
		file:              file,
	}, nil
}

// Close flushes and closes the underlying file
func (f *FileLoggerAdapter) Close() error {
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	return f.file.Close()
}

var _ ports.Logger = (*FileLoggerAdapter)(nil)

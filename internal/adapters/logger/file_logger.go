// Package logger writes the tracker's diagnostic log.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileLogger appends leveled lines to a log file. Debug lines are written
// only when debug is enabled.
type FileLogger struct {
	mu     sync.Mutex
	closer io.Closer
	logger *log.Logger
	debug  bool
}

// NewFileLogger opens (or creates) path for appending.
func NewFileLogger(path string, debug bool) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := New(file, debug)
	l.closer = file
	return l, nil
}

// New logs to w.
func New(w io.Writer, debug bool) *FileLogger {
	return &FileLogger{
		logger: log.New(w, "", log.LstdFlags),
		debug:  debug,
	}
}

func (l *FileLogger) write(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetPrefix(level + ": ")
	l.logger.Println(message)
}

func (l *FileLogger) Debug(message string) {
	if l.debug {
		l.write("DEBUG", message)
	}
}

func (l *FileLogger) Warn(message string) {
	l.write("WARN", message)
}

func (l *FileLogger) Error(message string) {
	l.write("ERROR", message)
}

// Close closes the log file, if any.
func (l *FileLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string) {}
func (Nop) Warn(string)  {}
func (Nop) Error(string) {}

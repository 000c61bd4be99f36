package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a log file and, once it grows past maxSize, keeps
// only the newest keepSize bytes.
type logFileWriter struct {
	mu       sync.Mutex
	file     *os.File
	maxSize  int64
	keepSize int64
}

func newLogFileWriter(path string) (*logFileWriter, error) {
	return openLogFile(path, maxLogSizeBytes, keepLogSizeBytes)
}

func openLogFile(path string, maxSize, keepSize int64) (*logFileWriter, error) {
	if keepSize > maxSize {
		return nil, fmt.Errorf("log keep size %d exceeds max size %d", keepSize, maxSize)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &logFileWriter{file: file, maxSize: maxSize, keepSize: keepSize}
	if err := w.trim(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

func (w *logFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *logFileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxSize {
		return nil
	}

	tail := make([]byte, w.keepSize)
	n, err := w.file.ReadAt(tail, size-w.keepSize)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end of file.
	_, err = w.file.Write(tail[:n])
	return err
}

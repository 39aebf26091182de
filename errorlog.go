package main

import (
	"log"
	"log/slog"
	"os"
)

// ErrorLog appends one JSON line per failed row to a durable log file.
// The log never blocks the batch: if the file cannot be opened the log
// degrades to a no-op, and individual write failures are swallowed.
type ErrorLog struct {
	logger *slog.Logger
	file   *os.File
}

// OpenErrorLog opens the log file in append mode
func OpenErrorLog(path string) *ErrorLog {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Warning: cannot open error log %s: %v", path, err)
		return &ErrorLog{}
	}
	return &ErrorLog{
		logger: slog.New(slog.NewJSONHandler(f, nil)),
		file:   f,
	}
}

// Log appends a failure entry for the given record
func (l *ErrorLog) Log(recordID string, err error) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Error("summarization failed", "id", recordID, "error", err.Error())
}

// Close closes the underlying file
func (l *ErrorLog) Close() {
	if l != nil && l.file != nil {
		l.file.Close()
	}
}

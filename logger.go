package mealmind

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// RequestLogger records per-request provenance: which tier answered, and why
// the generative tier was passed over when it was.
type RequestLogger interface {
	LogRequest(entry RequestLog) error
}

// NewRequestLogFilePath returns a file path based on a cleaned up generator
// name to make it easier to compare logs produced with different backends.
func NewRequestLogFilePath(generator string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(generator), ":", "_"),
	)
}

// RequestLog captures the outcome of a single advisor request.
type RequestLog struct {
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
	Tier       string    `json:"tier"` // "generative" or "fallback"
	Generator  string    `json:"generator,omitempty"`
	Reason     string    `json:"reason,omitempty"` // why the generative answer was rejected
	Budget     int       `json:"budget"`
	Adjusted   bool      `json:"adjusted,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// FileRequestLogger accumulates request entries and flushes them as one JSON
// document at the end of a session.
type FileRequestLogger struct {
	entries []RequestLog
	writer  io.Writer
}

// NewFileRequestLogger creates a new file-based request logger.
func NewFileRequestLogger(writer io.Writer) *FileRequestLogger {
	return &FileRequestLogger{
		entries: make([]RequestLog, 0),
		writer:  writer,
	}
}

// LogRequest buffers an entry (does not flush immediately).
func (l *FileRequestLogger) LogRequest(entry RequestLog) error {
	l.entries = append(l.entries, entry)
	return nil
}

// Flush writes all accumulated entries to the writer.
func (l *FileRequestLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"advisor_session": map[string]any{
			"timestamp": time.Now(),
			"requests":  l.entries,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal request log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write request log: %w", err)
	}

	l.entries = l.entries[:0]
	return nil
}

// NoOpRequestLogger discards all entries.
type NoOpRequestLogger struct{}

func NewNoOpRequestLogger() *NoOpRequestLogger {
	return &NoOpRequestLogger{}
}

func (NoOpRequestLogger) LogRequest(entry RequestLog) error {
	return nil
}

// StdoutRequestLogger writes each entry as a JSON line to stdout (for
// Lambda/CloudWatch).
type StdoutRequestLogger struct{}

func NewStdoutRequestLogger() *StdoutRequestLogger {
	return &StdoutRequestLogger{}
}

func (StdoutRequestLogger) LogRequest(entry RequestLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

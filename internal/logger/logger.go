// Package logger appends decision events to a JSONL audit log. Command
// text is redacted before it hits disk.
package logger

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/shellgate/shellgate/internal/redact"
)

// AuditEvent is one classification or approval outcome.
type AuditEvent struct {
	Timestamp  string   `json:"timestamp"`
	Command    string   `json:"command"`
	ToolName   string   `json:"tool_name,omitempty"`
	CallID     string   `json:"call_id,omitempty"`
	Status     string   `json:"status"`
	Reasons    []string `json:"reasons,omitempty"`
	UserAction string   `json:"user_action,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// AuditLogger serializes writes to a single append-only file.
type AuditLogger struct {
	file *os.File
	mu   sync.Mutex
}

func New(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &AuditLogger{file: file}, nil
}

func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Command = redact.Redact(event.Command)
	event.Reasons = redact.RedactAll(event.Reasons)
	if event.Error != "" {
		event.Error = redact.Redact(event.Error)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

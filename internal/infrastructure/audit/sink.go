package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/iho/goatm/internal/domain"
)

// Sink is the destination for audit events.
type Sink interface {
	Write(event domain.AuditEvent) error
	Close() error
}

// FileSink writes audit events as JSON lines to a file, rotating by size.
// Rotation keeps up to Backups old files (path.1 is the most recent).
type FileSink struct {
	path     string
	maxBytes int64
	backups  int

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewFileSink opens (or creates) the audit log file.
func NewFileSink(path string, maxBytes int64, backups int) (*FileSink, error) {
	s := &FileSink{
		path:     path,
		maxBytes: maxBytes,
		backups:  backups,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileSink) open() error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	s.file = file
	s.size = info.Size()
	return nil
}

// Write appends one event as a JSON line, rotating first if the file would
// exceed the size cap.
func (s *FileSink) Write(event domain.AuditEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 && s.size+int64(len(line)) > s.maxBytes {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	n, err := s.file.Write(line)
	s.size += int64(n)
	return err
}

// rotate shifts path.(n-1) -> path.n and reopens a fresh file. Caller holds
// the mutex.
func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return err
	}

	for i := s.backups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", s.path, i)
		to := fmt.Sprintf("%s.%d", s.path, i+1)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, to); err != nil {
				return err
			}
		}
	}

	if s.backups > 0 {
		if err := os.Rename(s.path, s.path+".1"); err != nil {
			return err
		}
	} else {
		if err := os.Remove(s.path); err != nil {
			return err
		}
	}

	return s.open()
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

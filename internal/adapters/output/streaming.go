// internal/adapters/output/streaming.go
package output

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// StreamingWriter escribe un array JSON de contactos a medida que llegan,
// sin retener la lista completa en memoria. El resultado es idéntico al de
// ContactsJSON.
type StreamingWriter struct {
	mu     sync.Mutex
	w      io.Writer
	count  int
	closed bool
	logger logx.Logger
}

// NewStreamingWriter crea un writer sobre w.
func NewStreamingWriter(w io.Writer, logger logx.Logger) *StreamingWriter {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &StreamingWriter{w: w, logger: logger.With("component", "streaming-writer")}
}

// Write añade un contacto al array.
func (s *StreamingWriter) Write(c *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("streaming writer closed")
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "failed to encode contact %q", c.ID)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return errors.Wrap(err, "failed to indent contact")
	}

	prefix := ",\n  "
	if s.count == 0 {
		prefix = "[\n  "
	}
	if _, err := io.WriteString(s.w, prefix+buf.String()); err != nil {
		return errors.Wrap(err, "failed to write contact")
	}
	s.count++
	return nil
}

// Count devuelve cuántos contactos se han escrito.
func (s *StreamingWriter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close cierra el array. Es idempotente.
func (s *StreamingWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	tail := "\n]\n"
	if s.count == 0 {
		tail = "[]\n"
	}
	if _, err := io.WriteString(s.w, tail); err != nil {
		return errors.Wrap(err, "failed to close JSON array")
	}
	s.logger.Debug("stream closed", "contacts", s.count)
	return nil
}

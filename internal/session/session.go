// Package session implements the framed request/response channel clients
// speak: each value travels as a ten digit ASCII length header followed by a
// JSON payload.
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

const headerLen = 10

// MaxFrameBytes bounds a single payload. Oversized frames abort the session
// rather than buffering without limit.
const MaxFrameBytes = 64 << 20

// Session wraps a client connection with the framing protocol. A session is
// owned by a single serving goroutine; it is not safe for concurrent use.
type Session struct {
	conn    net.Conn
	timeout time.Duration
}

// New wraps conn. A non-zero timeout applies per receive/send as an I/O
// deadline.
func New(conn net.Conn, timeout time.Duration) *Session {
	return &Session{conn: conn, timeout: timeout}
}

// Receive reads one framed value into v.
func (s *Session) Receive(v any) error {
	if err := s.setDeadline(); err != nil {
		return err
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(s.conn, header); err != nil {
		return fmt.Errorf("read frame header: %w", err)
	}
	length, err := strconv.Atoi(string(header))
	if err != nil {
		return fmt.Errorf("parse frame header %q: %w", header, err)
	}
	if length < 0 || length > MaxFrameBytes {
		return fmt.Errorf("frame length %d out of range", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(s.conn, payload); err != nil {
		return fmt.Errorf("read frame payload: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return nil
}

// Send writes v as one framed value.
func (s *Session) Send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if len(payload) > MaxFrameBytes {
		return fmt.Errorf("frame length %d out of range", len(payload))
	}

	if err := s.setDeadline(); err != nil {
		return err
	}

	frame := make([]byte, 0, headerLen+len(payload))
	frame = append(frame, fmt.Sprintf("%0*d", headerLen, len(payload))...)
	frame = append(frame, payload...)
	if _, err := s.conn.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// RemoteAddr exposes the peer address for logging.
func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *Session) setDeadline() error {
	if s.timeout == 0 {
		return nil
	}
	if err := s.conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	return nil
}

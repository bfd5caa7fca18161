// Package relayhttp is the single-relay control page served by the relay
// profile. Requests are read byte by byte off the connection and matched by
// substring; every response closes the connection.
package relayhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"irrigator/internal/logger"
)

// Switch is the relay being controlled.
type Switch interface {
	Set(id int, on bool) error
	On(id int) bool
}

const (
	pathOn  = "GET /relay/on"
	pathOff = "GET /relay/off"

	maxRequestBytes = 4096
	// DefaultTimeout bounds reading one request.
	DefaultTimeout = 2 * time.Second
)

// Server accepts connections and serves the relay page.
type Server struct {
	relay   Switch
	relayID int
	timeout time.Duration
	log     *logger.Logger
}

// New creates a server controlling relay relayID of sw.
func New(sw Switch, relayID int, timeout time.Duration, log *logger.Logger) *Server {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Server{relay: sw, relayID: relayID, timeout: timeout, log: logger.OrNop(log)}
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("relay listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. Connections are
// handled one at a time.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	s.log.Infow("relay_server_listening", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warnw("relay_accept_failed", "err", err)
			continue
		}
		s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	remote := conn.RemoteAddr().String()
	s.log.Debugw("relay_client_connected", "remote", remote)

	_ = conn.SetReadDeadline(time.Now().Add(s.timeout))
	header, err := readHeader(conn)
	if err != nil {
		s.log.Infow("relay_request_dropped", "remote", remote, "err", err)
		return
	}

	switch {
	case bytes.Contains(header, []byte(pathOn)):
		s.setRelay(true)
	case bytes.Contains(header, []byte(pathOff)):
		s.setRelay(false)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(s.timeout))
	if _, err := conn.Write(renderPage(s.relay.On(s.relayID))); err != nil {
		s.log.Infow("relay_write_failed", "remote", remote, "err", err)
	}
	s.log.Debugw("relay_client_disconnected", "remote", remote)
}

func (s *Server) setRelay(on bool) {
	if err := s.relay.Set(s.relayID, on); err != nil {
		s.log.Errorw("relay_set_failed", "relay", s.relayID, "on", on, "err", err)
		return
	}
	s.log.Infow("relay_switched", "relay", s.relayID, "on", on)
}

var errHeaderTooLarge = errors.New("request header too large")

// readHeader reads one byte at a time until the blank line ending the
// request header. Carriage returns are ignored.
func readHeader(conn net.Conn) ([]byte, error) {
	var (
		header []byte
		line   int
		one    = make([]byte, 1)
	)
	for {
		if _, err := conn.Read(one); err != nil {
			return header, err
		}
		header = append(header, one[0])
		switch one[0] {
		case '\r':
		case '\n':
			if line == 0 {
				return header, nil
			}
			line = 0
		default:
			line++
		}
		if len(header) > maxRequestBytes {
			return header, errHeaderTooLarge
		}
	}
}

func renderPage(on bool) []byte {
	state, button := "off", `<p><a href="/relay/on"><button class="button">ON</button></a></p>`
	if on {
		state, button = "on", `<p><a href="/relay/off"><button class="button button2">OFF</button></a></p>`
	}
	var b bytes.Buffer
	b.WriteString("HTTP/1.1 200 OK\r\n")
	b.WriteString("Content-type:text/html\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("\r\n")
	b.WriteString(`<!DOCTYPE html><html><head><meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<link rel="icon" href="data:,"><style>html { font-family: Helvetica; display: inline-block; margin: 0px auto; text-align: center;}`)
	b.WriteString(`.button { background-color: #4CAF50; border: none; color: white; padding: 16px 40px; text-decoration: none; font-size: 30px; margin: 2px; cursor: pointer;}`)
	b.WriteString(`.button2 {background-color: #555555;}</style></head>`)
	b.WriteString(`<body><h1>Relay Web Server</h1>`)
	fmt.Fprintf(&b, "<p>Relay - State %s</p>", state)
	b.WriteString(button)
	b.WriteString("</body></html>\r\n")
	return b.Bytes()
}

// Package ftpd implements a minimal RFC 959 FTP server: USER/PASS
// authentication against a pluggable credential store, per-user directory
// jails, and active-mode (connect-back) data transfers.
package ftpd

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/portside/ftpd/interfaces"
	"github.com/portside/ftpd/log"
	"github.com/portside/ftpd/log/zaplog"
	"github.com/portside/ftpd/providers"
	"github.com/portside/ftpd/utils"
)

// ErrServerClosed is returned by Serve and ListenAndServe after Shutdown.
var ErrServerClosed = errors.New("ftpd: server closed")

type Server struct {
	address        string
	port           int
	rootDir        string
	dataSourcePort int
	userProvider   interfaces.UserProvider
	fsys           afero.Fs
	logger         log.Logger

	mu         sync.Mutex
	listener   net.Listener
	sessions   map[net.Conn]*session
	inShutdown atomic.Bool
}

func defaultServer() *Server {
	return &Server{
		address:      "0.0.0.0",
		port:         2121,
		rootDir:      utils.AbsPath(""),
		logger:       zaplog.Default(),
		fsys:         afero.NewOsFs(),
		userProvider: providers.NewMemory(providers.HashPlain),
		sessions:     make(map[net.Conn]*session),
	}
}

func New(opts ...func(*Server)) *Server {
	svr := defaultServer()
	for _, o := range opts {
		o(svr)
	}
	return svr
}

// ListenAndServe listens on the configured address and serves control
// connections until Shutdown or a non-recoverable accept error.
func (s *Server) ListenAndServe() error {
	if err := s.fsys.MkdirAll(s.rootDir, 0o755); err != nil {
		return fmt.Errorf("create root dir: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return err
	}

	return s.Serve(listener)
}

// Serve accepts control connections on the listener, one goroutine per
// connection. Transient accept errors are retried; anything else is fatal to
// the whole server.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.inShutdown.Load() {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("ftp server listening", "addr", listener.Addr().String(), "root", s.rootDir)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.inShutdown.Load() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logger.Warn("transient accept error", "err", err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return err
		}
		go s.serveConn(conn)
	}
}

// Shutdown closes the listener and every open control connection. In-flight
// data workers are abandoned; they finish or fail on their own.
func (s *Server) Shutdown() error {
	s.inShutdown.Store(true)

	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	var result error
	if listener != nil {
		if err := listener.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for _, sess := range sessions {
		if err := sess.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			result = multierror.Append(result, err)
		}
	}
	return result
}

func (s *Server) serveConn(conn net.Conn) {
	sess := newSession(s, conn)

	s.mu.Lock()
	if s.inShutdown.Load() {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.sessions[conn] = sess
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	sess.serve()
}

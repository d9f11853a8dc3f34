package ftpd

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/portside/ftpd/log"
)

// dataEndpoint is the connect-back address announced by the last PORT command.
// It is single-use: consumed by the next data-bearing command, whatever the
// outcome of that command's connect attempt.
type dataEndpoint struct {
	host string
	port int
}

func (e *dataEndpoint) String() string {
	return fmt.Sprintf("%s:%d", e.host, e.port)
}

// session is the per-control-connection state. All fields are owned by the
// connection's own goroutine; data-transfer workers only ever receive copies
// of the values they need.
type session struct {
	server *Server
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	logger log.Logger

	pendingUser   string
	username      string
	authenticated bool

	// rootDir is the confinement boundary, fixed at login. currentDir is
	// always equal to rootDir or nested inside it.
	rootDir    string
	currentDir string
	guard      *guard

	dataEndpoint *dataEndpoint
	renameFrom   string

	closing bool
}

func newSession(server *Server, conn net.Conn) *session {
	remote := conn.RemoteAddr().String()
	return &session{
		server: server,
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
		logger: server.logger.With("remote", remote),
	}
}

// serve reads one command line at a time and dispatches it. The greeting goes
// out before anything is read. A read error or EOF ends the session.
func (s *session) serve() {
	s.reply(220, "Service ready for new user.")
	s.logger.Info("session opened")

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.logger.Warn("control read error", "err", err)
			}
			break
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		s.handleCommand(line)
		if s.closing {
			break
		}
	}

	s.logger.Info("session closed", "user", s.username)
}

// reply writes a single "<code> <text>" line to the control connection.
func (s *session) reply(code int, text string) {
	fmt.Fprintf(s.writer, "%d %s\r\n", code, text)
	if err := s.writer.Flush(); err != nil {
		s.logger.Warn("control write error", "err", err)
	}
}

// replyError maps filesystem and guard errors onto the protocol's file-error
// replies.
func (s *session) replyError(err error) {
	switch {
	case os.IsNotExist(err):
		s.reply(550, "No such file or directory.")
	case os.IsPermission(err):
		s.reply(550, "Permission denied.")
	default:
		s.reply(550, "Requested action not taken.")
	}
}

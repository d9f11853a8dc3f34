package ftpd

import (
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const dataDialTimeout = 10 * time.Second

func (s *session) handlePORT(arg string) {
	parts := strings.Split(arg, ",")
	if len(parts) != 6 {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	nums := make([]int, 6)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			s.reply(501, "Syntax error in parameters.")
			return
		}
		nums[i] = n
	}

	s.dataEndpoint = &dataEndpoint{
		host: fmt.Sprintf("%d.%d.%d.%d", nums[0], nums[1], nums[2], nums[3]),
		port: nums[4]*256 + nums[5],
	}
	s.reply(200, "PORT command successful.")
}

// openDataConn dials back to the announced endpoint. The endpoint is
// single-use and is cleared by the attempt itself, success or failure.
func (s *session) openDataConn() (net.Conn, error) {
	ep := s.dataEndpoint
	s.dataEndpoint = nil

	dialer := net.Dialer{Timeout: dataDialTimeout}
	if p := s.server.dataSourcePort; p > 0 {
		dialer.LocalAddr = &net.TCPAddr{Port: p}
	}
	return dialer.Dial("tcp", ep.String())
}

type transferResult struct {
	bytes int64
	err   error
}

// runTransfer executes fn in its own goroutine so a stalled client data socket
// never blocks the control path, then waits for it to finish. The worker owns
// the data connection and only sees copies of session values.
func (s *session) runTransfer(op string, conn net.Conn, fn func(net.Conn) (int64, error)) {
	done := make(chan transferResult, 1)
	go func() {
		defer conn.Close()
		n, err := fn(conn)
		done <- transferResult{bytes: n, err: err}
	}()

	res := <-done
	if res.err != nil {
		s.logger.Warn("transfer failed", "op", op, "user", s.username, "bytes", res.bytes, "err", res.err)
		s.reply(426, "Connection closed; transfer aborted.")
		return
	}
	s.logger.Info("transfer complete", "op", op, "user", s.username, "bytes", res.bytes)
	s.reply(226, "Transfer complete.")
}

func (s *session) handleLIST(_ string) {
	if s.dataEndpoint == nil {
		s.reply(425, "Can't open data connection.")
		return
	}

	conn, err := s.openDataConn()
	if err != nil {
		s.logger.Warn("data dial failed", "err", err)
		s.reply(425, "Can't open data connection.")
		return
	}

	s.reply(150, "File status okay; about to open data connection.")

	fsys := s.server.fsys
	dir := s.currentDir
	s.runTransfer("LIST", conn, func(c net.Conn) (int64, error) {
		return writeListing(fsys, dir, c)
	})
}

// writeListing emits one name per CRLF-terminated line. Hidden entries are
// omitted; enumeration order is whatever the filesystem yields.
func writeListing(fsys afero.Fs, dir string, w io.Writer) (int64, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		n, err := fmt.Fprintf(w, "%s\r\n", entry.Name())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *session) handleRETR(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}
	if s.dataEndpoint == nil {
		s.reply(425, "Can't open data connection.")
		return
	}

	p, err := s.guard.resolve(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}
	info, err := s.server.fsys.Stat(p)
	if err != nil || info.IsDir() {
		s.reply(550, "No such file or directory.")
		return
	}

	conn, err := s.openDataConn()
	if err != nil {
		s.logger.Warn("data dial failed", "err", err)
		s.reply(425, "Can't open data connection.")
		return
	}

	s.reply(150, "File status okay; about to open data connection.")

	fsys := s.server.fsys
	s.runTransfer("RETR", conn, func(c net.Conn) (int64, error) {
		return sendFile(fsys, p, c)
	})
}

func sendFile(fsys afero.Fs, p string, w io.Writer) (int64, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}

func (s *session) handleSTOR(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}
	if s.dataEndpoint == nil {
		s.reply(425, "Can't open data connection.")
		return
	}

	target, err := s.guard.resolveTarget(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	conn, err := s.openDataConn()
	if err != nil {
		s.logger.Warn("data dial failed", "err", err)
		s.reply(425, "Can't open data connection.")
		return
	}

	s.reply(150, "File status okay; about to open data connection.")

	fsys := s.server.fsys
	s.runTransfer("STOR", conn, func(c net.Conn) (int64, error) {
		return receiveFile(fsys, target, c)
	})
}

// receiveFile spools the upload into a hidden temp file next to the target and
// renames it into place only once the whole stream arrived cleanly. The final
// name is never left holding a partial upload.
func receiveFile(fsys afero.Fs, target string, r io.Reader) (int64, error) {
	dir := filepath.Dir(target)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(target)+".")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return n, err
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return n, err
	}
	if err := fsys.Rename(tmpName, target); err != nil {
		fsys.Remove(tmpName)
		return n, err
	}
	return n, nil
}

// TYPE and NOOP are accepted so standard clients can finish their login
// sequence. Transfers are binary-safe regardless of the declared type.
func (s *session) handleTYPE(arg string) {
	switch strings.ToUpper(arg) {
	case "I":
		s.reply(200, "Type set to I.")
	case "A":
		s.reply(200, "Type set to A.")
	default:
		s.reply(504, "Command not implemented for that parameter.")
	}
}

func (s *session) handleNOOP(_ string) {
	s.reply(200, "OK.")
}

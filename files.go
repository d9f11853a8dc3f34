package ftpd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// virtualPath maps an absolute filesystem path inside the jail onto the path
// shown to the client: "/<username>/..." with a trailing slash.
func (s *session) virtualPath(p string) string {
	rel := strings.TrimPrefix(p, s.rootDir)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	vp := path.Join("/", s.username, filepath.ToSlash(rel))
	if !strings.HasSuffix(vp, "/") {
		vp += "/"
	}
	return vp
}

func (s *session) handlePWD(_ string) {
	s.reply(257, s.virtualPath(s.currentDir))
}

func (s *session) handleCWD(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	p, err := s.guard.resolve(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	info, err := s.server.fsys.Stat(p)
	if err != nil || !info.IsDir() {
		s.reply(550, "No such file or directory.")
		return
	}

	s.currentDir = p
	s.reply(200, fmt.Sprintf("directory changed to %s.", s.virtualPath(p)))
}

func (s *session) handleMKD(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	p, err := s.guard.resolveTarget(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	if _, err := s.server.fsys.Stat(p); err == nil {
		s.reply(550, "Directory already exists.")
		return
	}

	if err := s.server.fsys.Mkdir(p, 0o755); err != nil {
		s.logger.Warn("mkdir failed", "path", p, "err", err)
		s.reply(550, "Failed to create directory.")
		return
	}

	s.logger.Info("directory created", "user", s.username, "path", p)
	s.reply(257, fmt.Sprintf("%q directory created.", arg))
}

func (s *session) handleRMD(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	p, err := s.guard.resolve(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	info, err := s.server.fsys.Stat(p)
	if err != nil || !info.IsDir() {
		s.reply(550, "No such file or directory.")
		return
	}

	if p == s.rootDir {
		s.reply(550, "Permission denied.")
		return
	}

	if err := s.server.fsys.Remove(p); err != nil {
		s.reply(550, "Failed to remove directory. Make sure it is empty.")
		return
	}

	s.logger.Info("directory removed", "user", s.username, "path", p)
	s.reply(250, fmt.Sprintf("%q directory removed.", arg))
}

func (s *session) handleDELE(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
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

	if err := s.server.fsys.Remove(p); err != nil {
		s.reply(550, "Failed to delete file.")
		return
	}

	s.logger.Info("file deleted", "user", s.username, "path", p)
	s.reply(250, fmt.Sprintf("%q file deleted.", arg))
}

func (s *session) handleRNFR(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	p, err := s.guard.resolve(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	s.renameFrom = p
	s.reply(350, "Requested file action pending further information.")
}

func (s *session) handleRNTO(arg string) {
	if s.renameFrom == "" {
		s.reply(503, "Bad sequence of commands.")
		return
	}
	from := s.renameFrom
	s.renameFrom = ""

	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	to, err := s.guard.resolveTarget(s.currentDir, arg)
	if err != nil {
		s.replyError(err)
		return
	}

	if err := s.server.fsys.Rename(from, to); err != nil {
		s.reply(550, "Failed to rename file.")
		return
	}

	s.logger.Info("renamed", "user", s.username, "from", from, "to", to)
	s.reply(250, "File successfully renamed.")
}

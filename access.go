package ftpd

import (
	"path/filepath"
)

func (s *session) handleUSER(arg string) {
	if arg == "" {
		s.reply(501, "Syntax error in parameters.")
		return
	}

	if _, ok := s.server.userProvider.Lookup(arg); !ok {
		s.logger.Warn("unknown user", "user", arg)
		s.reply(530, "Not logged in.")
		return
	}

	s.pendingUser = arg
	s.reply(331, "Username OK, need password.")
}

func (s *session) handlePASS(arg string) {
	if s.pendingUser == "" {
		s.reply(503, "Bad sequence of commands.")
		return
	}

	user := s.pendingUser
	s.pendingUser = ""

	if !s.server.userProvider.Verify(user, arg) {
		s.logger.Warn("authentication failed", "user", user)
		s.authenticated = false
		s.username = ""
		s.reply(530, "Not logged in.")
		return
	}

	// The user's home directory doubles as the confinement root. It is
	// created on first login.
	home := filepath.Join(s.server.rootDir, user)
	if err := s.server.fsys.MkdirAll(home, 0o755); err != nil {
		s.logger.Error("creating home directory", "user", user, "home", home, "err", err)
		s.reply(550, "Requested action not taken.")
		return
	}

	g, err := newGuard(s.server.fsys, home)
	if err != nil {
		s.logger.Error("resolving home directory", "user", user, "home", home, "err", err)
		s.reply(550, "Requested action not taken.")
		return
	}

	s.username = user
	s.authenticated = true
	s.guard = g
	s.rootDir = g.root
	s.currentDir = g.root

	s.logger.Info("user logged in", "user", user, "home", g.root)
	s.reply(230, "User logged in, proceed.")
}

func (s *session) handleQUIT() {
	s.reply(221, "Service closing control connection.")
	s.closing = true
}

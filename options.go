package ftpd

import (
	"github.com/spf13/afero"

	"github.com/portside/ftpd/interfaces"
	"github.com/portside/ftpd/log"
)

func WithAddress(val string) func(*Server) {
	return func(o *Server) {
		o.address = val
	}
}

func WithPort(val int) func(*Server) {
	return func(o *Server) {
		o.port = val
	}
}

// WithRootDir sets the directory holding the per-user home directories.
func WithRootDir(val string) func(*Server) {
	return func(o *Server) {
		o.rootDir = val
	}
}

// WithDataSourcePort binds outgoing data connections to a fixed local port
// (conventionally 20). Zero, the default, uses an ephemeral port.
func WithDataSourcePort(val int) func(*Server) {
	return func(o *Server) {
		o.dataSourcePort = val
	}
}

func WithUserProvider(provider interfaces.UserProvider) func(*Server) {
	return func(o *Server) {
		o.userProvider = provider
	}
}

func WithFilesystem(val afero.Fs) func(*Server) {
	return func(o *Server) {
		o.fsys = val
	}
}

func WithLogger(val log.Logger) func(*Server) {
	return func(o *Server) {
		o.logger = val
	}
}

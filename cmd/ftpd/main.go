package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/portside/ftpd"
	"github.com/portside/ftpd/config"
	"github.com/portside/ftpd/fs"
	"github.com/portside/ftpd/log"
	"github.com/portside/ftpd/log/zaplog"
	"github.com/portside/ftpd/providers"
)

var (
	// BuildVersion is the current version of the program
	BuildVersion = ""

	// Commit is the git hash of the program
	Commit = ""
)

func main() {
	var confFile string
	var onlyConf bool

	flag.StringVar(&confFile, "conf", "", "Configuration file")
	flag.BoolVar(&onlyConf, "conf-only", false, "Only create the conf")
	flag.Parse()

	logger := zaplog.Default()

	logger.Info("ftpd", "version", BuildVersion, "commit", Commit)

	autoCreate := onlyConf

	// Started without arguments this is probably a quick local run, so fall
	// back to a default file name and create it if needed.
	if confFile == "" {
		confFile = "ftpd.json"
		autoCreate = true
	}

	if autoCreate {
		if _, err := os.Stat(confFile); err != nil && os.IsNotExist(err) {
			logger.Warn("no conf file, creating one", "confFile", confFile)

			if err := os.WriteFile(confFile, confFileContent(), 0600); err != nil {
				logger.Warn("couldn't create conf file", "confFile", confFile)
			}
		}
	}

	conf, err := config.NewConfig(confFile, logger)
	if err != nil {
		logger.Error("can't load conf", "err", err)
		return
	}

	if onlyConf {
		logger.Warn("only creating conf")
		return
	}

	users, err := providers.NewCSVFile(conf.UsersFile, conf.PasswordScheme)
	if err != nil {
		logger.Error("can't load users", "file", conf.UsersFile, "err", err)
		return
	}

	fsys, err := fs.LoadFs(conf.Access)
	if err != nil {
		logger.Error("can't load filesystem", "fs", conf.Access.Fs, "err", err)
		return
	}

	host, portStr, err := net.SplitHostPort(conf.ListenAddr)
	if err != nil {
		logger.Error("bad listen address", "addr", conf.ListenAddr, "err", err)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Error("bad listen port", "addr", conf.ListenAddr, "err", err)
		return
	}
	if host == "" {
		host = "0.0.0.0"
	}

	server := ftpd.New(
		ftpd.WithAddress(host),
		ftpd.WithPort(port),
		ftpd.WithRootDir(conf.RootDir),
		ftpd.WithDataSourcePort(conf.DataSourcePort),
		ftpd.WithUserProvider(users),
		ftpd.WithFilesystem(fsys),
		ftpd.WithLogger(logger.With("component", "server")),
	)

	go signalHandler(server, logger)

	if err := server.ListenAndServe(); err != nil && err != ftpd.ErrServerClosed {
		logger.Error("problem listening", "err", err)
	}
}

func signalHandler(server *ftpd.Server, logger log.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	sig := <-ch
	logger.Warn("stopping", "signal", sig.String())

	if err := server.Shutdown(); err != nil {
		logger.Warn("problem stopping server", "err", err)
	}
}

func confFileContent() []byte {
	str := `{
  "listen_addr": ":2121",
  "root_dir": "data",
  "users_file": "users.csv",
  "password_scheme": "plain",
  "data_source_port": 0,
  "access": {
    "fs": "os"
  }
}`

	return []byte(str)
}

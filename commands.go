package ftpd

import (
	"strings"
)

// commandHandlers maps verbs that require authentication to their handlers.
// USER, PASS and QUIT are dispatched separately because they are legal in any
// session state.
var commandHandlers = map[string]func(*session, string){
	"PORT": (*session).handlePORT,
	"LIST": (*session).handleLIST,
	"CWD":  (*session).handleCWD,
	"PWD":  (*session).handlePWD,
	"RETR": (*session).handleRETR,
	"STOR": (*session).handleSTOR,
	"MKD":  (*session).handleMKD,
	"RMD":  (*session).handleRMD,
	"DELE": (*session).handleDELE,
	"RNFR": (*session).handleRNFR,
	"RNTO": (*session).handleRNTO,
	"TYPE": (*session).handleTYPE,
	"NOOP": (*session).handleNOOP,
}

// handleCommand splits a line into verb and argument and routes it. Only the
// first whitespace-delimited token after the verb is taken; arguments with
// embedded whitespace are not supported.
func (s *session) handleCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.reply(500, "Syntax error, command unrecognized.")
		return
	}

	verb := strings.ToUpper(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	logArg := arg
	if verb == "PASS" {
		logArg = "***"
	}
	s.logger.Debug("command", "verb", verb, "arg", logArg, "user", s.username)

	// A pending rename source survives only into an immediately following
	// RNTO; any other command invalidates it.
	if s.renameFrom != "" && verb != "RNTO" {
		s.renameFrom = ""
	}

	switch verb {
	case "USER":
		s.handleUSER(arg)
		return
	case "PASS":
		s.handlePASS(arg)
		return
	case "QUIT":
		s.handleQUIT()
		return
	}

	if !s.authenticated {
		s.reply(530, "Not logged in.")
		return
	}

	handler, ok := commandHandlers[verb]
	if !ok {
		s.reply(202, "Command not implemented.")
		return
	}
	handler(s, arg)
}

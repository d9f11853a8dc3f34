package utils

import (
	"os"
	"path/filepath"
)

// AbsPath resolves p to an absolute path; an empty p means the current working
// directory.
func AbsPath(p string) string {
	if p == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

package ftpd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// guard confines client-supplied paths to a root directory. Resolution is
// boundary-aware: a sibling directory whose name merely shares a prefix with
// the root (/data/alice vs /data/alice2) is outside.
//
// On the OS filesystem, paths are canonicalized with filepath.EvalSymlinks so
// that ".." components and symlinks cannot step over the boundary. Virtual
// backends (memory, s3, dropbox) have no symlinks; there a lexical clean plus
// an existence check is sufficient.
type guard struct {
	fsys afero.Fs
	root string
}

func newGuard(fsys afero.Fs, root string) (*guard, error) {
	root = filepath.Clean(root)
	if isOsFs(fsys) {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return nil, err
		}
		root = resolved
	}
	return &guard{fsys: fsys, root: root}, nil
}

func isOsFs(fsys afero.Fs) bool {
	_, ok := fsys.(*afero.OsFs)
	return ok
}

// resolve canonicalizes name against cwd and verifies the result stays inside
// the root. The target must exist; a missing path yields os.ErrNotExist and an
// escape yields os.ErrPermission.
func (g *guard) resolve(cwd, name string) (string, error) {
	real, err := g.canonical(g.candidate(cwd, name))
	if err != nil {
		return "", err
	}
	if !g.contains(real) {
		return "", os.ErrPermission
	}
	return real, nil
}

// resolveTarget resolves a path that is about to be created (STOR, MKD, RNTO
// destinations). If the full path exists it behaves like resolve; otherwise
// the parent directory is canonicalized and the cleaned base name re-appended,
// so a new entry can only ever land inside the root.
func (g *guard) resolveTarget(cwd, name string) (string, error) {
	p, err := g.resolve(cwd, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	cand := g.candidate(cwd, name)
	base := filepath.Base(cand)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", os.ErrPermission
	}

	parent, err := g.canonical(filepath.Dir(cand))
	if err != nil {
		return "", err
	}
	p = filepath.Join(parent, base)
	if !g.contains(p) {
		return "", os.ErrPermission
	}
	return p, nil
}

// candidate builds the pre-canonicalization path: absolute input is taken as
// is, anything else is joined to the current directory.
func (g *guard) candidate(cwd, name string) string {
	if strings.HasPrefix(name, string(filepath.Separator)) {
		return filepath.Clean(name)
	}
	return filepath.Join(cwd, name)
}

func (g *guard) canonical(p string) (string, error) {
	if isOsFs(g.fsys) {
		real, err := filepath.EvalSymlinks(p)
		if err != nil {
			switch {
			case os.IsNotExist(err):
				return "", os.ErrNotExist
			case os.IsPermission(err):
				return "", os.ErrPermission
			default:
				return "", err
			}
		}
		return real, nil
	}

	if _, err := g.fsys.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", os.ErrNotExist
		}
		return "", err
	}
	return p, nil
}

func (g *guard) contains(p string) bool {
	return p == g.root || strings.HasPrefix(p, g.root+string(filepath.Separator))
}

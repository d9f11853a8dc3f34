package ftpd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newOsGuard builds a directory tree with an escape hatch next to the jail:
//
//	base/
//	  alice/          <- jail root
//	    sub/
//	    file.txt
//	    outlink  -> base/alice2
//	    sublink  -> base/alice/sub
//	  alice2/         <- sibling sharing the root's name as a prefix
//	    secret.txt
func newOsGuard(t *testing.T) (*guard, string) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "alice")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "alice2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "alice2", "secret.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(base, "alice2"), filepath.Join(root, "outlink")))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "sublink")))

	g, err := newGuard(afero.NewOsFs(), root)
	require.NoError(t, err)
	return g, base
}

func TestGuardResolveInside(t *testing.T) {
	g, _ := newOsGuard(t)

	p, err := g.resolve(g.root, "file.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "file.txt"), p)

	p, err = g.resolve(g.root, "sub")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "sub"), p)

	// Relative to a subdirectory.
	p, err = g.resolve(filepath.Join(g.root, "sub"), "../file.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "file.txt"), p)

	// A symlink pointing back inside resolves to its target.
	p, err = g.resolve(g.root, "sublink")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "sub"), p)
}

func TestGuardResolveDotDotEscape(t *testing.T) {
	g, _ := newOsGuard(t)

	for _, name := range []string{"..", "../alice2", "../alice2/secret.txt", "sub/../../alice2"} {
		_, err := g.resolve(g.root, name)
		require.ErrorIs(t, err, os.ErrPermission, "name %q", name)
	}
}

func TestGuardResolveSymlinkEscape(t *testing.T) {
	g, _ := newOsGuard(t)

	_, err := g.resolve(g.root, "outlink")
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = g.resolve(g.root, "outlink/secret.txt")
	require.ErrorIs(t, err, os.ErrPermission)
}

// TestGuardSiblingPrefix checks that containment is boundary-aware: alice2
// starts with the bytes of the root path but is not inside it.
func TestGuardSiblingPrefix(t *testing.T) {
	g, base := newOsGuard(t)

	_, err := g.resolve(g.root, filepath.Join(base, "alice2"))
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = g.resolve(g.root, filepath.Join(base, "alice2", "secret.txt"))
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestGuardResolveMissing(t *testing.T) {
	g, _ := newOsGuard(t)

	_, err := g.resolve(g.root, "missing.txt")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGuardResolveAbsolute(t *testing.T) {
	g, _ := newOsGuard(t)

	// Absolute names are not joined to cwd; "/" is the real filesystem root
	// and lies outside the jail.
	_, err := g.resolve(g.root, "/")
	require.ErrorIs(t, err, os.ErrPermission)

	p, err := g.resolve(g.root, filepath.Join(g.root, "file.txt"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "file.txt"), p)
}

func TestGuardResolveTarget(t *testing.T) {
	g, _ := newOsGuard(t)

	// New name in an existing directory.
	p, err := g.resolveTarget(g.root, "new.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "new.txt"), p)

	p, err = g.resolveTarget(g.root, "sub/new.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "sub", "new.txt"), p)

	// Existing paths resolve as usual.
	p, err = g.resolveTarget(g.root, "file.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(g.root, "file.txt"), p)

	// The parent must exist.
	_, err = g.resolveTarget(g.root, "nodir/new.txt")
	require.ErrorIs(t, err, os.ErrNotExist)

	// Escapes are refused whether or not the target exists.
	_, err = g.resolveTarget(g.root, "../new.txt")
	require.ErrorIs(t, err, os.ErrPermission)
	_, err = g.resolveTarget(g.root, "outlink/new.txt")
	require.ErrorIs(t, err, os.ErrPermission)

	// Dotdots collapse lexically before resolution; these name the root.
	p, err = g.resolveTarget(g.root, "sub/..")
	require.NoError(t, err)
	require.Equal(t, g.root, p)
}

func TestGuardRootThroughSymlink(t *testing.T) {
	base := t.TempDir()
	real := filepath.Join(base, "real")
	require.NoError(t, os.MkdirAll(real, 0o755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(real, link))

	// The root itself is canonicalized, so later containment checks compare
	// resolved paths against resolved paths.
	g, err := newGuard(afero.NewOsFs(), link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	require.Equal(t, want, g.root)
}

func TestGuardMemMapFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/srv/alice/sub", 0o755))
	require.NoError(t, fsys.MkdirAll("/srv/bob", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/srv/alice/file.txt", []byte("x"), 0o644))

	g, err := newGuard(fsys, "/srv/alice")
	require.NoError(t, err)

	p, err := g.resolve(g.root, "sub")
	require.NoError(t, err)
	require.Equal(t, "/srv/alice/sub", p)

	// Lexical cleaning happens before the existence check, so dotdot escapes
	// are caught even on virtual backends.
	_, err = g.resolve(g.root, "../bob")
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = g.resolve(g.root, "ghost.txt")
	require.ErrorIs(t, err, os.ErrNotExist)

	p, err = g.resolveTarget(g.root, "sub/new.txt")
	require.NoError(t, err)
	require.Equal(t, "/srv/alice/sub/new.txt", p)

	_, err = g.resolveTarget(g.root, "../bob/new.txt")
	require.ErrorIs(t, err, os.ErrPermission)
}

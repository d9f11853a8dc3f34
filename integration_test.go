package ftpd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/require"
)

// TestStandardClient drives the server with an off-the-shelf FTP client
// library. The client only supports passive data connections, so this
// exercises the control-channel surface: login, directory management,
// rename and delete.
func TestStandardClient(t *testing.T) {
	addr, root := startTestServer(t)

	c, err := ftp.Dial(addr, ftp.DialWithTimeout(5*time.Second))
	require.NoError(t, err)

	require.NoError(t, c.Login("alice", "secret"))

	require.NoError(t, c.MakeDir("reports"))
	_, err = os.Stat(filepath.Join(root, "alice", "reports"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "alice", "draft.txt"), []byte("v1"), 0o644))
	require.NoError(t, c.Rename("draft.txt", "reports/final.txt"))
	_, err = os.Stat(filepath.Join(root, "alice", "reports", "final.txt"))
	require.NoError(t, err)

	require.NoError(t, c.Delete("reports/final.txt"))
	require.NoError(t, c.RemoveDir("reports"))

	require.NoError(t, c.Quit())
}

func TestStandardClientBadLogin(t *testing.T) {
	addr, _ := startTestServer(t)

	c, err := ftp.Dial(addr, ftp.DialWithTimeout(5*time.Second))
	require.NoError(t, err)
	defer c.Quit() //nolint:errcheck

	require.Error(t, c.Login("alice", "wrong"))
}

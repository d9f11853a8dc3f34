package fs

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portside/ftpd/models"
)

func TestLoadFsOs(t *testing.T) {
	for _, typ := range []string{"os", ""} {
		fsys, err := LoadFs(&models.Access{Fs: typ})
		require.NoError(t, err)
		assert.IsType(t, &afero.OsFs{}, fsys)
	}
}

func TestLoadFsMemory(t *testing.T) {
	fsys, err := LoadFs(&models.Access{Fs: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &afero.MemMapFs{}, fsys)
}

func TestLoadFsUnsupported(t *testing.T) {
	_, err := LoadFs(&models.Access{Fs: "gopherfs"})
	require.Error(t, err)

	var ufe *UnsupportedFsError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "gopherfs", ufe.Type)
}

func TestLoadFsReadOnly(t *testing.T) {
	fsys, err := LoadFs(&models.Access{Fs: "memory", ReadOnly: true})
	require.NoError(t, err)

	err = fsys.Mkdir("/x", 0o755)
	require.Error(t, err)
	assert.True(t, os.IsPermission(err))
}

func TestLoadFsS3MissingBucket(t *testing.T) {
	_, err := LoadFs(&models.Access{Fs: "s3", Params: map[string]string{"region": "eu-west-1"}})
	require.Error(t, err)
}

func TestLoadFsDropboxMissingToken(t *testing.T) {
	t.Setenv("DROPBOX_TOKEN", "")
	_, err := LoadFs(&models.Access{Fs: "dropbox"})
	require.Error(t, err)
}

package fs

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/portside/ftpd/fs/afos"
	"github.com/portside/ftpd/fs/dropbox"
	"github.com/portside/ftpd/fs/mem"
	"github.com/portside/ftpd/fs/s3"
	"github.com/portside/ftpd/models"
)

// UnsupportedFsError is returned when the described file system is not supported
type UnsupportedFsError struct {
	Type string
}

func (err *UnsupportedFsError) Error() string {
	return fmt.Sprintf("unsupported fs: %s", err.Type)
}

// LoadFs loads a file system from an access description
func LoadFs(access *models.Access) (afero.Fs, error) {
	var fsys afero.Fs
	var err error
	switch access.Fs {
	case "os", "":
		fsys, err = afos.LoadFs(access)
	case "memory":
		fsys, err = mem.LoadFs(access)
	case "s3":
		fsys, err = s3.LoadFs(access)
	case "dropbox":
		fsys, err = dropbox.LoadFs(access)
	default:
		fsys, err = nil, &UnsupportedFsError{Type: access.Fs}
	}

	if err == nil && access.ReadOnly {
		fsys = afero.NewReadOnlyFs(fsys)
	}

	return fsys, err
}

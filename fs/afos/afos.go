// Package afos exposes the local filesystem.
package afos

import (
	"github.com/spf13/afero"

	"github.com/portside/ftpd/models"
)

// LoadFs loads a file system from an access description.
//
// The backend is the plain OS filesystem; confinement to the served directory
// tree is enforced by the server's path guard, which needs real paths so it can
// resolve symlinks.
func LoadFs(_ *models.Access) (afero.Fs, error) {
	return afero.NewOsFs(), nil
}

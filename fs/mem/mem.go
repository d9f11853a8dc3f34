// Package mem provides an in-memory filesystem, mainly for tests and demos.
package mem

import (
	"github.com/spf13/afero"

	"github.com/portside/ftpd/models"
)

// LoadFs loads a file system from an access description
func LoadFs(_ *models.Access) (afero.Fs, error) {
	return afero.NewMemMapFs(), nil
}

package providers

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/portside/ftpd/models"
)

// NewCSVFile loads a credential table from a flat file with one
// "username,password" pair per line. The file is read exactly once; changes on
// disk after startup are not observed.
func NewCSVFile(path, scheme string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}

	m := NewMemory(scheme)
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("users file %s: line %d: want username,password", path, i+1)
		}
		m.Register(models.User{Username: rec[0], Password: rec[1]})
	}
	return m, nil
}

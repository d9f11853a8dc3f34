package models

// Access describes which filesystem backend serves the file tree and how to
// reach it. Params are backend specific (bucket, region, token, ...).
type Access struct {
	Fs       string            `json:"fs"`
	ReadOnly bool              `json:"read_only"`
	Params   map[string]string `json:"params"`
}

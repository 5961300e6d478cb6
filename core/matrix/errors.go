package matrix

import "errors"

var (
	ErrShape             = errors.New("matrix shape mismatch")
	ErrStorageConversion = errors.New("sparse storage conversion failed")
	ErrParse             = errors.New("failed to parse matrix")
)

package comm

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input matrix")
	ErrLengthMismatch    = errors.New("names length does not match objects length")
	ErrEmptyInput        = errors.New("no objects to merge")
	ErrDimensionMismatch = errors.New("attribute dimensions are inconsistent")
	ErrMissingAttribute  = errors.New("required attribute is not populated")
	ErrDatabaseAttached  = errors.New("ligand-receptor database already attached")
)

package db

import "errors"

// Domain-level database error sentinels.
var (
	// Phrase errors
	ErrDatasetNotFound = errors.New("dataset has no phrases")
	ErrUnknownDataset  = errors.New("unknown dataset")
)

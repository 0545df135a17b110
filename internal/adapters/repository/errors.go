package repository

import "errors"

// Sentinel kinds for entry store errors. Duplicate commits are not an
// error: Commit reports them as (false, nil).
var (
	ErrNotFound   = errors.New("entry not found")
	ErrInvalidDir = errors.New("invalid store directory")
)

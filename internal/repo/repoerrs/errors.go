package repoerrs

import "errors"

var (
	// ErrNotFound: the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict: a conditional write found the entity at a
	// different version than the one it loaded. The caller raced another
	// mutation and should re-read.
	ErrVersionConflict = errors.New("version conflict")
)

package repository

import "errors"

// ErrNotFound is returned when a requested record is absent from the store.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits a uniqueness constraint.
// The constraint, not any prior existence check, is the source of truth
// for "already exists" under concurrent writers.
var ErrDuplicate = errors.New("duplicate record")

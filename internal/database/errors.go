package database

import "errors"

// ErrDatabaseNotFound is returned by Open when the database file is missing
// and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("database not found")

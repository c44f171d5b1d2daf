package store

import "errors"

// ErrRoomNotFound is returned by GetRoom when no room has the given id.
// Callers rely on errors.Is to distinguish a dangling room reference from
// a backend failure.
var ErrRoomNotFound = errors.New("room not found")

package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSlideNotFound is returned when a slide id or index does not resolve.
var ErrSlideNotFound = errors.New("slide not found")

// ErrModeNotFound is returned when a slide has no mode or scenario with the requested name.
var ErrModeNotFound = errors.New("mode not found")

// ErrInvalidContent is returned when deck content fails schema or semantic validation.
var ErrInvalidContent = errors.New("invalid deck content")

// ErrUnknownFormat is returned when an export format is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// ErrUnknownCommand is returned when a remote presenter command is not recognized.
var ErrUnknownCommand = errors.New("unknown command")

// ErrNodeNotFound is returned when an action names a node the slide does not show.
var ErrNodeNotFound = errors.New("node not found")

// ErrGateClosed is returned when a decision is submitted while no gate is open.
var ErrGateClosed = errors.New("no decision pending")

// ErrLockFailed is returned when a distributed lock cannot be acquired.
var ErrLockFailed = errors.New("failed to acquire lock")

// ErrNoteNotFound is returned when a slide has no speaker notes.
var ErrNoteNotFound = errors.New("note not found")

// ErrNoDiagram is returned when a diagram is requested for a slide that has none.
var ErrNoDiagram = errors.New("slide has no diagram")

package domain

import "errors"

// Domain errors
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrNoPayload      = errors.New("no payload supplied")
	ErrViewerNotReady = errors.New("viewer is not ready")
)

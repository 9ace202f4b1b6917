package apperror

import "errors"

var (
	ErrRequestFailed     = errors.New("request to game service failed")
	ErrProtocolViolation = errors.New("board snapshot violates protocol")
	ErrCellDisabled      = errors.New("cell is not interactive")
	ErrNotBuilt          = errors.New("board is not built yet")
	ErrAlreadyBuilt      = errors.New("board is already built")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
)

package rest

import (
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-client/internal/board"
)

// FrameStore - the latest rendered frame, readable from any goroutine.
type FrameStore struct {
	frame atomic.Pointer[board.Frame]
}

func NewFrameStore() *FrameStore {
	return &FrameStore{}
}

func (that *FrameStore) Publish(frame board.Frame) {
	that.frame.Store(&frame)
}

// Load - false until the first frame is published.
func (that *FrameStore) Load() (board.Frame, bool) {
	frame := that.frame.Load()
	if frame == nil {
		return board.Frame{}, false
	}
	return *frame, true
}

package board

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type mockGateway struct {
	mock.Mock
}

func (that *mockGateway) FetchBoard(ctx context.Context) (*entity.Board, error) {
	args := that.Called(ctx)
	board, _ := args.Get(0).(*entity.Board)
	return board, args.Error(1)
}

func (that *mockGateway) ResetBoard(ctx context.Context) (*entity.Board, error) {
	args := that.Called(ctx)
	board, _ := args.Get(0).(*entity.Board)
	return board, args.Error(1)
}

func (that *mockGateway) ApplyMove(ctx context.Context, player entity.Player, quadIndex, cellIndex int) (*entity.Board, error) {
	args := that.Called(ctx, player, quadIndex, cellIndex)
	board, _ := args.Get(0).(*entity.Board)
	return board, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBuiltController - a controller built from a cleared board.
func newBuiltController(gw Gateway) *Controller {
	ctrl := NewController(discardLogger(), gw)
	if err := ctrl.Build(entity.NewBoard()); err != nil {
		panic(err)
	}
	return ctrl
}

// onlyQuadrantInteractive - a board where only quadrant q accepts moves.
func onlyQuadrantInteractive(board *entity.Board, q int) *entity.Board {
	for i := range board.Quadrants {
		board.Quadrants[i].IsInteractive = i == q
	}
	return board
}

package board

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const placeholder = "-"

// Request - a single round-trip to the game service. It captures everything
// it needs when created, so it can run away from the event loop.
type Request func(ctx context.Context) (*entity.Board, error)

// Cell - the view of one cell. Its address never changes after the build.
type Cell struct {
	id        string
	quadIndex int
	index     int

	text     string
	status   entity.Status
	disabled bool
}

func newCell(snapshot entity.Cell, interactive bool, quadIndex, index int) *Cell {
	cell := &Cell{
		id:        CellID(quadIndex, index),
		quadIndex: quadIndex,
		index:     index,
	}
	cell.render(snapshot, interactive)

	return cell
}

// CellID - node identifier of cell j in quadrant i.
func CellID(quadIndex, index int) string {
	return fmt.Sprintf("cell-%d-%d", quadIndex, index)
}

// render - the enabled state follows the quadrant flag only, never the cell's own status.
func (that *Cell) render(snapshot entity.Cell, interactive bool) {
	that.text = cellText(snapshot.Status)
	that.status = snapshot.Status
	that.disabled = !interactive
}

func cellText(status entity.Status) string {
	if status.IsPending() {
		return placeholder
	}
	return string(status)
}

// Click - builds the move request for this cell. A disabled cell can't be clicked.
func (that *Cell) Click(gw Gateway, player entity.Player) (Request, error) {
	if that.disabled {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCellDisabled, that.id)
	}

	quadIndex, index := that.quadIndex, that.index

	return func(ctx context.Context) (*entity.Board, error) {
		return gw.ApplyMove(ctx, player, quadIndex, index)
	}, nil
}

func (that *Cell) ID() string            { return that.id }
func (that *Cell) QuadIndex() int        { return that.quadIndex }
func (that *Cell) Index() int            { return that.index }
func (that *Cell) Text() string          { return that.text }
func (that *Cell) Status() entity.Status { return that.status }
func (that *Cell) Disabled() bool        { return that.disabled }

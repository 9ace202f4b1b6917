package board

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Quadrant - the view of one sub-board and the flags its cells read.
type Quadrant struct {
	id    string
	index int

	status      entity.Status
	interactive bool

	cells [entity.CellCount]*Cell
}

func newQuadrant(snapshot entity.Quadrant, index int) *Quadrant {
	quadrant := &Quadrant{
		id:          QuadrantID(index),
		index:       index,
		status:      snapshot.Status,
		interactive: snapshot.IsInteractive,
	}

	for j := range quadrant.cells {
		quadrant.cells[j] = newCell(snapshot.Cells[j], snapshot.IsInteractive, index, j)
	}

	return quadrant
}

func QuadrantID(index int) string {
	return fmt.Sprintf("quadrant-%d", index)
}

func (that *Quadrant) render(snapshot entity.Quadrant) {
	that.status = snapshot.Status
	that.interactive = snapshot.IsInteractive
}

func (that *Quadrant) ID() string            { return that.id }
func (that *Quadrant) Index() int            { return that.index }
func (that *Quadrant) Status() entity.Status { return that.status }
func (that *Quadrant) Interactive() bool     { return that.interactive }

// Cell - the j-th cell view, in positional order.
func (that *Quadrant) Cell(j int) *Cell {
	return that.cells[j]
}

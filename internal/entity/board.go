package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const (
	QuadrantCount = 9
	CellCount     = 9
)

// Status - outcome of a cell, a quadrant or the whole board as reported by the service.
type Status string

const (
	StatusPending Status = "pending"
	StatusX       Status = "X"
	StatusO       Status = "O"
	StatusTied    Status = "tied"
)

func (that Status) IsPending() bool {
	return that == StatusPending
}

type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Other - returns the opposite mark.
func (that Player) Other() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Cell struct {
	Status Status `json:"status"`
}

type Quadrant struct {
	Status        Status `json:"status"`
	IsInteractive bool   `json:"is_interactive"`
	Cells         []Cell `json:"state"`
}

// Board - a complete snapshot of the game as issued by the service.
type Board struct {
	Status     Status     `json:"status"`
	NextPlayer Player     `json:"next_player"`
	Quadrants  []Quadrant `json:"state"`
}

// NewBoard - returns a cleared board: everything pending, every quadrant playable, X to move.
func NewBoard() *Board {
	quadrants := make([]Quadrant, QuadrantCount)
	for i := range quadrants {
		cells := make([]Cell, CellCount)
		for j := range cells {
			cells[j] = Cell{Status: StatusPending}
		}

		quadrants[i] = Quadrant{
			Status:        StatusPending,
			IsInteractive: true,
			Cells:         cells,
		}
	}

	return &Board{
		Status:     StatusPending,
		NextPlayer: PlayerX,
		Quadrants:  quadrants,
	}
}

// Validate - checks that the snapshot has exactly 9 quadrants of exactly 9 cells.
func (that *Board) Validate() error {
	if that == nil {
		return fmt.Errorf("%w: empty snapshot", apperror.ErrProtocolViolation)
	}

	if len(that.Quadrants) != QuadrantCount {
		return fmt.Errorf("%w: got %d quadrants, want %d",
			apperror.ErrProtocolViolation, len(that.Quadrants), QuadrantCount)
	}

	for i, quadrant := range that.Quadrants {
		if len(quadrant.Cells) != CellCount {
			return fmt.Errorf("%w: quadrant %d has %d cells, want %d",
				apperror.ErrProtocolViolation, i, len(quadrant.Cells), CellCount)
		}
	}

	return nil
}

// Clone - deep copy, so a held snapshot can't be changed through another reference.
func (that *Board) Clone() *Board {
	if that == nil {
		return nil
	}

	clone := &Board{
		Status:     that.Status,
		NextPlayer: that.NextPlayer,
		Quadrants:  make([]Quadrant, len(that.Quadrants)),
	}

	for i, quadrant := range that.Quadrants {
		clone.Quadrants[i] = Quadrant{
			Status:        quadrant.Status,
			IsInteractive: quadrant.IsInteractive,
			Cells:         append([]Cell(nil), quadrant.Cells...),
		}
	}

	return clone
}

package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	RootID      = "board"
	IndicatorID = "next-player"
	ResetID     = "reset"

	ColorX = "lightcoral"
	ColorO = "cornflowerblue"
)

type Gateway interface {
	FetchBoard(ctx context.Context) (*entity.Board, error)
	ResetBoard(ctx context.Context) (*entity.Board, error)
	ApplyMove(ctx context.Context, player entity.Player, quadIndex, cellIndex int) (*entity.Board, error)
}

// Node - anything addressable by its identifier.
type Node interface {
	ID() string
}

// Indicator - shows whose move is next.
type Indicator struct {
	text  string
	color string
}

func (that *Indicator) ID() string    { return IndicatorID }
func (that *Indicator) Text() string  { return that.text }
func (that *Indicator) Color() string { return that.color }

// Control - a plain action node, e.g. the reset control.
type Control struct {
	id    string
	label string
}

func (that *Control) ID() string    { return that.id }
func (that *Control) Label() string { return that.label }

// Controller - owns the view tree and the cached next player.
// The tree is built once; afterwards Sync only overwrites attributes.
type Controller struct {
	logger *slog.Logger
	gw     Gateway

	built     bool
	status    entity.Status
	player    entity.Player
	indicator *Indicator
	reset     *Control

	quadrants [entity.QuadrantCount]*Quadrant
	cells     [entity.QuadrantCount][entity.CellCount]*Cell
	nodes     map[string]Node
}

func NewController(logger *slog.Logger, gw Gateway) *Controller {
	return &Controller{
		logger:    logger.With("component", "board"),
		gw:        gw,
		indicator: &Indicator{},
		reset:     &Control{id: ResetID, label: "Reset"},
	}
}

// Load - fetches the first snapshot and builds the tree from it. The
// snapshot is returned so the caller can record where the session started.
func (that *Controller) Load(ctx context.Context) (*entity.Board, error) {
	snapshot, err := that.gw.FetchBoard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}

	if err = that.Build(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Build - creates every node from the first snapshot. It runs once.
func (that *Controller) Build(snapshot *entity.Board) error {
	if that.built {
		return apperror.ErrAlreadyBuilt
	}

	if err := snapshot.Validate(); err != nil {
		that.logger.Error("refusing to build board", "error", err)
		return err
	}

	that.nodes = make(map[string]Node, 3+entity.QuadrantCount*(entity.CellCount+1))
	that.nodes[RootID] = that
	that.nodes[IndicatorID] = that.indicator
	that.nodes[ResetID] = that.reset

	for i := range that.quadrants {
		quadrant := newQuadrant(snapshot.Quadrants[i], i)
		that.quadrants[i] = quadrant
		that.nodes[quadrant.ID()] = quadrant

		for j := range that.cells[i] {
			that.cells[i][j] = quadrant.Cell(j)
			that.nodes[that.cells[i][j].ID()] = that.cells[i][j]
		}
	}

	that.renderRoot(snapshot)
	that.built = true

	that.logger.Debug("board built", "next_player", snapshot.NextPlayer, "status", snapshot.Status)

	return nil
}

// Sync - overwrites every node's attributes from a fresh snapshot. A snapshot
// with the wrong shape is rejected before any node is touched.
func (that *Controller) Sync(snapshot *entity.Board) error {
	if !that.built {
		return apperror.ErrNotBuilt
	}

	if err := snapshot.Validate(); err != nil {
		that.logger.Error("refusing to sync board", "error", err)
		return err
	}

	for i, quadrantSnapshot := range snapshot.Quadrants {
		that.quadrants[i].render(quadrantSnapshot)

		for j, cellSnapshot := range quadrantSnapshot.Cells {
			that.cells[i][j].render(cellSnapshot, quadrantSnapshot.IsInteractive)
		}
	}

	that.renderRoot(snapshot)

	that.logger.Debug("board synced", "next_player", snapshot.NextPlayer, "status", snapshot.Status)

	return nil
}

func (that *Controller) renderRoot(snapshot *entity.Board) {
	that.status = snapshot.Status
	that.player = snapshot.NextPlayer
	that.indicator.text = string(snapshot.NextPlayer)
	that.indicator.color = playerColor(snapshot.NextPlayer)
}

func playerColor(player entity.Player) string {
	if player == entity.PlayerX {
		return ColorX
	}
	return ColorO
}

// Click - the move request for cell (quadIndex, cellIndex) on behalf of the cached next player.
func (that *Controller) Click(quadIndex, cellIndex int) (Request, error) {
	cell, err := that.cell(quadIndex, cellIndex)
	if err != nil {
		return nil, err
	}

	return cell.Click(that.gw, that.player)
}

// Reset - clears the board, then reads it again; the read is what gets synced.
func (that *Controller) Reset() Request {
	gw := that.gw

	return func(ctx context.Context) (*entity.Board, error) {
		if _, err := gw.ResetBoard(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset board: %w", err)
		}

		snapshot, err := gw.FetchBoard(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch board after reset: %w", err)
		}

		return snapshot, nil
	}
}

// Apply - runs the request and syncs its answer. On failure nothing changes.
func (that *Controller) Apply(ctx context.Context, req Request) error {
	snapshot, err := req(ctx)
	if err != nil {
		that.logger.Warn("request failed, board left unchanged", "error", err)
		return err
	}

	return that.Sync(snapshot)
}

func (that *Controller) cell(quadIndex, cellIndex int) (*Cell, error) {
	if !that.built {
		return nil, apperror.ErrNotBuilt
	}

	if quadIndex < 0 || quadIndex >= entity.QuadrantCount || cellIndex < 0 || cellIndex >= entity.CellCount {
		return nil, fmt.Errorf("no cell at %d-%d", quadIndex, cellIndex)
	}

	return that.cells[quadIndex][cellIndex], nil
}

func (that *Controller) ID() string { return RootID }

func (that *Controller) Built() bool { return that.built }

// Status - overall board status as last synced.
func (that *Controller) Status() entity.Status { return that.status }

// NextPlayer - the cached player submitted with the next click.
func (that *Controller) NextPlayer() entity.Player { return that.player }

func (that *Controller) Indicator() *Indicator { return that.indicator }

func (that *Controller) ResetControl() *Control { return that.reset }

// Quadrant - the i-th quadrant view; nil before the build or out of range.
func (that *Controller) Quadrant(i int) *Quadrant {
	if !that.built || i < 0 || i >= entity.QuadrantCount {
		return nil
	}
	return that.quadrants[i]
}

// Cell - cell j of quadrant i; nil before the build or out of range.
func (that *Controller) Cell(i, j int) *Cell {
	cell, err := that.cell(i, j)
	if err != nil {
		return nil
	}
	return cell
}

// Node - looks a node up by identifier: board, next-player, reset, quadrant-<i>, cell-<i>-<j>.
func (that *Controller) Node(id string) (Node, bool) {
	node, ok := that.nodes[id]
	return node, ok
}

// NodeCount - number of addressable nodes; fixed once built.
func (that *Controller) NodeCount() int {
	return len(that.nodes)
}

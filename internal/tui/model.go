// Package tui drives the board in the terminal. The Bubble Tea event loop is
// the only writer of the view tree: requests run as commands and their
// answers come back as messages that Update syncs.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/board"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const gridSize = 9

type recorder interface {
	Save(ctx context.Context, snapshot *entity.Board) error
}

type publisher interface {
	Publish(frame board.Frame)
}

type feed interface {
	Next(ctx context.Context) (*entity.Board, error)
	Close() error
}

// boardMsg - a fresh snapshot from a click or a reset.
type boardMsg struct {
	snapshot *entity.Board
}

type failureMsg struct {
	err error
}

// feedMsg - a snapshot pushed by the service.
type feedMsg struct {
	snapshot *entity.Board
}

// feedErrMsg - the feed could not deliver a snapshot. A protocol violation
// only spoils that one push; anything else ends the subscription.
type feedErrMsg struct {
	err error
}

type Model struct {
	ctx       context.Context
	logger    *slog.Logger
	ctrl      *board.Controller
	recorder  recorder
	feed      feed
	publisher publisher

	row, col int
	inFlight int
	notice   string
}

type Option func(*Model)

// WithRecorder - every synced snapshot is also saved to the recorder.
func WithRecorder(r recorder) Option {
	return func(m *Model) { m.recorder = r }
}

// WithFeed - snapshots pushed by the service are synced as they arrive.
func WithFeed(f feed) Option {
	return func(m *Model) { m.feed = f }
}

// WithPublisher - every synced frame is handed to the publisher.
func WithPublisher(p publisher) Option {
	return func(m *Model) { m.publisher = p }
}

// New - the controller must already be built.
func New(ctx context.Context, logger *slog.Logger, ctrl *board.Controller, opts ...Option) Model {
	model := Model{
		ctx:    ctx,
		logger: logger.With("component", "tui"),
		ctrl:   ctrl,
		row:    gridSize / 2,
		col:    gridSize / 2,
	}

	for _, opt := range opts {
		opt(&model)
	}

	return model
}

func (m Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return m.waitFeed()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case boardMsg:
		m.inFlight--
		return m.sync(msg.snapshot)
	case failureMsg:
		m.inFlight--
		m.logger.Warn("request failed", "error", msg.err)
		m.notice = fmt.Sprintf("Something went wrong: %v", msg.err)
		return m, nil
	case feedMsg:
		next, cmd := m.sync(msg.snapshot)
		return next, tea.Batch(cmd, m.waitFeed())
	case feedErrMsg:
		return m.handleFeedErr(msg.err)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// the notice blocks everything until dismissed
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, gridSize-1)
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, gridSize-1)
	case "enter", " ":
		return m.click()
	case "r":
		return m.run(m.ctrl.Reset())
	}

	return m, nil
}

func (m Model) click() (tea.Model, tea.Cmd) {
	quadIndex, cellIndex := m.Cursor()

	req, err := m.ctrl.Click(quadIndex, cellIndex)
	if errors.Is(err, apperror.ErrCellDisabled) {
		return m, nil
	}

	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	return m.run(req)
}

// run - the request goes off the event loop; no dedup of requests already in flight.
func (m Model) run(req board.Request) (tea.Model, tea.Cmd) {
	m.inFlight++
	ctx := m.ctx

	return m, func() tea.Msg {
		snapshot, err := req(ctx)
		if err != nil {
			return failureMsg{err: err}
		}
		return boardMsg{snapshot: snapshot}
	}
}

func (m Model) sync(snapshot *entity.Board) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Sync(snapshot); err != nil {
		m.notice = fmt.Sprintf("Board could not be shown: %v", err)
		return m, nil
	}

	if m.publisher != nil {
		m.publisher.Publish(m.ctrl.Render())
	}

	if m.recorder == nil {
		return m, nil
	}

	ctx, rec, logger := m.ctx, m.recorder, m.logger

	return m, func() tea.Msg {
		if err := rec.Save(ctx, snapshot); err != nil {
			logger.Error("failed to record snapshot", "error", err)
		}
		return nil
	}
}

func (m Model) handleFeedErr(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, apperror.ErrProtocolViolation) {
		m.logger.Warn("pushed snapshot rejected", "error", err)
		m.notice = fmt.Sprintf("Board could not be shown: %v", err)
		return m, m.waitFeed()
	}

	m.logger.Warn("snapshot feed closed", "error", err)

	f, logger := m.feed, m.logger
	m.feed = nil
	if f == nil {
		return m, nil
	}

	return m, func() tea.Msg {
		if closeErr := f.Close(); closeErr != nil {
			logger.Error("failed to close snapshot feed", "error", closeErr)
		}
		return nil
	}
}

func (m Model) waitFeed() tea.Cmd {
	if m.feed == nil {
		return nil
	}

	ctx, f := m.ctx, m.feed

	return func() tea.Msg {
		snapshot, err := f.Next(ctx)
		if err != nil {
			return feedErrMsg{err: err}
		}
		return feedMsg{snapshot: snapshot}
	}
}

// Cursor - the focused (quadrant, cell) pair.
func (m Model) Cursor() (int, int) {
	quadIndex := (m.row/3)*3 + m.col/3
	cellIndex := (m.row%3)*3 + m.col%3

	return quadIndex, cellIndex
}

func (m Model) Notice() string { return m.notice }

func (m Model) InFlight() int { return m.inFlight }

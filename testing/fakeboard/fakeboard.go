// Package fakeboard runs an in-process stand-in for the game service so
// client code can be exercised over real HTTP in tests.
package fakeboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Request - one exchange as seen by the fake service.
type Request struct {
	Method    string
	Player    string
	QuadIndex string
	CellIndex string
	RequestID string
}

// MoveFunc - mutates the board for an accepted move.
type MoveFunc func(board *entity.Board, player entity.Player, quadIndex, cellIndex int)

type Service struct {
	*httptest.Server

	mu        sync.Mutex
	board     *entity.Board
	requests  []Request
	failures  []int
	move      MoveFunc
	resetBody bool
}

// New - starts the fake service with a cleared board and stops it when the test ends.
func New(t *testing.T) *Service {
	t.Helper()

	service := &Service{
		board: entity.NewBoard(),
		move:  DefaultMove,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/board", service.handleBoard)
	service.Server = httptest.NewServer(mux)

	t.Cleanup(service.Close)

	return service
}

// DefaultMove - marks the cell, hands the turn over and sends the next
// player to the quadrant matching the cell index. It does not detect wins.
func DefaultMove(board *entity.Board, player entity.Player, quadIndex, cellIndex int) {
	board.Quadrants[quadIndex].Cells[cellIndex].Status = entity.Status(player)
	board.NextPlayer = player.Other()

	for i := range board.Quadrants {
		board.Quadrants[i].IsInteractive = i == cellIndex
	}
}

// SetBoard - replaces the served board.
func (that *Service) SetBoard(board *entity.Board) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = board.Clone()
}

func (that *Service) Board() *entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.Clone()
}

func (that *Service) SetMove(move MoveFunc) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.move = move
}

// FailNext - the next len(statuses) requests answer with these statuses, in order.
func (that *Service) FailNext(statuses ...int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.failures = append(that.failures, statuses...)
}

// ResetWithBody - makes DELETE answer 200 with the cleared board instead of 204.
func (that *Service) ResetWithBody(enabled bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.resetBody = enabled
}

func (that *Service) Requests() []Request {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]Request(nil), that.requests...)
}

func (that *Service) handleBoard(w http.ResponseWriter, r *http.Request) {
	that.mu.Lock()
	defer that.mu.Unlock()

	query := r.URL.Query()
	that.requests = append(that.requests, Request{
		Method:    r.Method,
		Player:    query.Get("player"),
		QuadIndex: query.Get("quad_index"),
		CellIndex: query.Get("cell_index"),
		RequestID: r.Header.Get("X-Request-ID"),
	})

	if len(that.failures) > 0 {
		status := that.failures[0]
		that.failures = that.failures[1:]
		http.Error(w, http.StatusText(status), status)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeBoard(w, that.board)
	case http.MethodDelete:
		that.board = entity.NewBoard()
		if !that.resetBody {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeBoard(w, that.board)
	case http.MethodPut:
		quadIndex, qErr := strconv.Atoi(query.Get("quad_index"))
		cellIndex, cErr := strconv.Atoi(query.Get("cell_index"))
		player := entity.Player(query.Get("player"))
		if qErr != nil || cErr != nil || quadIndex < 0 || quadIndex >= entity.QuadrantCount ||
			cellIndex < 0 || cellIndex >= entity.CellCount {
			http.Error(w, "Move is not valid", http.StatusBadRequest)
			return
		}

		that.move(that.board, player, quadIndex, cellIndex)
		writeBoard(w, that.board)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func writeBoard(w http.ResponseWriter, board *entity.Board) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

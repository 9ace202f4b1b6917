package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-client/internal/board"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type frameSource interface {
	Load() (board.Frame, bool)
}

type rootNode struct {
	ID     string        `json:"id"`
	Status entity.Status `json:"status"`
}

type indicatorNode struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type controlNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type handlers struct {
	logger *slog.Logger
	frames frameSource
}

// frameHandler - the whole rendered board.
func (that *handlers) frameHandler(w http.ResponseWriter, _ *http.Request) {
	frame, ok := that.frames.Load()
	if !ok {
		http.Error(w, "Board not built yet", http.StatusServiceUnavailable)
		return
	}

	that.writeJSON(w, frame)
}

// nodeHandler - one node by its identifier, e.g. /nodes/cell-2-4.
func (that *handlers) nodeHandler(w http.ResponseWriter, r *http.Request) {
	frame, ok := that.frames.Load()
	if !ok {
		http.Error(w, "Board not built yet", http.StatusServiceUnavailable)
		return
	}

	node, ok := findNode(frame, r.PathValue("id"))
	if !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}

	that.writeJSON(w, node)
}

func findNode(frame board.Frame, id string) (any, bool) {
	switch id {
	case board.RootID:
		return rootNode{ID: board.RootID, Status: frame.Status}, true
	case board.IndicatorID:
		return indicatorNode{ID: board.IndicatorID, Text: frame.IndicatorText, Color: frame.IndicatorColor}, true
	case board.ResetID:
		return controlNode{ID: board.ResetID, Label: frame.ResetLabel}, true
	}

	for _, quadrant := range frame.Quadrants {
		if quadrant.ID == id {
			return quadrant, true
		}

		for _, cell := range quadrant.Cells {
			if cell.ID == id {
				return cell, true
			}
		}
	}

	return nil, false
}

func (that *handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

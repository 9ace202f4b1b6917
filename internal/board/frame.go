package board

import "github.com/rocketscienceinc/tictactoe-client/internal/entity"

// Frame - a value copy of every rendered attribute. Two frames are equal
// exactly when the board would look the same.
type Frame struct {
	Status         entity.Status                       `json:"status"`
	NextPlayer     entity.Player                       `json:"next_player"`
	IndicatorText  string                              `json:"indicator_text"`
	IndicatorColor string                              `json:"indicator_color"`
	ResetLabel     string                              `json:"reset_label"`
	Quadrants      [entity.QuadrantCount]QuadrantFrame `json:"quadrants"`
}

type QuadrantFrame struct {
	ID          string                      `json:"id"`
	Status      entity.Status               `json:"status"`
	Interactive bool                        `json:"interactive"`
	Cells       [entity.CellCount]CellFrame `json:"cells"`
}

type CellFrame struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Status   entity.Status `json:"status"`
	Disabled bool          `json:"disabled"`
}

// Render - captures the current state of the tree.
func (that *Controller) Render() Frame {
	frame := Frame{
		Status:         that.status,
		NextPlayer:     that.player,
		IndicatorText:  that.indicator.text,
		IndicatorColor: that.indicator.color,
		ResetLabel:     that.reset.label,
	}

	if !that.built {
		return frame
	}

	for i, quadrant := range that.quadrants {
		quadrantFrame := QuadrantFrame{
			ID:          quadrant.id,
			Status:      quadrant.status,
			Interactive: quadrant.interactive,
		}

		for j, cell := range that.cells[i] {
			quadrantFrame.Cells[j] = CellFrame{
				ID:       cell.id,
				Text:     cell.text,
				Status:   cell.status,
				Disabled: cell.disabled,
			}
		}

		frame.Quadrants[i] = quadrantFrame
	}

	return frame
}

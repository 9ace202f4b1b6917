package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const closeWait = time.Second

// Feed - snapshots pushed by the game service, one JSON board per text message.
type Feed struct {
	logger *slog.Logger
	conn   *websocket.Conn

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Dial - connects to the feed. The connection is closed when ctx is done.
func Dial(ctx context.Context, logger *slog.Logger, url string) (*Feed, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial feed %s: %w", apperror.ErrRequestFailed, url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	feed := &Feed{
		logger: logger.With("component", "feed"),
		conn:   conn,
		done:   make(chan struct{}),
	}

	go func() {
		select {
		case <-ctx.Done():
			feed.Close()
		case <-feed.done:
		}
	}()

	feed.logger.Info("subscribed to snapshot feed", "url", url)

	return feed, nil
}

// Next - blocks until the next snapshot arrives. A pushed message that is not
// a board comes back as apperror.ErrProtocolViolation and the feed stays
// usable; any other error means the connection is gone.
func (that *Feed) Next(ctx context.Context) (*entity.Board, error) {
	log := that.logger.With("method", "Next")

	if deadline, ok := ctx.Deadline(); ok {
		if err := that.conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("%w: set read deadline: %w", apperror.ErrRequestFailed, err)
		}
	}

	for {
		messageType, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("feed closed unexpectedly", "error", err)
			}
			return nil, fmt.Errorf("%w: read feed: %w", apperror.ErrRequestFailed, err)
		}

		if messageType != websocket.TextMessage {
			log.Debug("skipping non-text message", "type", messageType)
			continue
		}

		var board entity.Board
		if err = json.Unmarshal(data, &board); err != nil {
			log.Error("undecodable pushed board", "error", err)
			return nil, fmt.Errorf("%w: decode pushed board: %w", apperror.ErrProtocolViolation, err)
		}

		if err = board.Validate(); err != nil {
			log.Error("malformed pushed board", "error", err)
			return nil, err
		}

		return &board, nil
	}
}

// Close - says goodbye to the service and drops the connection. Safe to call twice.
func (that *Feed) Close() error {
	that.closeOnce.Do(func() {
		close(that.done)

		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = that.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(closeWait))

		that.closeErr = that.conn.Close()
	})

	return that.closeErr
}

package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/testing/fakeboard"
)

func newGateway(baseURL string) *Gateway {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, config.Service{BaseURL: baseURL, Timeout: time.Second}, nil)
}

func TestGateway_FetchBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the served board", func(t *testing.T) {
		// Given: a service holding a board with one X
		service := fakeboard.New(t)
		served := entity.NewBoard()
		served.Quadrants[1].Cells[7].Status = entity.StatusX
		served.NextPlayer = entity.PlayerO
		service.SetBoard(served)

		// When: fetching the board
		board, err := newGateway(service.URL).FetchBoard(ctx)

		// Then: the snapshot matches and a GET with a request id was sent
		require.NoError(t, err)
		assert.Equal(t, served, board)

		requests := service.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodGet, requests[0].Method)
		assert.NotEmpty(t, requests[0].RequestID)
	})

	t.Run("Non-success status is a request failure", func(t *testing.T) {
		// Given: a service that answers 500 once
		service := fakeboard.New(t)
		service.FailNext(http.StatusInternalServerError)

		// When: fetching the board
		board, err := newGateway(service.URL).FetchBoard(ctx)

		// Then: an opaque failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
		assert.Contains(t, err.Error(), "status 500")
		assert.Nil(t, board)
	})

	t.Run("Transport error is a request failure", func(t *testing.T) {
		// Given: a service that is already gone
		service := httptest.NewServer(http.NotFoundHandler())
		baseURL := service.URL
		service.Close()

		// When: fetching the board
		board, err := newGateway(baseURL).FetchBoard(ctx)

		// Then: an opaque failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
		assert.Nil(t, board)
	})

	t.Run("Garbage body is a request failure", func(t *testing.T) {
		// Given: a service answering something that is not JSON
		service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		t.Cleanup(service.Close)

		// When: fetching the board
		_, err := newGateway(service.URL).FetchBoard(ctx)

		// Then: an opaque failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
	})

	t.Run("Wrong shape is a protocol violation", func(t *testing.T) {
		// Given: a service answering a board with two quadrants
		service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"pending","next_player":"X","state":[
				{"status":"pending","is_interactive":true,"state":[]},
				{"status":"pending","is_interactive":true,"state":[]}]}`))
		}))
		t.Cleanup(service.Close)

		// When: fetching the board
		_, err := newGateway(service.URL).FetchBoard(ctx)

		// Then: the shape error is reported
		require.ErrorIs(t, err, apperror.ErrProtocolViolation)
	})

	t.Run("Empty body is a request failure", func(t *testing.T) {
		// Given: a service answering 200 without a body
		service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(service.Close)

		// When: fetching the board
		_, err := newGateway(service.URL).FetchBoard(ctx)

		// Then: a failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
	})
}

func TestGateway_ApplyMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the move in the query string", func(t *testing.T) {
		// Given: a fresh service
		service := fakeboard.New(t)
		gw := newGateway(service.URL + "/")

		// When: X plays quadrant 2, cell 4
		board, err := gw.ApplyMove(ctx, entity.PlayerX, 2, 4)

		// Then: the service saw a PUT with the three parameters
		require.NoError(t, err)
		requests := service.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, fakeboard.Request{
			Method:    http.MethodPut,
			Player:    "X",
			QuadIndex: "2",
			CellIndex: "4",
			RequestID: requests[0].RequestID,
		}, requests[0])

		// Then: the returned snapshot is the service's answer
		assert.Equal(t, entity.StatusX, board.Quadrants[2].Cells[4].Status)
		assert.Equal(t, entity.PlayerO, board.NextPlayer)
	})

	t.Run("Rejected move is a request failure", func(t *testing.T) {
		// Given: a service that refuses the next request
		service := fakeboard.New(t)
		service.FailNext(http.StatusBadRequest)

		// When: submitting a move
		board, err := newGateway(service.URL).ApplyMove(ctx, entity.PlayerO, 0, 0)

		// Then: an opaque failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
		assert.Nil(t, board)
	})

	t.Run("Does not validate indices", func(t *testing.T) {
		// Given: a service that accepts anything
		var query string
		service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			http.Error(w, "Move is not valid", http.StatusBadRequest)
		}))
		t.Cleanup(service.Close)

		// When: submitting an out-of-range move
		_, err := newGateway(service.URL).ApplyMove(ctx, entity.PlayerX, 12, -1)

		// Then: it is relayed as-is and the service decides
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
		assert.Equal(t, "cell_index=-1&player=X&quad_index=12", query)
	})
}

func TestGateway_ResetBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("No content", func(t *testing.T) {
		// Given: a service with a move on the board, answering 204 on reset
		service := fakeboard.New(t)
		gw := newGateway(service.URL)
		_, err := gw.ApplyMove(ctx, entity.PlayerX, 0, 0)
		require.NoError(t, err)

		// When: resetting
		board, err := gw.ResetBoard(ctx)

		// Then: no snapshot comes back, but the service is cleared
		require.NoError(t, err)
		assert.Nil(t, board)
		assert.Equal(t, entity.NewBoard(), service.Board())
	})

	t.Run("With body", func(t *testing.T) {
		// Given: a service answering the cleared board on reset
		service := fakeboard.New(t)
		service.ResetWithBody(true)

		// When: resetting
		board, err := newGateway(service.URL).ResetBoard(ctx)

		// Then: the cleared board is returned
		require.NoError(t, err)
		assert.Equal(t, entity.NewBoard(), board)
	})

	t.Run("Round trip", func(t *testing.T) {
		// Given: a service with several moves played
		service := fakeboard.New(t)
		gw := newGateway(service.URL)
		for _, move := range [][2]int{{0, 4}, {4, 2}, {2, 8}} {
			_, err := gw.ApplyMove(ctx, entity.PlayerX, move[0], move[1])
			require.NoError(t, err)
		}

		// When: resetting and fetching again
		_, err := gw.ResetBoard(ctx)
		require.NoError(t, err)
		board, err := gw.FetchBoard(ctx)
		require.NoError(t, err)

		// Then: overall status is pending and all 81 cells are pending
		assert.Equal(t, entity.StatusPending, board.Status)
		for i, quadrant := range board.Quadrants {
			assert.True(t, quadrant.IsInteractive, "quadrant %d", i)
			for j, cell := range quadrant.Cells {
				assert.Equal(t, entity.StatusPending, cell.Status, "cell %d-%d", i, j)
			}
		}
	})

	t.Run("Failure", func(t *testing.T) {
		// Given: a service that fails the reset
		service := fakeboard.New(t)
		service.FailNext(http.StatusServiceUnavailable)

		// When: resetting
		_, err := newGateway(service.URL).ResetBoard(ctx)

		// Then: an opaque failure is returned
		require.ErrorIs(t, err, apperror.ErrRequestFailed)
	})
}

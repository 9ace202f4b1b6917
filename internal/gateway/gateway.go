package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	boardPath       = "/board"
	requestIDHeader = "X-Request-ID"
)

// Gateway - relays board queries and mutations to the game service.
// It does not validate moves; that is the service's job.
type Gateway struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func New(logger *slog.Logger, conf config.Service, client *http.Client) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: conf.Timeout}
	}

	return &Gateway{
		logger:  logger.With("component", "gateway"),
		client:  client,
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
	}
}

// FetchBoard - reads the current board.
func (that *Gateway) FetchBoard(ctx context.Context) (*entity.Board, error) {
	board, err := that.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	if board == nil {
		return nil, fmt.Errorf("%w: GET %s: empty body", apperror.ErrRequestFailed, boardPath)
	}

	return board, nil
}

// ResetBoard - clears the board. The service may answer without a body, in
// which case the returned board is nil and the caller should fetch again.
func (that *Gateway) ResetBoard(ctx context.Context) (*entity.Board, error) {
	return that.do(ctx, http.MethodDelete, nil)
}

// ApplyMove - submits a move; the parameters travel in the query string.
func (that *Gateway) ApplyMove(ctx context.Context, player entity.Player, quadIndex, cellIndex int) (*entity.Board, error) {
	query := url.Values{}
	query.Set("player", string(player))
	query.Set("quad_index", strconv.Itoa(quadIndex))
	query.Set("cell_index", strconv.Itoa(cellIndex))

	board, err := that.do(ctx, http.MethodPut, query)
	if err != nil {
		return nil, err
	}

	if board == nil {
		return nil, fmt.Errorf("%w: PUT %s: empty body", apperror.ErrRequestFailed, boardPath)
	}

	return board, nil
}

func (that *Gateway) do(ctx context.Context, method string, query url.Values) (*entity.Board, error) {
	requestID := uuid.NewString()
	log := that.logger.With("method", method, "request_id", requestID)

	target := that.baseURL + boardPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", apperror.ErrRequestFailed, method, boardPath, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	resp, err := that.client.Do(req)
	if err != nil {
		log.Error("request failed", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", apperror.ErrRequestFailed, method, boardPath, err)
	}
	defer resp.Body.Close()

	log.Debug("response received", "url", target, "status", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: read body: %w", apperror.ErrRequestFailed, method, boardPath, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("unexpected status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %s %s: status %d", apperror.ErrRequestFailed, method, boardPath, resp.StatusCode)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var board entity.Board
	if err = json.Unmarshal(body, &board); err != nil {
		return nil, fmt.Errorf("%w: %s %s: decode board: %w", apperror.ErrRequestFailed, method, boardPath, err)
	}

	if err = board.Validate(); err != nil {
		log.Error("malformed board", "error", err)
		return nil, err
	}

	return &board, nil
}

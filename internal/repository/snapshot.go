package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	lastKey    = "board:last"
	historyKey = "board:history"
)

type SnapshotRepository interface {
	Save(ctx context.Context, board *entity.Board) error
	Last(ctx context.Context) (*entity.Board, error)
	History(ctx context.Context, count int64) ([]*entity.Board, error)
}

type dbSnapshot struct {
	client *redis.Client
	length int64
}

// NewSnapshotRepository - keeps the last synced board and at most length boards of history.
func NewSnapshotRepository(client *redis.Client, length int64) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		length: length,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, board *entity.Board) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lastKey, boardJSON, 0)
		pipe.LPush(ctx, historyKey, boardJSON)
		pipe.LTrim(ctx, historyKey, 0, that.length-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	return nil
}

func (that *dbSnapshot) Last(ctx context.Context) (*entity.Board, error) {
	response, err := that.client.Get(ctx, lastKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get last board: %w", err)
	}

	return unmarshalBoard(response)
}

// History - newest first.
func (that *dbSnapshot) History(ctx context.Context, count int64) ([]*entity.Board, error) {
	if count <= 0 {
		return nil, nil
	}

	responses, err := that.client.LRange(ctx, historyKey, 0, count-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get board history: %w", err)
	}

	boards := make([]*entity.Board, 0, len(responses))
	for _, response := range responses {
		board, err := unmarshalBoard(response)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}

	return boards, nil
}

func unmarshalBoard(response string) (*entity.Board, error) {
	var board entity.Board
	if err := json.Unmarshal([]byte(response), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return &board, nil
}

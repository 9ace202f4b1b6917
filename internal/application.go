package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-client/internal/board"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/gateway"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-client/internal/tui"
	"github.com/rocketscienceinc/tictactoe-client/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - loads the board and runs the terminal UI until the user quits.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gw := gateway.New(logger, conf.Service, nil)
	ctrl := board.NewController(logger, gw)

	initial, err := ctrl.Load(ctx)
	if err != nil {
		return fmt.Errorf("could not load board: %w", err)
	}

	frames := rest.NewFrameStore()
	frames.Publish(ctrl.Render())

	opts := []tui.Option{tui.WithPublisher(frames)}

	if conf.History.Enabled {
		history, closeHistory, err := openHistory(ctx, logger, conf, initial)
		if err != nil {
			return err
		}
		defer closeHistory()

		opts = append(opts, tui.WithRecorder(history))
	}

	if conf.Service.FeedURL != "" {
		feed, err := websocket.Dial(ctx, logger, conf.Service.FeedURL)
		if err != nil {
			// the board still works without pushes
			log.Warn("could not subscribe to snapshot feed", "error", err)
		} else {
			defer func() { _ = feed.Close() }()
			opts = append(opts, tui.WithFeed(feed))
		}
	}

	if conf.InspectPort != "" {
		go func() {
			log.Info("Starting inspection server", "port", conf.InspectPort)
			if err := rest.Start(ctx, logger, conf.InspectPort, frames); err != nil {
				log.Error("inspection server error", "error", err)
			}
		}()
	}

	program := tea.NewProgram(tui.New(ctx, logger, ctrl, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	log.Info("Board closed")

	return nil
}

// openHistory - connects to Redis and records the board the session starts
// from, so the history is never empty once the UI is up.
func openHistory(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	initial *entity.Board,
) (repository.SnapshotRepository, func(), error) {
	log := logger.With("component", "app", "method", "openHistory")

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeHistory := func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}

	history := repository.NewSnapshotRepository(redisStorage.Connection, conf.History.Length)
	if err = history.Save(ctx, initial); err != nil {
		// the board is usable without history
		log.Error("could not record initial board", "error", err)
	}

	return history, closeHistory, nil
}

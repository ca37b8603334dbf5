package worker

import (
	"context"
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

// Puller runs one synchronization pull for a board. Satisfied by
// usecase.SyncUseCase.
type Puller interface {
	PullBoard(ctx context.Context, boardID types.BoardID) error
}

// BoardRefreshWorker periodically replaces the local collection with
// the remote board state.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type BoardRefreshWorker struct {
	puller   Puller
	boardID  types.BoardID
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewBoardRefreshWorker creates a worker pulling the given board
func NewBoardRefreshWorker(puller Puller, boardID types.BoardID, interval time.Duration) *BoardRefreshWorker {
	return &BoardRefreshWorker{
		puller:   puller,
		boardID:  boardID,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial pull and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *BoardRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Board refresh worker starting",
		"board_id", w.boardID,
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *BoardRefreshWorker) Stop() {
	logging.Default().Info("Board refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Board refresh worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *BoardRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Error("Initial board refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Board refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Board refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Board refresh worker context cancelled")
			return
		}
	}
}

// refresh performs a single pull cycle. A failed pull leaves the local
// collection untouched; the stale data keeps serving reads until the
// next successful cycle.
func (w *BoardRefreshWorker) refresh(ctx context.Context) error {
	startTime := time.Now()

	if err := w.puller.PullBoard(ctx, w.boardID); err != nil {
		return err
	}

	logging.Default().Info("Board refresh completed",
		"board_id", w.boardID,
		"duration", time.Since(startTime).String())

	return nil
}

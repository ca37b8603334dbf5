package worker_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/service/worker"
)

// mockPuller is a mock implementation of worker.Puller for testing
type mockPuller struct {
	mu       sync.Mutex
	calls    int
	boardIDs []types.BoardID
	pullErr  error
}

func (m *mockPuller) PullBoard(ctx context.Context, boardID types.BoardID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.boardIDs = append(m.boardIDs, boardID)

	return m.pullErr
}

func (m *mockPuller) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockPuller) setPullError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pullErr = err
}

func TestBoardRefreshWorker_ImmediateInitialPull(t *testing.T) {
	ctx := context.Background()
	puller := &mockPuller{}

	// Long interval so only the initial pull runs in this test
	w := worker.NewBoardRefreshWorker(puller, "project:1", 10*time.Minute)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	// Wait for the background initial pull to complete
	time.Sleep(50 * time.Millisecond)

	if got := puller.callCount(); got != 1 {
		t.Fatalf("expected 1 pull after start, got %d", got)
	}

	puller.mu.Lock()
	boardID := puller.boardIDs[0]
	puller.mu.Unlock()
	if boardID != "project:1" {
		t.Errorf("expected pull for project:1, got %s", boardID)
	}
}

func TestBoardRefreshWorker_PeriodicPull(t *testing.T) {
	ctx := context.Background()
	puller := &mockPuller{}

	// Very short interval for testing (100ms)
	w := worker.NewBoardRefreshWorker(puller, "project:1", 100*time.Millisecond)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	// Initial pull plus at least one periodic pull
	time.Sleep(250 * time.Millisecond)

	if got := puller.callCount(); got < 2 {
		t.Errorf("expected at least 2 pulls (initial + periodic), got %d", got)
	}
}

func TestBoardRefreshWorker_KeepsRunningAfterPullError(t *testing.T) {
	ctx := context.Background()
	puller := &mockPuller{}
	puller.setPullError(fmt.Errorf("backend unavailable"))

	w := worker.NewBoardRefreshWorker(puller, "project:1", 100*time.Millisecond)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	defer w.Stop()

	// Failing pulls must not stop the loop
	time.Sleep(250 * time.Millisecond)

	if got := puller.callCount(); got < 2 {
		t.Errorf("expected worker to keep retrying after errors, got %d pulls", got)
	}

	// Recovery: next cycles succeed again
	puller.setPullError(nil)
	before := puller.callCount()
	time.Sleep(200 * time.Millisecond)

	if got := puller.callCount(); got <= before {
		t.Errorf("expected pulls to continue after recovery, got %d (was %d)", got, before)
	}
}

func TestBoardRefreshWorker_StopsCleanly(t *testing.T) {
	ctx := context.Background()
	puller := &mockPuller{}

	w := worker.NewBoardRefreshWorker(puller, "project:1", 100*time.Millisecond)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	// Stop should return promptly (not block)
	stopStart := time.Now()
	w.Stop()
	stopDuration := time.Since(stopStart)

	if stopDuration > time.Second {
		t.Errorf("Stop() took too long: %v", stopDuration)
	}

	// No further pulls after Stop
	after := puller.callCount()
	time.Sleep(200 * time.Millisecond)
	if got := puller.callCount(); got != after {
		t.Errorf("expected no pulls after Stop, got %d (was %d)", got, after)
	}
}

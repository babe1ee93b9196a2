package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// noopProcessFunc returns a process function that plays nothing.
func noopProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Game: item.Game, Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return Replay(item)
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func openingItem(i int) WorkItem {
	return WorkItem{
		Game:  engine.NewGame(),
		Moves: testutil.ParseTestMoves("e2e4", "e7e5", "g1f3"),
		Index: i,
	}
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(openingItem(i))
	}

	go pool.Close()

	resultCount := 0
	for res := range pool.Results() {
		resultCount++
		if res.Applied != 3 || res.Error != nil {
			t.Errorf("item %d: applied %d, error %v", res.Index, res.Applied, res.Error)
		}
	}
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolSingleWorker tests pool with single worker.
func TestPoolSingleWorker(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(1), WithBufferSize(5))
	pool.Start()

	const numItems = 5
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Game: engine.NewGame(), Index: i})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Game: item.Game, Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Game: engine.NewGame(), Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()

	skipped := 0
	total := 0
	for res := range pool.Results() {
		total++
		if res.Skipped {
			skipped++
		}
	}
	if total != numItems {
		t.Errorf("results = %d; want %d (skipped items still report)", total, numItems)
	}
	if processed := int(atomic.LoadInt32(&processedCount)); processed+skipped != numItems {
		t.Errorf("processed %d + skipped %d != %d", processed, skipped, numItems)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(2))
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestPoolNumWorkers tests NumWorkers method.
func TestPoolNumWorkers(t *testing.T) {
	defaultWorkers := NewPool(nil).NumWorkers()
	if defaultWorkers < 1 {
		t.Fatalf("default NumWorkers() = %d", defaultWorkers)
	}

	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid workers", 4, 4},
		{"minimum workers", 1, 1},
		{"zero keeps default", 0, defaultWorkers},
		{"negative keeps default", -1, defaultWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), WithWorkers(tt.input))
			if got := pool.NumWorkers(); got != tt.expected {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.expected)
			}
		})
	}
}

// TestPoolRunOrder tests that Run restores submission order.
func TestPoolRunOrder(t *testing.T) {
	variableDelayFunc := func(item WorkItem) ProcessResult {
		if item.Index%2 == 0 {
			time.Sleep(10 * time.Millisecond)
		}
		return ProcessResult{Name: item.Name, Game: item.Game, Index: item.Index}
	}

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	items := make([]WorkItem, len(names))
	for i, name := range names {
		items[i] = WorkItem{Name: name, Game: engine.NewGame(), Index: 99}
	}

	results := NewPool(variableDelayFunc, WithWorkers(4)).Run(items)

	var got []string
	for i, res := range results {
		got = append(got, res.Name)
		if res.Index != i {
			t.Errorf("results[%d].Index = %d", i, res.Index)
		}
	}
	testutil.AssertEqual(t, got, names)
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(openingItem(i))
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestNewPoolOptions tests the functional options.
func TestNewPoolOptions(t *testing.T) {
	t.Run("default buffer", func(t *testing.T) {
		pool := NewPool(noopProcessFunc())
		if pool.bufferSize != 16 {
			t.Errorf("default bufferSize = %d; want 16", pool.bufferSize)
		}
	})

	t.Run("with buffer size", func(t *testing.T) {
		pool := NewPool(noopProcessFunc(), WithBufferSize(50))
		if pool.bufferSize != 50 {
			t.Errorf("bufferSize = %d; want 50", pool.bufferSize)
		}
	})

	t.Run("invalid buffer size ignored", func(t *testing.T) {
		pool := NewPool(noopProcessFunc(), WithBufferSize(0))
		if pool.bufferSize != 16 {
			t.Errorf("bufferSize = %d; want 16", pool.bufferSize)
		}
	})
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name        string
		fen         string
		moves       []string
		wantApplied int
		wantErr     error
		wantStatus  engine.Status
	}{
		{
			name:        "all moves apply",
			fen:         engine.InitialFEN,
			moves:       []string{"e2e4", "e7e5"},
			wantApplied: 2,
		},
		{
			name:        "stops at first illegal move",
			fen:         engine.InitialFEN,
			moves:       []string{"e2e4", "e2e4", "e7e5"},
			wantApplied: 1,
			wantErr:     chesserrors.ErrIllegalMove,
		},
		{
			name:        "fool's mate",
			fen:         engine.InitialFEN,
			moves:       []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			wantApplied: 4,
			wantStatus:  engine.Status{Check: true, Checkmate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := engine.NewGameFromFEN(tt.fen)
			testutil.AssertNoError(t, err)

			res := Replay(WorkItem{Game: g, Moves: testutil.ParseTestMoves(tt.moves...)})
			testutil.AssertEqual(t, res.Applied, tt.wantApplied)
			testutil.AssertEqual(t, res.Status, tt.wantStatus)
			if tt.wantErr == nil {
				testutil.AssertNoError(t, res.Error)
			} else if !errors.Is(res.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", res.Error, tt.wantErr)
			}
		})
	}
}

func TestReplayTurn(t *testing.T) {
	res := Replay(openingItem(0))
	testutil.AssertEqual(t, res.Game.Turn(), chess.Black)
}

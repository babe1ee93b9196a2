// Package worker provides a worker pool that replays move lists on
// independent games in parallel.
package worker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// WorkItem is one game and the moves to play on it.
type WorkItem struct {
	Name  string
	Game  *engine.Game
	Moves []chess.Move
	Index int // Submission order, used to restore it
}

// ProcessResult is the state of a game after its moves were played.
type ProcessResult struct {
	Name    string
	Index   int
	Game    *engine.Game
	Applied int // moves played before the first failure
	Status  engine.Status
	Skipped bool // pool was stopped before the item ran
	Error   error
}

// ProcessFunc plays a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a fixed number of workers over a channel of items. Each item
// owns its Game, so workers share no engine state.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 keep
// the default of one per CPU.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. processFunc defaults to Replay.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	if processFunc == nil {
		processFunc = Replay
	}
	p := &Pool{
		numWorkers:  runtime.GOMAXPROCS(0),
		bufferSize:  16,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			p.resultChan <- ProcessResult{Name: item.Name, Index: item.Index, Game: item.Game, Skipped: true}
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item. It blocks while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers skip items they have not started.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once they have.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run submits items, waits for every result and returns them in
// submission order. Item indexes are overwritten with their position.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	p.Start()
	go func() {
		for i, item := range items {
			item.Index = i
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, len(items))
	for res := range p.Results() {
		results[res.Index] = res
	}
	return results
}

// Replay plays the item's moves in order, stopping at the first rejected
// move, and reports the terminal status of the side left to move.
func Replay(item WorkItem) ProcessResult {
	res := ProcessResult{Name: item.Name, Index: item.Index, Game: item.Game}
	for _, m := range item.Moves {
		if err := item.Game.MakeMove(m); err != nil {
			res.Error = err
			break
		}
		res.Applied++
	}
	res.Status = item.Game.StatusOf(item.Game.Turn())
	return res
}

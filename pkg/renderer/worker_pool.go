package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask asks a worker to bring every pixel of a tile up to the target
// cumulative sample count
type TileTask struct {
	Tile          *Tile
	TargetSamples int
	TaskID        int
	PixelStats    [][]PixelStats // Shared grid; tile bounds never overlap
}

// TileResult reports the sampling statistics of a finished tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tiles in parallel. Tasks are submitted a pass at a
// time and results collected in completion order; Stop drains the workers
// and closes the result queue
type WorkerPool struct {
	renderer    *Renderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers workers rendering through r.
// queueCapacity must cover the tasks of one whole pass so that submitting
// a pass never blocks; a non-positive worker count uses one worker per CPU
func NewWorkerPool(r *Renderer, numWorkers, queueCapacity int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueCapacity < 1 {
		queueCapacity = 1
	}

	return &WorkerPool{
		renderer:    r,
		taskQueue:   make(chan TileTask, queueCapacity),
		resultQueue: make(chan TileResult, queueCapacity),
		numWorkers:  numWorkers,
	}
}

// Start launches the workers. The context bounds all rendering done by the
// pool; cancelling it makes in-flight tiles return early
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.work(ctx)
	}
}

// Stop closes the task queue, waits for in-flight tiles to finish and
// closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a tile task
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Result blocks until a tile finishes; ok is false once the pool has
// stopped and every result has been collected
func (wp *WorkerPool) Result() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the worker count
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) work(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := wp.renderer.RenderBounds(ctx, task.Tile.Bounds, task.PixelStats, task.Tile.Random, task.TargetSamples)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

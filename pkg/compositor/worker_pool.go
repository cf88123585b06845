package compositor

import (
	"runtime"
	"sync"
)

// TileTask represents a tile compositing task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // For deterministic ordering
}

// TileResult contains the result from compositing a tile. Err is always
// nil today: the Fragment contract is infallible, so renderTile cannot
// fail. The field keeps the result shape ready for task kinds that can
// (file-backed tile output, fallible fragments), and the pass already
// propagates it.
type TileResult struct {
	TaskID int
	Err    error
}

// WorkerPool manages parallel tile compositing. Workers share the pass
// directly: the fragment is pure and the framebuffer writes of distinct
// tiles never overlap, so no per-worker state is needed.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	pass        *Pass
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Queues are buffered for maxTiles so submission and completion never block.
func NewWorkerPool(pass *Pass, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		pass:        pass,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range wp.taskQueue {
		wp.pass.renderTile(task.Tile.Bounds)
		wp.resultQueue <- TileResult{TaskID: task.TaskID}
	}
}

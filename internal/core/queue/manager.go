package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"go.uber.org/zap"
)

// Task 隊列中執行的工作
type Task func(ctx context.Context) error

// Request 隊列請求
type Request struct {
	Context context.Context
	Task    Task
	Result  chan error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 隊列管理器，固定數量的 worker 消化有界隊列
type Manager struct {
	workers   int
	maxSize   int
	queue     chan *Request
	done      chan struct{}
	processed int64
	mu        sync.RWMutex
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewManager 創建新的隊列管理器並啟動 worker
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		workers: cfg.Queue.Workers,
		maxSize: cfg.Queue.MaxSize,
		queue:   make(chan *Request, cfg.Queue.MaxSize),
		done:    make(chan struct{}),
	}

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	common.LogInfo("隊列管理員已初始化",
		zap.Int("workers", m.workers),
		zap.Int("max_queue_size", m.maxSize),
	)
	return m
}

// Enqueue 將工作加入隊列，隊列已滿時立即返回錯誤
func (m *Manager) Enqueue(ctx context.Context, task Task) (<-chan error, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	select {
	case <-m.done:
		return nil, common.ErrQueueClosed
	default:
	}

	req := &Request{
		Context: ctx,
		Task:    task,
		Result:  make(chan error, 1),
	}

	select {
	case m.queue <- req:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.maxSize),
		)
		return req.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, common.ErrQueueFull
	}
}

// worker 取出請求並執行，請求的 ctx 已結束時直接回報錯誤
func (m *Manager) worker() {
	defer m.wg.Done()

	for req := range m.queue {
		if err := req.Context.Err(); err != nil {
			req.Result <- err
			continue
		}
		req.Result <- m.run(req)
		atomic.AddInt64(&m.processed, 1)
	}
}

// run 執行工作並攔截 panic
func (m *Manager) run(req *Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("Queue task panic recovered", zap.Any("error", r))
			err = common.ErrInternalError
		}
	}()
	return req.Task(req.Context)
}

// Status 獲取隊列狀態
func (m *Manager) Status() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// Close 停止接收新工作，等待已排入的工作完成
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.mu.Lock()
		close(m.queue)
		m.mu.Unlock()
		m.wg.Wait()

		common.LogInfo("隊列管理員已關閉",
			zap.Int64("processed_count", atomic.LoadInt64(&m.processed)),
		)
	})
}

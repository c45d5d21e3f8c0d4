package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/advisorhub/backend/internal/config"
	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/pkg/logger"
	"github.com/hibiken/asynq"
)

const TaskTypeNotify = "notification:deliver"

// TaskQueue decouples notification delivery from the request path.
type TaskQueue interface {
	// Enqueue adds a notification to the queue.
	Enqueue(n *models.Notification) error
	// IsAsync returns true if the queue processes tasks asynchronously.
	IsAsync() bool
	// Close gracefully shuts down the queue.
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue initializes the global task queue based on config: Redis
// backed when enabled and reachable, in-process fallback otherwise.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Warnf("[TaskQueue] Redis unavailable, falling back to sync mode: %v", err)
				globalTaskQueue = NewSyncQueue()
			} else {
				logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
				globalTaskQueue = queue
			}
		} else {
			logger.Infof("[TaskQueue] Sync queue initialized (Redis disabled)")
			globalTaskQueue = NewSyncQueue()
		}
	})
	return globalTaskQueue
}

// GetTaskQueue returns the global task queue, nil before InitTaskQueue.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue implements TaskQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(n *models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeNotify, payload)
	_, err = q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	return err
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue with in-process processing (no Redis).
type SyncQueue struct {
	processor func(context.Context, *models.Notification) error
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function that handles enqueued notifications.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *models.Notification) error) {
	q.processor = processor
}

// Enqueue hands the notification to the processor in a goroutine so the
// caller's request is not blocked.
func (q *SyncQueue) Enqueue(n *models.Notification) error {
	if q.processor == nil {
		logger.Warnf("[SyncQueue] no processor set, notification dropped")
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), n); err != nil {
			logger.Warnf("[SyncQueue] processing failed: %v", err)
		}
	}()

	return nil
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}

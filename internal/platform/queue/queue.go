package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"evergreen/internal/shared/events"
)

// TaskTypeEvent is the single asynq task type carrying domain events; the
// worker routes on the event name inside the payload.
const TaskTypeEvent = "gamification:event"

// Retry policy for queued events: the first delivery plus MaxRetry
// re-deliveries, delayed 2s, 4s, 8s.
const (
	MaxRetry          = 3
	InitialRetryDelay = 2 * time.Second
)

// RetryDelay implements the exponential schedule. asynq passes the number
// of retries already spent on the task, so the first retry (n = 0) lands
// after InitialRetryDelay.
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 0 {
		n = 0
	}
	return InitialRetryDelay << n
}

// Options mirror the shared redis connection details.
type Options struct {
	Addr     string
	Password string
	DB       int
}

func (o Options) clientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	}
}

// Client enqueues domain events as asynq tasks.
type Client struct {
	inner *asynq.Client
}

func NewClient(opts Options) *Client {
	return &Client{inner: asynq.NewClient(opts.clientOpt())}
}

// Enqueue submits an event with the pipeline retry policy and returns the
// queue-assigned job identifier.
func (c *Client) Enqueue(ctx context.Context, event events.Event) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode event payload: %w", err)
	}
	info, err := c.inner.EnqueueContext(ctx,
		asynq.NewTask(TaskTypeEvent, payload),
		asynq.MaxRetry(MaxRetry),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", event.Name, err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}

// ExhaustionHook receives events whose retries are spent, after which the
// queue takes no further automatic action.
type ExhaustionHook func(ctx context.Context, event events.Event, cause error)

// exhaustionNotifier fires the hook exactly once per job, on the failure
// that spends the last retry.
type exhaustionNotifier struct {
	hook   ExhaustionHook
	logger *slog.Logger
}

func (n exhaustionNotifier) taskFailed(ctx context.Context, payload []byte, retried, maxRetry int, cause error) {
	if retried < maxRetry {
		return
	}
	var event events.Event
	if decodeErr := json.Unmarshal(payload, &event); decodeErr != nil {
		n.logger.Error("event job exhausted with undecodable payload",
			"event", "queue_job_exhausted_undecodable",
			"module", "internal/platform/queue",
			"layer", "platform",
			"error", decodeErr.Error(),
		)
		return
	}
	n.logger.Error("event job exhausted retries",
		"event", "queue_job_exhausted",
		"module", "internal/platform/queue",
		"layer", "platform",
		"event_name", event.Name,
		"user_id", event.UserID,
		"retried", retried,
		"error", cause.Error(),
	)
	if n.hook != nil {
		n.hook(ctx, event, cause)
	}
}

// NewServer builds the bounded-concurrency worker server. handler processes
// one delivery; onExhausted fires once per job after the final failed
// attempt.
func NewServer(
	opts Options,
	concurrency int,
	handler func(ctx context.Context, event events.Event) error,
	onExhausted ExhaustionHook,
	logger *slog.Logger,
) (*asynq.Server, *asynq.ServeMux) {
	if concurrency <= 0 {
		concurrency = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	notifier := exhaustionNotifier{hook: onExhausted, logger: logger}
	server := asynq.NewServer(opts.clientOpt(), asynq.Config{
		Concurrency:    concurrency,
		RetryDelayFunc: RetryDelay,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			notifier.taskFailed(ctx, task.Payload(), retried, maxRetry, err)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeEvent, func(ctx context.Context, task *asynq.Task) error {
		var event events.Event
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			return fmt.Errorf("decode event payload: %w", err)
		}
		return handler(ctx, event)
	})
	return server, mux
}

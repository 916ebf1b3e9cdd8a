package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/navcache"
)

// Topics jobs are published on.
const (
	TopicRebuild = "navcache.rebuild"
	TopicAccess  = "access.record"
)

const requestIDKey = "request_id"

// RebuildPayload asks for a navigation cache rebuild.
type RebuildPayload struct {
	Owner string `json:"owner"`
}

// AccessPayload records that IDs were retrieved together.
type AccessPayload struct {
	Owner string    `json:"owner"`
	IDs   []string  `json:"ids"`
	At    time.Time `json:"at"`
}

// Rebuilder rebuilds an owner's navigation cache.
type Rebuilder interface {
	Rebuild(ctx context.Context, owner string) (navcache.RebuildResult, error)
}

// AccessRecorder stores co-retrieval events.
type AccessRecorder interface {
	RecordAccess(ctx context.Context, owner string, ids []string) error
}

// LinkRefresher re-extracts an owner's structural links before a rebuild.
type LinkRefresher interface {
	RefreshOwner(ctx context.Context, owner string) (int, error)
}

// Config bounds job retries.
type Config struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// Buffer is the per-subscriber channel buffer.
	Buffer int64
}

// DefaultConfig returns the default retry policy.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
		Buffer:          256,
	}
}

// Queue runs background jobs on an in-process pub/sub with bounded retries.
type Queue struct {
	pubSub *gochannel.GoChannel
	router *message.Router
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}

	rebuild Rebuilder
	access  AccessRecorder
	links   LinkRefresher
}

// NewQueue wires job handlers. links may be nil. Start must be called before enqueueing.
func NewQueue(cfg Config, rebuild Rebuilder, access AccessRecorder, links LinkRefresher, logger *slog.Logger) (*Queue, error) {
	if rebuild == nil || access == nil {
		return nil, errors.New("jobs: rebuilder and access recorder are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("jobs: max retries must not be negative, got %d", cfg.MaxRetries)
	}

	wlogger := watermill.NewSlogLogger(logger)
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.Buffer}, wlogger)

	router, err := message.NewRouter(message.RouterConfig{}, wlogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	q := &Queue{
		pubSub:  pubSub,
		router:  router,
		logger:  logger,
		rebuild: rebuild,
		access:  access,
		links:   links,
	}

	// Outermost first: give up after retries, retry with backoff, turn panics into errors.
	router.AddMiddleware(
		q.dropExhausted,
		middleware.Retry{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.InitialInterval,
			MaxInterval:     cfg.MaxInterval,
			Multiplier:      cfg.Multiplier,
			Logger:          wlogger,
		}.Middleware,
		middleware.Recoverer,
	)

	router.AddNoPublisherHandler("navcache_rebuild", TopicRebuild, pubSub, q.handleRebuild)
	router.AddNoPublisherHandler("access_record", TopicAccess, pubSub, q.handleAccess)

	return q, nil
}

// Start runs the router in the background and returns once handlers are subscribed.
func (q *Queue) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel
	q.done = make(chan struct{})

	errCh := make(chan error, 1)
	go func() {
		defer close(q.done)
		if err := q.router.Run(runCtx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-q.router.Running():
		q.logger.InfoContext(ctx, "job queue started")
		return nil
	case err := <-errCh:
		cancel()
		return fmt.Errorf("failed to start job router: %w", err)
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// Close stops the router and the pub/sub.
func (q *Queue) Close() error {
	if q.cancel != nil {
		q.cancel()
	}
	err := q.router.Close()
	if q.done != nil {
		<-q.done
	}
	if cerr := q.pubSub.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// EnqueueRebuild schedules a navigation cache rebuild for owner.
func (q *Queue) EnqueueRebuild(ctx context.Context, owner string) error {
	if owner == "" {
		return errors.New("jobs: owner is required")
	}
	return q.publish(ctx, TopicRebuild, RebuildPayload{Owner: owner})
}

// EnqueueAccess schedules recording of a co-retrieval event.
func (q *Queue) EnqueueAccess(ctx context.Context, owner string, ids []string) error {
	if owner == "" {
		return errors.New("jobs: owner is required")
	}
	return q.publish(ctx, TopicAccess, AccessPayload{Owner: owner, IDs: ids, At: time.Now().UTC()})
}

// HandleStale enqueues a rebuild; it is the navigation cache's stale handler.
func (q *Queue) HandleStale(ctx context.Context, owner string) {
	if err := q.EnqueueRebuild(ctx, owner); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to enqueue navigation rebuild", "owner", owner, "error", err)
	}
}

func (q *Queue) publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if id := contextutil.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(requestIDKey, id)
		middleware.SetCorrelationID(id, msg)
	}

	if err := q.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "job enqueued", "topic", topic, "message_id", msg.UUID)
	return nil
}

// jobContext builds the handler context with a logger tagged by the job's origin.
func (q *Queue) jobContext(msg *message.Message, topic string) context.Context {
	logger := q.logger.With("job", topic, "message_id", msg.UUID)
	ctx := msg.Context()
	if id := msg.Metadata.Get(requestIDKey); id != "" {
		logger = logger.With("request_id", id)
		ctx = contextutil.WithRequestID(ctx, id)
	}
	return contextutil.WithLogger(ctx, logger)
}

func (q *Queue) handleRebuild(msg *message.Message) error {
	ctx := q.jobContext(msg, TopicRebuild)
	logger := contextutil.LoggerFromContext(ctx)

	var payload RebuildPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// A malformed payload will never succeed; do not retry it.
		logger.ErrorContext(ctx, "dropping malformed rebuild job", "error", err)
		return nil
	}

	if q.links != nil {
		n, err := q.links.RefreshOwner(ctx, payload.Owner)
		if err != nil {
			return fmt.Errorf("refresh links for %s: %w", payload.Owner, err)
		}
		logger.DebugContext(ctx, "links refreshed", "owner", payload.Owner, "links", n)
	}

	result, err := q.rebuild.Rebuild(ctx, payload.Owner)
	if err != nil {
		return fmt.Errorf("rebuild navigation cache for %s: %w", payload.Owner, err)
	}
	logger.InfoContext(ctx, "navigation cache rebuilt",
		"owner", payload.Owner,
		"entries", result.EntriesRebuilt,
		"duration_ms", result.DurationMs,
		"coalesced", result.Coalesced,
	)
	return nil
}

func (q *Queue) handleAccess(msg *message.Message) error {
	ctx := q.jobContext(msg, TopicAccess)

	var payload AccessPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "dropping malformed access job", "error", err)
		return nil
	}
	if err := q.access.RecordAccess(ctx, payload.Owner, payload.IDs); err != nil {
		return fmt.Errorf("record access for %s: %w", payload.Owner, err)
	}
	return nil
}

// dropExhausted acks messages whose handler still fails after all retries,
// so the pub/sub does not redeliver them forever.
func (q *Queue) dropExhausted(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err != nil {
			q.logger.Error("job failed after retries, dropping",
				"message_id", msg.UUID,
				"error", err,
			)
			return nil, nil
		}
		return msgs, nil
	}
}

package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/internal/signal/executor"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// RedisConsumer manages the consumption of jobs from the Redis stream.
type RedisConsumer struct {
	cfg             *config.Config
	redisClient     *redis.Client
	executorService executor.Service
	logger          *logger.Logger
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	executorService executor.Service,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:             cfg,
		redisClient:     redisClient,
		executorService: executorService,
		logger:          log,
		stopChan:        make(chan struct{}),
	}
}

// Start spawns the worker loops. Each worker blocks on the stream read
// inside ProcessTask, so idle workers cost nothing.
func (c *RedisConsumer) Start(ctx context.Context) {
	workers := c.cfg.Worker.MaxConcurrentTasks
	if workers <= 0 {
		workers = 1
	}
	c.logger.Info("Redis consumer started", logger.IntField("workers", workers))

	for i := 0; i < workers; i++ {
		c.registerWorker(ctx)
	}
}

func (c *RedisConsumer) registerWorker(ctx context.Context) {
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				c.executorService.ProcessTask(ctx)
			}
		}
	})
}

// RegisterTickerHandler runs fn on a fixed interval until shutdown.
func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}

package executor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/internal/signal/strategy"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/logger"
)

// Service consumes scheduled jobs off the Redis stream and dispatches
// them to the matching strategy.
type Service interface {
	ProcessTask(ctx context.Context)
}

// NewService creates a new executor Service.
func NewService(
	cfg *config.Config,
	redisClient *redis.Client,
	log *logger.Logger,
	strategies []strategy.JobExecutionStrategy,
) Service {
	strategyMap := make(map[entity.JobType]strategy.JobExecutionStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}

	return &executorService{
		cfg:         cfg,
		redisClient: redisClient,
		logger:      log,
		strategies:  strategyMap,
	}
}

type executorService struct {
	cfg         *config.Config
	redisClient *redis.Client
	logger      *logger.Logger
	strategies  map[entity.JobType]strategy.JobExecutionStrategy
}

// ProcessTask dequeues and executes a single job.
func (s *executorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamSignalJobs, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		// Context cancellation and read timeouts are expected during
		// shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]
	jobData, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message",
			logger.Field("message_id", message.ID))
		return
	}

	var job entity.Job
	if err := json.Unmarshal([]byte(jobData), &job); err != nil {
		s.logger.Error("Failed to unmarshal job data",
			logger.ErrorField(err),
			logger.Field("message_id", message.ID))
		if err := s.redisClient.XAck(ctx, common.RedisStreamSignalJobs, common.RedisStreamGroup, message.ID).Err(); err != nil {
			s.logger.Error("Failed to acknowledge malformed message",
				logger.ErrorField(err),
				logger.Field("message_id", message.ID))
		}
		return
	}

	executionCtx := ctx
	if s.cfg.Worker.RedisStreamTimeout > 0 {
		var cancel context.CancelFunc
		executionCtx, cancel = context.WithTimeout(ctx, s.cfg.Worker.RedisStreamTimeout)
		defer cancel()
	}

	s.execute(executionCtx, &job)
}

func (s *executorService) execute(ctx context.Context, job *entity.Job) {
	strat, ok := s.strategies[job.Type]
	if !ok {
		s.logger.Error("No strategy found for job type", logger.Field("job_type", job.Type))
		return
	}

	s.logger.Info("Processing job", logger.Field("job_type", job.Type))
	started := time.Now()

	output, err := strat.Execute(ctx, job)
	if err != nil {
		s.logger.Error("Job execution failed",
			logger.Field("job_type", job.Type),
			logger.ErrorField(err))
		return
	}

	s.logger.Info("Job executed successfully",
		logger.Field("job_type", job.Type),
		logger.StringField("output", output),
		logger.Field("duration", time.Since(started).String()))
}

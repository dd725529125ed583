package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// SchedulerService registers the configured cron entries and publishes one
// job per firing onto the Redis stream. All schedules run in KST because
// the pipeline follows the Seoul trading day.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(cfg *config.Config, redisClient *redis.Client, log *logger.Logger) SchedulerService {
	return &schedulerService{
		cfg:         cfg,
		redisClient: redisClient,
		logger:      log,
		cron:        cron.New(cron.WithLocation(utils.LocationKST)),
	}
}

type schedulerService struct {
	cfg         *config.Config
	redisClient *redis.Client
	logger      *logger.Logger
	cron        *cron.Cron
}

// Start registers every configured schedule and starts the cron runner.
// An empty cron expression disables its job.
func (s *schedulerService) Start(ctx context.Context) error {
	entries := []struct {
		expr    string
		jobType entity.JobType
	}{
		{s.cfg.Scheduler.FlowCollectorCron, entity.JobTypeFlowCollect},
		{s.cfg.Scheduler.DisclosureSyncCron, entity.JobTypeDisclosureSync},
		{s.cfg.Scheduler.CatalystDetectCron, entity.JobTypeCatalystDetect},
		{s.cfg.Scheduler.CatalystTrackCron, entity.JobTypeCatalystTrack},
		{s.cfg.Scheduler.UniverseScanCron, entity.JobTypeUniverseScan},
		{s.cfg.Scheduler.ValueScreenerCron, entity.JobTypeValueScreen},
	}

	for _, entry := range entries {
		if entry.expr == "" {
			s.logger.Warn("Schedule disabled, no cron expression",
				logger.Field("job_type", entry.jobType))
			continue
		}
		jobType := entry.jobType
		if _, err := s.cron.AddFunc(entry.expr, func() {
			s.publishJob(ctx, jobType)
		}); err != nil {
			return fmt.Errorf("invalid cron expression %q for %s: %w", entry.expr, entry.jobType, err)
		}
		s.logger.Info("Schedule registered",
			logger.Field("job_type", entry.jobType),
			logger.StringField("cron", entry.expr))
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron runner and waits for in-flight publishes.
func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *schedulerService) publishJob(ctx context.Context, jobType entity.JobType) {
	job := entity.Job{
		Type:       jobType,
		EnqueuedAt: utils.TimeNowKST(),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		s.logger.Error("Failed to marshal job payload",
			logger.ErrorField(err),
			logger.Field("job_type", jobType))
		return
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamSignalJobs,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen, // Limit the stream size
	}).Err(); err != nil {
		s.logger.Error("Failed to enqueue job",
			logger.ErrorField(err),
			logger.Field("job_type", jobType))
		return
	}

	s.logger.Info("Job published", logger.Field("job_type", jobType))
}

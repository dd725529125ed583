package strategy

import (
	"context"
	"fmt"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
)

// DisclosureSyncStrategy pulls the news/disclosure feeds for the universe.
type DisclosureSyncStrategy struct {
	logger    *logger.Logger
	collector service.CollectorService
}

// NewDisclosureSyncStrategy creates a new DisclosureSyncStrategy.
func NewDisclosureSyncStrategy(log *logger.Logger, collector service.CollectorService) JobExecutionStrategy {
	return &DisclosureSyncStrategy{logger: log, collector: collector}
}

// GetType returns the job type this strategy handles.
func (s *DisclosureSyncStrategy) GetType() entity.JobType {
	return entity.JobTypeDisclosureSync
}

// Execute syncs every stock's feed once.
func (s *DisclosureSyncStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	events, err := s.collector.SyncDisclosures(ctx)
	if err != nil {
		return "", fmt.Errorf("disclosure sync failed: %w", err)
	}
	return fmt.Sprintf(`{"events":%d}`, events), nil
}

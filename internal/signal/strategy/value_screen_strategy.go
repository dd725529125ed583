package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
)

// ValueScreenStrategy runs the fundamental value screen on schedule.
type ValueScreenStrategy struct {
	logger       *logger.Logger
	valueService service.ValueService
}

// NewValueScreenStrategy creates a new ValueScreenStrategy.
func NewValueScreenStrategy(log *logger.Logger, valueService service.ValueService) JobExecutionStrategy {
	return &ValueScreenStrategy{logger: log, valueService: valueService}
}

// GetType returns the job type this strategy handles.
func (s *ValueScreenStrategy) GetType() entity.JobType {
	return entity.JobTypeValueScreen
}

// Execute runs the screen with the request embedded in the job payload.
func (s *ValueScreenStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var req dto.ValueScreenRequest
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &req); err != nil {
			return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}

	results, err := s.valueService.ScreenValue(ctx, req)
	if err != nil {
		return "", fmt.Errorf("value screen failed: %w", err)
	}

	s.logger.Info("Scheduled value screen finished", logger.IntField("results", len(results)))
	return fmt.Sprintf(`{"results":%d}`, len(results)), nil
}

package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// FlowCollectPayload tunes one investor flow collection run.
type FlowCollectPayload struct {
	LookbackDays int `json:"lookback_days"`
}

// FlowCollectStrategy scrapes investor net-buy flow for the universe.
type FlowCollectStrategy struct {
	logger    *logger.Logger
	collector service.CollectorService
}

// NewFlowCollectStrategy creates a new FlowCollectStrategy.
func NewFlowCollectStrategy(log *logger.Logger, collector service.CollectorService) JobExecutionStrategy {
	return &FlowCollectStrategy{logger: log, collector: collector}
}

// GetType returns the job type this strategy handles.
func (s *FlowCollectStrategy) GetType() entity.JobType {
	return entity.JobTypeFlowCollect
}

// Execute collects the trailing flow window, 7 calendar days by default.
func (s *FlowCollectStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	lookback := 7
	if len(job.Payload) > 0 {
		var p FlowCollectPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
		if p.LookbackDays > 0 {
			lookback = p.LookbackDays
		}
	}

	to := utils.TimeNowKST()
	rows, err := s.collector.CollectInvestorFlow(ctx, to.AddDate(0, 0, -lookback), to)
	if err != nil {
		return "", fmt.Errorf("investor flow collection failed: %w", err)
	}
	return fmt.Sprintf(`{"rows":%d}`, rows), nil
}

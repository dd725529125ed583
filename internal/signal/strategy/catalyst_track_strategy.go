package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
)

// CatalystTrackStrategy runs the daily catalyst tracking pass.
type CatalystTrackStrategy struct {
	logger          *logger.Logger
	catalystService service.CatalystService
}

// NewCatalystTrackStrategy creates a new CatalystTrackStrategy.
func NewCatalystTrackStrategy(log *logger.Logger, catalystService service.CatalystService) JobExecutionStrategy {
	return &CatalystTrackStrategy{logger: log, catalystService: catalystService}
}

// GetType returns the job type this strategy handles.
func (s *CatalystTrackStrategy) GetType() entity.JobType {
	return entity.JobTypeCatalystTrack
}

// Execute runs the tracking pass for the payload's as-of date.
func (s *CatalystTrackStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	asOf, err := parseAsOfDate(job.Payload)
	if err != nil {
		return "", err
	}

	result, err := s.catalystService.UpdateTracking(ctx, asOf)
	if err != nil {
		return "", fmt.Errorf("catalyst tracking failed: %w", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tracking result: %w", err)
	}
	return string(out), nil
}

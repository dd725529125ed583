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

// UniverseScanStrategy scores the whole universe on schedule.
type UniverseScanStrategy struct {
	logger  *logger.Logger
	scanner service.ScannerService
}

// NewUniverseScanStrategy creates a new UniverseScanStrategy.
func NewUniverseScanStrategy(log *logger.Logger, scanner service.ScannerService) JobExecutionStrategy {
	return &UniverseScanStrategy{logger: log, scanner: scanner}
}

// GetType returns the job type this strategy handles.
func (s *UniverseScanStrategy) GetType() entity.JobType {
	return entity.JobTypeUniverseScan
}

// Execute runs a scan with the request embedded in the job payload.
func (s *UniverseScanStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var req dto.ScanRequest
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &req); err != nil {
			return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}

	result, err := s.scanner.ScanUniverse(ctx, req)
	if err != nil {
		return "", fmt.Errorf("universe scan failed: %w", err)
	}

	s.logger.Info("Scheduled universe scan finished",
		logger.IntField("signals", len(result.Signals)),
		logger.IntField("omitted", result.Omitted))
	return fmt.Sprintf(`{"signals":%d,"omitted":%d}`, len(result.Signals), result.Omitted), nil
}

package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// CatalystDetectPayload tunes one detection run. AsOfDate defaults to the
// current KST trading day.
type CatalystDetectPayload struct {
	AsOfDate string `json:"as_of_date"`
}

// CatalystDetectStrategy runs the daily catalyst detection pass.
type CatalystDetectStrategy struct {
	logger          *logger.Logger
	catalystService service.CatalystService
}

// NewCatalystDetectStrategy creates a new CatalystDetectStrategy.
func NewCatalystDetectStrategy(log *logger.Logger, catalystService service.CatalystService) JobExecutionStrategy {
	return &CatalystDetectStrategy{logger: log, catalystService: catalystService}
}

// GetType returns the job type this strategy handles.
func (s *CatalystDetectStrategy) GetType() entity.JobType {
	return entity.JobTypeCatalystDetect
}

// Execute runs the detection pass for the payload's as-of date.
func (s *CatalystDetectStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	asOf, err := parseAsOfDate(job.Payload)
	if err != nil {
		return "", err
	}

	created, err := s.catalystService.DetectNewCatalysts(ctx, asOf)
	if err != nil {
		return "", fmt.Errorf("catalyst detection failed: %w", err)
	}
	return fmt.Sprintf(`{"created":%d}`, created), nil
}

// parseAsOfDate reads the shared as_of_date payload field, defaulting to
// today in KST.
func parseAsOfDate(payload json.RawMessage) (time.Time, error) {
	asOf := utils.TruncateToDate(utils.TimeNowKST())
	if len(payload) == 0 {
		return asOf, nil
	}

	var p CatalystDetectPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return time.Time{}, fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	if p.AsOfDate == "" {
		return asOf, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", p.AsOfDate, utils.LocationKST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of_date %q: %w", p.AsOfDate, err)
	}
	return parsed, nil
}

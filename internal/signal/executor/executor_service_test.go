package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/internal/signal/strategy"
	"golang-kstock-signals/pkg/logger"
)

type fakeStrategy struct {
	jobType  entity.JobType
	err      error
	executed []*entity.Job
}

func (f *fakeStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	f.executed = append(f.executed, job)
	return "ok", f.err
}

func (f *fakeStrategy) GetType() entity.JobType { return f.jobType }

func newTestService(strategies ...strategy.JobExecutionStrategy) *executorService {
	svc := NewService(&config.Config{}, nil, logger.NewNop(), strategies)
	return svc.(*executorService)
}

func TestExecuteDispatchesToMatchingStrategy(t *testing.T) {
	detect := &fakeStrategy{jobType: entity.JobTypeCatalystDetect}
	scan := &fakeStrategy{jobType: entity.JobTypeUniverseScan}
	svc := newTestService(detect, scan)

	svc.execute(context.Background(), &entity.Job{Type: entity.JobTypeUniverseScan})

	require.Len(t, scan.executed, 1)
	assert.Empty(t, detect.executed)
}

func TestExecuteUnknownJobTypeIsSkipped(t *testing.T) {
	detect := &fakeStrategy{jobType: entity.JobTypeCatalystDetect}
	svc := newTestService(detect)

	svc.execute(context.Background(), &entity.Job{Type: entity.JobType("unknown")})

	assert.Empty(t, detect.executed)
}

func TestExecuteStrategyErrorDoesNotPanic(t *testing.T) {
	failing := &fakeStrategy{
		jobType: entity.JobTypeValueScreen,
		err:     errors.New("screen failed"),
	}
	svc := newTestService(failing)

	svc.execute(context.Background(), &entity.Job{Type: entity.JobTypeValueScreen})

	assert.Len(t, failing.executed, 1)
}

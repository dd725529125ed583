package service

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/catalyst"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/eventbus"
	"golang-kstock-signals/pkg/logger"
)

// CatalystService drives the catalyst lifecycle passes and fans out the
// resulting lifecycle events on the bus.
type CatalystService interface {
	DetectNewCatalysts(ctx context.Context, asOf time.Time) (int, error)
	UpdateTracking(ctx context.Context, asOf time.Time) (dto.TrackingResult, error)
	ListCatalysts(ctx context.Context, status string, limit int) ([]entity.CatalystEvent, error)
}

// NewCatalystService creates a new CatalystService.
func NewCatalystService(
	log *logger.Logger,
	bus *eventbus.Bus,
	detector *catalyst.Detector,
	tracker *catalyst.Tracker,
	catalystRepo repository.CatalystEventRepository,
) CatalystService {
	return &catalystService{
		logger:       log,
		bus:          bus,
		detector:     detector,
		tracker:      tracker,
		catalystRepo: catalystRepo,
	}
}

type catalystService struct {
	logger       *logger.Logger
	bus          *eventbus.Bus
	detector     *catalyst.Detector
	tracker      *catalyst.Tracker
	catalystRepo repository.CatalystEventRepository
}

// DetectNewCatalysts runs the detection pass and publishes one
// catalyst.created event per opened catalyst.
func (s *catalystService) DetectNewCatalysts(ctx context.Context, asOf time.Time) (int, error) {
	created, err := s.detector.Run(ctx, asOf)
	if err != nil {
		return len(created), err
	}
	for i := range created {
		s.bus.Publish(ctx, common.EventCatalystCreated, created[i])
	}
	return len(created), nil
}

// UpdateTracking runs the daily tracking pass and publishes expiry
// transitions.
func (s *catalystService) UpdateTracking(ctx context.Context, asOf time.Time) (dto.TrackingResult, error) {
	result, transitions, err := s.tracker.Run(ctx, asOf)
	if err != nil {
		return result, err
	}
	for _, tr := range transitions {
		if tr.To == entity.CatalystStatusExpired {
			s.bus.Publish(ctx, common.EventCatalystExpired, tr.Event)
		}
	}
	return result, nil
}

func (s *catalystService) ListCatalysts(ctx context.Context, status string, limit int) ([]entity.CatalystEvent, error) {
	return s.catalystRepo.List(ctx, status, limit)
}

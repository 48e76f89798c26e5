package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

const statusListLimit = 1000

// StatusService exposes the legacy status-check endpoints backed by the
// document store.
type StatusService interface {
	Create(ctx context.Context, payload dto.CreateStatusRequest) (repository.StatusCheck, error)
	List(ctx context.Context) ([]repository.StatusCheck, error)
}

type statusService struct {
	statuses  repository.StatusRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStatusService builds a new status service.
func NewStatusService(
	statuses repository.StatusRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) StatusService {
	return &statusService{
		statuses:  statuses,
		validator: validate,
		logger:    logger.With().Str("component", "status_service").Logger(),
		now:       time.Now,
	}
}

func (s *statusService) Create(ctx context.Context, payload dto.CreateStatusRequest) (repository.StatusCheck, error) {
	if err := s.validator.Struct(payload); err != nil {
		return repository.StatusCheck{}, err
	}

	check := repository.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: payload.ClientName,
		Timestamp:  s.now().UTC(),
	}

	if err := s.statuses.Insert(ctx, check); err != nil {
		return repository.StatusCheck{}, err
	}

	return check, nil
}

func (s *statusService) List(ctx context.Context) ([]repository.StatusCheck, error) {
	return s.statuses.List(ctx, statusListLimit)
}

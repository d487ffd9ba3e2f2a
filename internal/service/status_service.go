package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
	"github.com/noah-isme/sasgp-api/internal/repository"
)

// StatusService reads and overwrites the current status of a solution.
type StatusService interface {
	Get(ctx context.Context, docID string) (dto.StatusResponse, error)
	Set(ctx context.Context, docID string, payload dto.StatusRequest) (dto.StatusResponse, error)
}

type statusService struct {
	repo      repository.StatusRepository
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewStatusService builds the status service.
func NewStatusService(repo repository.StatusRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) StatusService {
	if events == nil {
		events = NopEventPublisher{}
	}

	return &statusService{
		repo:      repo,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "status_service").Logger(),
		tracer:    observability.Tracer("service/status"),
	}
}

// Get returns an empty status when none has been set yet.
func (s *statusService) Get(ctx context.Context, docID string) (dto.StatusResponse, error) {
	if strings.TrimSpace(docID) == "" {
		return dto.StatusResponse{}, ErrMissingIdentifier
	}

	spanCtx, span := s.tracer.Start(ctx, "status.get", trace.WithAttributes(attribute.String("solution.doc_id", docID)))
	defer span.End()

	status, err := s.repo.Get(spanCtx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StatusResponse{DocID: docID}, nil
		}
		span.RecordError(err)
		return dto.StatusResponse{}, fmt.Errorf("get status: %w", err)
	}

	updatedAt := status.UpdatedAt
	return dto.StatusResponse{DocID: docID, Status: status.Value, UpdatedAt: &updatedAt}, nil
}

func (s *statusService) Set(ctx context.Context, docID string, payload dto.StatusRequest) (dto.StatusResponse, error) {
	if strings.TrimSpace(docID) == "" {
		return dto.StatusResponse{}, ErrMissingIdentifier
	}
	payload.Status = strings.TrimSpace(payload.Status)
	if err := s.validator.Struct(payload); err != nil {
		return dto.StatusResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "status.set", trace.WithAttributes(
		attribute.String("solution.doc_id", docID),
		attribute.String("solution.status", payload.Status),
	))
	defer span.End()

	status := models.Status{SolutionDocID: docID, Value: payload.Status}
	if err := s.repo.Upsert(spanCtx, &status); err != nil {
		span.RecordError(err)
		return dto.StatusResponse{}, fmt.Errorf("set status: %w", err)
	}

	updatedAt := status.UpdatedAt
	response := dto.StatusResponse{DocID: docID, Status: status.Value, UpdatedAt: &updatedAt}
	s.events.Publish(spanCtx, EventStatusChanged, response)
	s.logger.Info().Str("doc_id", docID).Str("status", status.Value).Msg("status changed")

	return response, nil
}

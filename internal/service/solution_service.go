package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
	"github.com/noah-isme/sasgp-api/internal/repository"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

const solutionListCacheKey = "sasgp:solutions:list:v1"

// SolutionService exposes solution use cases.
type SolutionService interface {
	Add(ctx context.Context, payload dto.SolutionCreateRequest) (dto.SolutionCreatedResponse, error)
	List(ctx context.Context) ([]dto.SolutionResponse, error)
	Get(ctx context.Context, docID string) (dto.SolutionResponse, error)
	Update(ctx context.Context, docID string, payload dto.SolutionUpdateRequest) (dto.SolutionResponse, error)
	Delete(ctx context.Context, docID string) error
}

type solutionService struct {
	repo      repository.SolutionRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	newID     func() string
}

// NewSolutionService builds the solution service. cache and events may be nil.
func NewSolutionService(repo repository.SolutionRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) SolutionService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if events == nil {
		events = NopEventPublisher{}
	}

	return &solutionService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "solution_service").Logger(),
		tracer:    observability.Tracer("service/solution"),
		newID:     utils.GenerateID,
	}
}

func (s *solutionService) Add(ctx context.Context, payload dto.SolutionCreateRequest) (dto.SolutionCreatedResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if err := s.validator.Struct(payload); err != nil {
		return dto.SolutionCreatedResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "solutions.add")
	defer span.End()

	solution := models.Solution{
		LogicalID: s.newID(),
		Name:      payload.Name,
		Fields:    datatypes.JSONMap(payload.Fields),
	}
	if solution.Fields == nil {
		solution.Fields = datatypes.JSONMap{}
	}

	if err := s.repo.Create(spanCtx, &solution); err != nil {
		span.RecordError(err)
		return dto.SolutionCreatedResponse{}, fmt.Errorf("create solution: %w", err)
	}

	s.invalidateList(spanCtx)
	created := dto.SolutionCreatedResponse{SolutionID: solution.LogicalID, DocID: solution.ID}
	s.events.Publish(spanCtx, EventSolutionCreated, created)
	s.logger.Info().Str("doc_id", solution.ID).Str("solution_id", solution.LogicalID).Msg("solution created")

	return created, nil
}

func (s *solutionService) List(ctx context.Context) ([]dto.SolutionResponse, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	spanCtx, span := s.tracer.Start(ctx, "solutions.list")
	defer span.End()

	solutions, err := s.repo.List(spanCtx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list solutions: %w", err)
	}

	responses := dto.NewSolutionResponseSlice(solutions)
	s.storeList(spanCtx, responses)

	return responses, nil
}

func (s *solutionService) Get(ctx context.Context, docID string) (dto.SolutionResponse, error) {
	if strings.TrimSpace(docID) == "" {
		return dto.SolutionResponse{}, ErrMissingIdentifier
	}

	spanCtx, span := s.tracer.Start(ctx, "solutions.get", trace.WithAttributes(attribute.String("solution.doc_id", docID)))
	defer span.End()

	solution, err := s.repo.GetByID(spanCtx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SolutionResponse{}, ErrSolutionNotFound
		}
		span.RecordError(err)
		return dto.SolutionResponse{}, fmt.Errorf("get solution: %w", err)
	}

	return dto.NewSolutionResponse(solution), nil
}

func (s *solutionService) Update(ctx context.Context, docID string, payload dto.SolutionUpdateRequest) (dto.SolutionResponse, error) {
	if strings.TrimSpace(docID) == "" {
		return dto.SolutionResponse{}, ErrMissingIdentifier
	}
	if payload.Name != nil {
		trimmed := strings.TrimSpace(*payload.Name)
		payload.Name = &trimmed
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.SolutionResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "solutions.update", trace.WithAttributes(attribute.String("solution.doc_id", docID)))
	defer span.End()

	solution, err := s.repo.Update(spanCtx, docID, func(solution *models.Solution) {
		if payload.Name != nil {
			solution.Name = *payload.Name
		}
		if len(payload.Fields) > 0 {
			merged := datatypes.JSONMap{}
			for key, value := range solution.Fields {
				merged[key] = value
			}
			for key, value := range payload.Fields {
				merged[key] = value
			}
			solution.Fields = merged
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SolutionResponse{}, ErrSolutionNotFound
		}
		span.RecordError(err)
		return dto.SolutionResponse{}, fmt.Errorf("update solution: %w", err)
	}

	s.invalidateList(spanCtx)
	response := dto.NewSolutionResponse(solution)
	s.events.Publish(spanCtx, EventSolutionUpdated, response)
	s.logger.Info().Str("doc_id", docID).Msg("solution updated")

	return response, nil
}

func (s *solutionService) Delete(ctx context.Context, docID string) error {
	if strings.TrimSpace(docID) == "" {
		return ErrMissingIdentifier
	}

	spanCtx, span := s.tracer.Start(ctx, "solutions.delete", trace.WithAttributes(attribute.String("solution.doc_id", docID)))
	defer span.End()

	if err := s.repo.Delete(spanCtx, docID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete solution: %w", err)
	}

	s.invalidateList(spanCtx)
	s.events.Publish(spanCtx, EventSolutionDeleted, map[string]string{"doc_id": docID})
	s.logger.Info().Str("doc_id", docID).Msg("solution deleted")

	return nil
}

func (s *solutionService) cachedList(ctx context.Context) ([]dto.SolutionResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	cached, err := s.cache.Get(ctx, solutionListCacheKey).Result()
	if err != nil || cached == "" {
		if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read solution cache")
		}
		observability.SolutionCacheRequests().WithLabelValues("miss").Inc()
		return nil, false
	}

	var responses []dto.SolutionResponse
	if err := json.Unmarshal([]byte(cached), &responses); err != nil {
		observability.SolutionCacheRequests().WithLabelValues("miss").Inc()
		return nil, false
	}

	observability.SolutionCacheRequests().WithLabelValues("hit").Inc()
	return responses, true
}

func (s *solutionService) storeList(ctx context.Context, responses []dto.SolutionResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, solutionListCacheKey, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache solutions")
	}
}

func (s *solutionService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, solutionListCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate solution cache")
	}
}

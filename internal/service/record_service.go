package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
	"github.com/noah-isme/sasgp-api/internal/repository"
)

// RecordService exposes the append-only records attached to a solution.
type RecordService interface {
	SaveFormAnswers(ctx context.Context, solutionID string, payload dto.FormAnswersRequest) (dto.RecordCreatedResponse, error)
	ListFormAnswers(ctx context.Context, solutionID string) ([]dto.FormAnswersResponse, error)
	SaveResources(ctx context.Context, solutionID string, payload dto.ResourcesRequest) (dto.RecordCreatedResponse, error)
	ListResources(ctx context.Context, solutionID string) ([]dto.ResourcesResponse, error)
	SaveScore(ctx context.Context, solutionID string, payload dto.ScoreRequest) (dto.RecordCreatedResponse, error)
	ListScores(ctx context.Context, solutionID string) ([]dto.ScoreResponse, error)
	SaveCanvas(ctx context.Context, solutionID string, payload dto.CanvasRequest) (dto.RecordCreatedResponse, error)
	ListCanvases(ctx context.Context, solutionID string) ([]dto.CanvasResponse, error)
	SaveEvaluation(ctx context.Context, solutionID string, payload dto.EvaluationRequest) (dto.RecordCreatedResponse, error)
	ListEvaluations(ctx context.Context, solutionID string) ([]dto.EvaluationResponse, error)
	EvaluationSummary(ctx context.Context, solutionID string) (dto.EvaluationSummaryResponse, error)
	SaveReport(ctx context.Context, solutionID string, payload dto.ReportRequest) (dto.RecordCreatedResponse, error)
	ListReports(ctx context.Context, solutionID string) ([]dto.ReportResponse, error)
	DeleteReport(ctx context.Context, docID string) error
}

// RecordRepositories groups the repositories backing RecordService.
type RecordRepositories struct {
	FormAnswers repository.RecordRepository[models.FormAnswers]
	Resources   repository.RecordRepository[models.Resources]
	Scores      repository.RecordRepository[models.Score]
	Canvases    repository.RecordRepository[models.CanvasData]
	Evaluations repository.RecordRepository[models.Evaluation]
	Reports     repository.ReportRepository
}

type recordService struct {
	repos     RecordRepositories
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
}

type recordEvent struct {
	Kind       string `json:"kind"`
	DocID      string `json:"doc_id"`
	SolutionID string `json:"solution_id"`
}

// NewRecordService builds the record service.
func NewRecordService(repos RecordRepositories, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) RecordService {
	if events == nil {
		events = NopEventPublisher{}
	}

	return &recordService{
		repos:     repos,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "record_service").Logger(),
		tracer:    observability.Tracer("service/record"),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *recordService) SaveFormAnswers(ctx context.Context, solutionID string, payload dto.FormAnswersRequest) (dto.RecordCreatedResponse, error) {
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}

	record := models.FormAnswers{
		Record:  models.Record{SolutionID: solutionID},
		Answers: datatypes.JSONMap(payload.Answers),
	}
	return appendRecord(ctx, s, "form_answers", s.repos.FormAnswers, &record, &record.Record)
}

func (s *recordService) ListFormAnswers(ctx context.Context, solutionID string) ([]dto.FormAnswersResponse, error) {
	return listRecords(ctx, s, "form_answers", s.repos.FormAnswers, solutionID, dto.NewFormAnswersResponses)
}

func (s *recordService) SaveResources(ctx context.Context, solutionID string, payload dto.ResourcesRequest) (dto.RecordCreatedResponse, error) {
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}
	if !isCollection(payload.Resources) {
		return dto.RecordCreatedResponse{}, fmt.Errorf("%w: resources must be an object or a list", ErrInvalidPayload)
	}

	record := models.Resources{
		Record: models.Record{SolutionID: solutionID},
		Items:  datatypes.JSON(payload.Resources),
	}
	return appendRecord(ctx, s, "resources", s.repos.Resources, &record, &record.Record)
}

func (s *recordService) ListResources(ctx context.Context, solutionID string) ([]dto.ResourcesResponse, error) {
	return listRecords(ctx, s, "resources", s.repos.Resources, solutionID, dto.NewResourcesResponses)
}

func (s *recordService) SaveScore(ctx context.Context, solutionID string, payload dto.ScoreRequest) (dto.RecordCreatedResponse, error) {
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}
	if !isCollection(payload.PositiveMatrix) || !isCollection(payload.NegativeMatrix) {
		return dto.RecordCreatedResponse{}, fmt.Errorf("%w: matrices must be objects or lists", ErrInvalidPayload)
	}

	record := models.Score{
		Record:         models.Record{SolutionID: solutionID},
		KillSwitch:     payload.KillSwitch,
		PositiveMatrix: datatypes.JSON(payload.PositiveMatrix),
		NegativeMatrix: datatypes.JSON(payload.NegativeMatrix),
		Value:          *payload.Score,
	}
	return appendRecord(ctx, s, "scores", s.repos.Scores, &record, &record.Record)
}

func (s *recordService) ListScores(ctx context.Context, solutionID string) ([]dto.ScoreResponse, error) {
	return listRecords(ctx, s, "scores", s.repos.Scores, solutionID, dto.NewScoreResponses)
}

func (s *recordService) SaveCanvas(ctx context.Context, solutionID string, payload dto.CanvasRequest) (dto.RecordCreatedResponse, error) {
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}

	record := models.CanvasData{
		Record: models.Record{SolutionID: solutionID},
		Canvas: datatypes.JSONMap(payload.Canvas),
	}
	return appendRecord(ctx, s, "canvases", s.repos.Canvases, &record, &record.Record)
}

func (s *recordService) ListCanvases(ctx context.Context, solutionID string) ([]dto.CanvasResponse, error) {
	return listRecords(ctx, s, "canvases", s.repos.Canvases, solutionID, dto.NewCanvasResponses)
}

func (s *recordService) SaveEvaluation(ctx context.Context, solutionID string, payload dto.EvaluationRequest) (dto.RecordCreatedResponse, error) {
	if payload.Estrelas < models.MinEstrelas || payload.Estrelas > models.MaxEstrelas {
		return dto.RecordCreatedResponse{}, ErrInvalidRating
	}
	payload.Evaluator = s.clean(payload.Evaluator)
	payload.Comment = s.clean(payload.Comment)
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}

	record := models.Evaluation{
		Record:    models.Record{SolutionID: solutionID},
		Evaluator: payload.Evaluator,
		Comment:   payload.Comment,
		Estrelas:  payload.Estrelas,
	}
	return appendRecord(ctx, s, "evaluations", s.repos.Evaluations, &record, &record.Record)
}

func (s *recordService) ListEvaluations(ctx context.Context, solutionID string) ([]dto.EvaluationResponse, error) {
	return listRecords(ctx, s, "evaluations", s.repos.Evaluations, solutionID, dto.NewEvaluationResponses)
}

func (s *recordService) EvaluationSummary(ctx context.Context, solutionID string) (dto.EvaluationSummaryResponse, error) {
	if strings.TrimSpace(solutionID) == "" {
		return dto.EvaluationSummaryResponse{}, ErrMissingIdentifier
	}

	items, err := s.repos.Evaluations.ListBySolution(ctx, solutionID)
	if err != nil {
		return dto.EvaluationSummaryResponse{}, fmt.Errorf("list evaluations: %w", err)
	}

	return dto.NewEvaluationSummary(solutionID, items), nil
}

func (s *recordService) SaveReport(ctx context.Context, solutionID string, payload dto.ReportRequest) (dto.RecordCreatedResponse, error) {
	payload.Title = s.clean(payload.Title)
	payload.Author = s.clean(payload.Author)
	payload.Description = s.clean(payload.Description)
	if err := s.precheck(solutionID, payload); err != nil {
		return dto.RecordCreatedResponse{}, err
	}

	record := models.Report{
		Record:      models.Record{SolutionID: solutionID},
		Title:       payload.Title,
		Author:      payload.Author,
		Description: payload.Description,
	}
	return appendRecord(ctx, s, "reports", repository.RecordRepository[models.Report](s.repos.Reports), &record, &record.Record)
}

func (s *recordService) ListReports(ctx context.Context, solutionID string) ([]dto.ReportResponse, error) {
	return listRecords(ctx, s, "reports", repository.RecordRepository[models.Report](s.repos.Reports), solutionID, dto.NewReportResponses)
}

func (s *recordService) DeleteReport(ctx context.Context, docID string) error {
	if strings.TrimSpace(docID) == "" {
		return ErrMissingIdentifier
	}

	spanCtx, span := s.tracer.Start(ctx, "reports.delete", trace.WithAttributes(attribute.String("report.doc_id", docID)))
	defer span.End()

	if err := s.repos.Reports.Delete(spanCtx, docID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete report: %w", err)
	}

	s.events.Publish(spanCtx, EventReportDeleted, map[string]string{"doc_id": docID})
	s.logger.Info().Str("doc_id", docID).Msg("report deleted")
	return nil
}

func (s *recordService) precheck(solutionID string, payload interface{}) error {
	if strings.TrimSpace(solutionID) == "" {
		return ErrMissingIdentifier
	}
	return s.validator.Struct(payload)
}

// clean strips markup and keeps the remaining text as typed. Sanitize
// escapes entities, which are decoded again before storage.
func (s *recordService) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

func appendRecord[T any](ctx context.Context, s *recordService, kind string, repo repository.RecordRepository[T], record *T, header *models.Record) (dto.RecordCreatedResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, kind+".save", trace.WithAttributes(attribute.String("solution.id", header.SolutionID)))
	defer span.End()

	if err := repo.Create(spanCtx, record); err != nil {
		span.RecordError(err)
		return dto.RecordCreatedResponse{}, fmt.Errorf("save %s: %w", kind, err)
	}

	created := dto.RecordCreatedResponse{DocID: header.ID, SolutionID: header.SolutionID}
	s.events.Publish(spanCtx, EventRecordCreated, recordEvent{Kind: kind, DocID: header.ID, SolutionID: header.SolutionID})
	s.logger.Info().Str("kind", kind).Str("doc_id", header.ID).Str("solution_id", header.SolutionID).Msg("record saved")

	return created, nil
}

func listRecords[T, R any](ctx context.Context, s *recordService, kind string, repo repository.RecordRepository[T], solutionID string, convert func([]T) []R) ([]R, error) {
	if strings.TrimSpace(solutionID) == "" {
		return nil, ErrMissingIdentifier
	}

	spanCtx, span := s.tracer.Start(ctx, kind+".list", trace.WithAttributes(attribute.String("solution.id", solutionID)))
	defer span.End()

	items, err := repo.ListBySolution(spanCtx, solutionID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	return convert(items), nil
}

func isCollection(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return false
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

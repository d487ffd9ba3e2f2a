package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// FormAnswersRequest carries one evaluation form submission.
type FormAnswersRequest struct {
	Answers map[string]interface{} `json:"answers" validate:"required"`
}

// ResourcesRequest carries the resources a solution needs, as a map or a list.
type ResourcesRequest struct {
	Resources json.RawMessage `json:"resources" validate:"required"`
}

// ScoreRequest carries the scoring matrices and computed score.
type ScoreRequest struct {
	KillSwitch     bool            `json:"kill_switch"`
	PositiveMatrix json.RawMessage `json:"positive_matrix" validate:"required"`
	NegativeMatrix json.RawMessage `json:"negative_matrix" validate:"required"`
	Score          *float64        `json:"score" validate:"required"`
}

// CanvasRequest carries a canvas model snapshot.
type CanvasRequest struct {
	Canvas map[string]interface{} `json:"canvas" validate:"required"`
}

// EvaluationRequest carries a star-rated review.
type EvaluationRequest struct {
	Evaluator string `json:"evaluator" validate:"required,max=128"`
	Comment   string `json:"comment" validate:"required"`
	Estrelas  int    `json:"estrelas" validate:"min=1,max=5"`
}

// ReportRequest carries a development-history entry.
type ReportRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"max=128"`
	Description string `json:"description"`
}

// RecordCreatedResponse returns the document id of an appended record.
type RecordCreatedResponse struct {
	DocID      string `json:"doc_id"`
	SolutionID string `json:"solution_id"`
}

// RecordHeader is shared by every dependent record response.
type RecordHeader struct {
	DocID          string    `json:"doc_id"`
	SolutionID     string    `json:"solution_id"`
	RegisteredAt   time.Time `json:"registered_at"`
	RegisteredDate string    `json:"registered_date"`
}

func newRecordHeader(record models.Record) RecordHeader {
	return RecordHeader{
		DocID:          record.ID,
		SolutionID:     record.SolutionID,
		RegisteredAt:   record.RegisteredAt,
		RegisteredDate: utils.FormatDate(record.RegisteredAt),
	}
}

// FormAnswersResponse is the serialized form submission.
type FormAnswersResponse struct {
	RecordHeader
	Answers map[string]interface{} `json:"answers"`
}

// ResourcesResponse is the serialized resource listing.
type ResourcesResponse struct {
	RecordHeader
	Resources json.RawMessage `json:"resources"`
}

// ScoreResponse is the serialized score.
type ScoreResponse struct {
	RecordHeader
	KillSwitch     bool            `json:"kill_switch"`
	PositiveMatrix json.RawMessage `json:"positive_matrix"`
	NegativeMatrix json.RawMessage `json:"negative_matrix"`
	Score          float64         `json:"score"`
}

// CanvasResponse is the serialized canvas.
type CanvasResponse struct {
	RecordHeader
	Canvas map[string]interface{} `json:"canvas"`
}

// EvaluationResponse is the serialized evaluation.
type EvaluationResponse struct {
	RecordHeader
	Evaluator string `json:"evaluator"`
	Comment   string `json:"comment"`
	Estrelas  int    `json:"estrelas"`
	Stars     string `json:"stars"`
}

// ReportResponse is the serialized report.
type ReportResponse struct {
	RecordHeader
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
}

// EvaluationSummaryResponse aggregates the evaluations of a solution.
type EvaluationSummaryResponse struct {
	SolutionID string  `json:"solution_id"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	Stars      string  `json:"stars"`
}

const reportSummaryLength = 120

// NewFormAnswersResponses converts models into DTOs.
func NewFormAnswersResponses(items []models.FormAnswers) []FormAnswersResponse {
	responses := make([]FormAnswersResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, FormAnswersResponse{
			RecordHeader: newRecordHeader(item.Record),
			Answers:      nonNilMap(item.Answers),
		})
	}
	return responses
}

// NewResourcesResponses converts models into DTOs.
func NewResourcesResponses(items []models.Resources) []ResourcesResponse {
	responses := make([]ResourcesResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ResourcesResponse{
			RecordHeader: newRecordHeader(item.Record),
			Resources:    rawOrNull(item.Items),
		})
	}
	return responses
}

// NewScoreResponses converts models into DTOs.
func NewScoreResponses(items []models.Score) []ScoreResponse {
	responses := make([]ScoreResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ScoreResponse{
			RecordHeader:   newRecordHeader(item.Record),
			KillSwitch:     item.KillSwitch,
			PositiveMatrix: rawOrNull(item.PositiveMatrix),
			NegativeMatrix: rawOrNull(item.NegativeMatrix),
			Score:          item.Value,
		})
	}
	return responses
}

// NewCanvasResponses converts models into DTOs.
func NewCanvasResponses(items []models.CanvasData) []CanvasResponse {
	responses := make([]CanvasResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, CanvasResponse{
			RecordHeader: newRecordHeader(item.Record),
			Canvas:       nonNilMap(item.Canvas),
		})
	}
	return responses
}

// NewEvaluationResponses converts models into DTOs.
func NewEvaluationResponses(items []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, EvaluationResponse{
			RecordHeader: newRecordHeader(item.Record),
			Evaluator:    item.Evaluator,
			Comment:      item.Comment,
			Estrelas:     item.Estrelas,
			Stars:        utils.StarDisplay(float64(item.Estrelas)),
		})
	}
	return responses
}

// NewReportResponses converts models into DTOs.
func NewReportResponses(items []models.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ReportResponse{
			RecordHeader: newRecordHeader(item.Record),
			Title:        item.Title,
			Author:       item.Author,
			Description:  item.Description,
			Summary:      utils.Truncate(item.Description, reportSummaryLength),
		})
	}
	return responses
}

// StarRating exposes the rating for aggregation.
func (e EvaluationResponse) StarRating() int { return e.Estrelas }

// NewEvaluationSummary aggregates evaluations into an average and star display.
func NewEvaluationSummary[T utils.Rated](solutionID string, items []T) EvaluationSummaryResponse {
	average := utils.AverageRating(items)
	return EvaluationSummaryResponse{
		SolutionID: solutionID,
		Count:      len(items),
		Average:    average,
		Stars:      utils.StarDisplay(average),
	}
}

func nonNilMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func rawOrNull(data []byte) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(data)
}

package page

import (
	"context"

	"github.com/noah-isme/sasgp-api/internal/dto"
)

// SolutionReader loads solution headers.
type SolutionReader interface {
	Get(ctx context.Context, docID string) (dto.SolutionResponse, error)
	List(ctx context.Context) ([]dto.SolutionResponse, error)
}

// EvaluationStore saves and lists evaluations.
type EvaluationStore interface {
	SaveEvaluation(ctx context.Context, solutionID string, payload dto.EvaluationRequest) (dto.RecordCreatedResponse, error)
	ListEvaluations(ctx context.Context, solutionID string) ([]dto.EvaluationResponse, error)
}

// ReportStore saves, lists and deletes reports.
type ReportStore interface {
	SaveReport(ctx context.Context, solutionID string, payload dto.ReportRequest) (dto.RecordCreatedResponse, error)
	ListReports(ctx context.Context, solutionID string) ([]dto.ReportResponse, error)
	DeleteReport(ctx context.Context, docID string) error
}

// StatusStore reads and overwrites solution status.
type StatusStore interface {
	Get(ctx context.Context, docID string) (dto.StatusResponse, error)
	Set(ctx context.Context, docID string, payload dto.StatusRequest) (dto.StatusResponse, error)
}

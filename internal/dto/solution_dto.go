package dto

import (
	"time"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// SolutionCreateRequest describes the payload for registering a solution.
type SolutionCreateRequest struct {
	Name   string                 `json:"name" validate:"required,max=255"`
	Fields map[string]interface{} `json:"fields"`
}

// SolutionUpdateRequest describes a partial update. Fields are merged key by key.
type SolutionUpdateRequest struct {
	Name   *string                `json:"name" validate:"omitempty,min=1,max=255"`
	Fields map[string]interface{} `json:"fields"`
}

// SolutionCreatedResponse returns both identifiers of a new solution.
type SolutionCreatedResponse struct {
	SolutionID string `json:"solution_id"`
	DocID      string `json:"doc_id"`
}

// SolutionResponse is the serialized representation of a solution.
type SolutionResponse struct {
	DocID       string                 `json:"doc_id"`
	SolutionID  string                 `json:"solution_id"`
	Name        string                 `json:"name"`
	Fields      map[string]interface{} `json:"fields"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CreatedDate string                 `json:"created_date"`
	UpdatedDate string                 `json:"updated_date"`
}

// NewSolutionResponse converts a model into a DTO.
func NewSolutionResponse(model models.Solution) SolutionResponse {
	fields := map[string]interface{}(model.Fields)
	if fields == nil {
		fields = map[string]interface{}{}
	}

	return SolutionResponse{
		DocID:       model.ID,
		SolutionID:  model.LogicalID,
		Name:        model.Name,
		Fields:      fields,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		CreatedDate: utils.FormatDate(model.CreatedAt),
		UpdatedDate: utils.FormatDate(model.UpdatedAt),
	}
}

// NewSolutionResponseSlice converts models into DTOs.
func NewSolutionResponseSlice(solutions []models.Solution) []SolutionResponse {
	responses := make([]SolutionResponse, 0, len(solutions))
	for _, solution := range solutions {
		responses = append(responses, NewSolutionResponse(solution))
	}
	return responses
}

// StatusRequest overwrites the status of a solution.
type StatusRequest struct {
	Status string `json:"status" validate:"required,max=64"`
}

// StatusResponse reports the current status of a solution.
type StatusResponse struct {
	DocID     string     `json:"doc_id"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Solution is an innovation project record. ID is the store document id;
// LogicalID relates dependent records to it.
type Solution struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	LogicalID string            `gorm:"size:64;uniqueIndex;not null" json:"solution_id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Fields    datatypes.JSONMap `gorm:"type:json" json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TableName keeps the collection name stable.
func (Solution) TableName() string { return CollectionSolutions }

// BeforeCreate assigns the document identifier.
func (s *Solution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Collection names shared with the backing store.
const (
	CollectionSolutions   = "solutions"
	CollectionFormAnswers = "solution_form_answers"
	CollectionResources   = "solution_resources"
	CollectionScores      = "solution_scores"
	CollectionCanvases    = "solution_canvases"
	CollectionEvaluations = "solution_evaluations"
	CollectionStatus      = "solution_status"
	CollectionReports     = "solution_reports"
)

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Solution{},
		&FormAnswers{},
		&Resources{},
		&Score{},
		&CanvasData{},
		&Evaluation{},
		&Report{},
		&Status{},
	}
}

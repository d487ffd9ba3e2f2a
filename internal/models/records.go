package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Record is the common header of append-only records tied to a Solution.
type Record struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SolutionID   string    `gorm:"size:64;index;not null" json:"solution_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime;index" json:"registered_at"`
}

// BeforeCreate assigns the document identifier.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// FormAnswers stores one submission of the evaluation form.
type FormAnswers struct {
	Record
	Answers datatypes.JSONMap `gorm:"type:json" json:"answers"`
}

func (FormAnswers) TableName() string { return CollectionFormAnswers }

// Resources lists what a solution needs.
type Resources struct {
	Record
	Items datatypes.JSON `gorm:"type:json" json:"resources"`
}

func (Resources) TableName() string { return CollectionResources }

// Score holds the scoring matrices and the resulting value.
type Score struct {
	Record
	KillSwitch     bool           `gorm:"not null;default:false" json:"kill_switch"`
	PositiveMatrix datatypes.JSON `gorm:"type:json" json:"positive_matrix"`
	NegativeMatrix datatypes.JSON `gorm:"type:json" json:"negative_matrix"`
	Value          float64        `json:"score"`
}

func (Score) TableName() string { return CollectionScores }

// CanvasData stores a canvas model snapshot.
type CanvasData struct {
	Record
	Canvas datatypes.JSONMap `gorm:"type:json" json:"canvas"`
}

func (CanvasData) TableName() string { return CollectionCanvases }

// Evaluation is a star-rated peer review.
type Evaluation struct {
	Record
	Evaluator string `gorm:"size:128;not null" json:"evaluator"`
	Comment   string `gorm:"type:text" json:"comment"`
	Estrelas  int    `gorm:"not null" json:"estrelas"`
}

func (Evaluation) TableName() string { return CollectionEvaluations }

// StarRating exposes the rating for aggregation.
func (e Evaluation) StarRating() int { return e.Estrelas }

// Report is a development-history entry.
type Report struct {
	Record
	Title       string `gorm:"size:255;not null" json:"title"`
	Author      string `gorm:"size:128" json:"author"`
	Description string `gorm:"type:text" json:"description"`
}

func (Report) TableName() string { return CollectionReports }

// Status is the single current status of a Solution, keyed by its document id.
type Status struct {
	SolutionDocID string    `gorm:"primaryKey;size:36" json:"doc_id"`
	Value         string    `gorm:"column:status;size:64;not null" json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Status) TableName() string { return CollectionStatus }

// Rating bounds for evaluations.
const (
	MinEstrelas = 1
	MaxEstrelas = 5
)

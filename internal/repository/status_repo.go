package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
)

// StatusRepository reads and overwrites the current status of a Solution.
type StatusRepository interface {
	Get(ctx context.Context, solutionDocID string) (models.Status, error)
	Upsert(ctx context.Context, status *models.Status) error
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository instantiates the repository.
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Get(ctx context.Context, solutionDocID string) (status models.Status, err error) {
	defer func() { observability.ObserveStore(models.CollectionStatus, "get", err) }()

	if err = r.db.WithContext(ctx).First(&status, "solution_doc_id = ?", solutionDocID).Error; err != nil {
		return models.Status{}, err
	}
	return status, nil
}

func (r *statusRepository) Upsert(ctx context.Context, status *models.Status) (err error) {
	defer func() { observability.ObserveStore(models.CollectionStatus, "upsert", err) }()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "solution_doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(status).Error
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
)

// SolutionRepository defines persistence operations for solutions.
type SolutionRepository interface {
	List(ctx context.Context) ([]models.Solution, error)
	GetByID(ctx context.Context, id string) (models.Solution, error)
	Create(ctx context.Context, solution *models.Solution) error
	Update(ctx context.Context, id string, apply func(*models.Solution)) (models.Solution, error)
	Delete(ctx context.Context, id string) error
}

type solutionRepository struct {
	db *gorm.DB
}

// NewSolutionRepository instantiates a GORM-backed repository.
func NewSolutionRepository(db *gorm.DB) SolutionRepository {
	return &solutionRepository{db: db}
}

func (r *solutionRepository) List(ctx context.Context) (solutions []models.Solution, err error) {
	defer func() { observability.ObserveStore(models.CollectionSolutions, "list", err) }()

	solutions = []models.Solution{}
	if err = r.db.WithContext(ctx).Order("created_at DESC").Find(&solutions).Error; err != nil {
		return nil, err
	}

	return solutions, nil
}

func (r *solutionRepository) GetByID(ctx context.Context, id string) (solution models.Solution, err error) {
	defer func() { observability.ObserveStore(models.CollectionSolutions, "get", err) }()

	if err = r.db.WithContext(ctx).First(&solution, "id = ?", id).Error; err != nil {
		return models.Solution{}, err
	}

	return solution, nil
}

func (r *solutionRepository) Create(ctx context.Context, solution *models.Solution) (err error) {
	defer func() { observability.ObserveStore(models.CollectionSolutions, "create", err) }()

	return r.db.WithContext(ctx).Create(solution).Error
}

// Update loads the document, applies the mutation and saves it in one
// transaction. Returns gorm.ErrRecordNotFound when the id is unknown.
func (r *solutionRepository) Update(ctx context.Context, id string, apply func(*models.Solution)) (solution models.Solution, err error) {
	defer func() { observability.ObserveStore(models.CollectionSolutions, "update", err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&solution, "id = ?", id).Error; err != nil {
			return err
		}

		createdAt := solution.CreatedAt
		logicalID := solution.LogicalID
		apply(&solution)
		solution.ID = id
		solution.CreatedAt = createdAt
		solution.LogicalID = logicalID

		return tx.Save(&solution).Error
	})
	if err != nil {
		return models.Solution{}, err
	}

	return solution, nil
}

// Delete removes the document. Deleting an unknown id is not an error.
func (r *solutionRepository) Delete(ctx context.Context, id string) (err error) {
	defer func() { observability.ObserveStore(models.CollectionSolutions, "delete", err) }()

	err = r.db.WithContext(ctx).Delete(&models.Solution{}, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

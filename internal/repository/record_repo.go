package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/observability"
)

// RecordRepository stores append-only records that reference a Solution by logical id.
type RecordRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	ListBySolution(ctx context.Context, solutionID string) ([]T, error)
}

// ReportRepository adds single-document deletion to report records.
type ReportRepository interface {
	RecordRepository[models.Report]
	Delete(ctx context.Context, id string) error
}

type recordRepository[T any] struct {
	db         *gorm.DB
	collection string
}

// NewRecordRepository instantiates a repository for one dependent collection.
func NewRecordRepository[T any](db *gorm.DB, collection string) RecordRepository[T] {
	return &recordRepository[T]{db: db, collection: collection}
}

func (r *recordRepository[T]) Create(ctx context.Context, record *T) (err error) {
	defer func() { observability.ObserveStore(r.collection, "create", err) }()

	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository[T]) ListBySolution(ctx context.Context, solutionID string) (records []T, err error) {
	defer func() { observability.ObserveStore(r.collection, "list", err) }()

	records = []T{}
	if err = r.db.WithContext(ctx).
		Where("solution_id = ?", solutionID).
		Order("registered_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

type reportRepository struct {
	*recordRepository[models.Report]
}

// NewReportRepository instantiates the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{
		recordRepository: &recordRepository[models.Report]{db: db, collection: models.CollectionReports},
	}
}

// Delete removes one report by document id. Unknown ids are not an error.
func (r *reportRepository) Delete(ctx context.Context, id string) (err error) {
	defer func() { observability.ObserveStore(r.collection, "delete", err) }()

	err = r.db.WithContext(ctx).Delete(&models.Report{}, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newRecordRepositories(db *gorm.DB) RecordRepositories {
	return RecordRepositories{
		FormAnswers: repository.NewRecordRepository[models.FormAnswers](db, models.CollectionFormAnswers),
		Resources:   repository.NewRecordRepository[models.Resources](db, models.CollectionResources),
		Scores:      repository.NewRecordRepository[models.Score](db, models.CollectionScores),
		Canvases:    repository.NewRecordRepository[models.CanvasData](db, models.CollectionCanvases),
		Evaluations: repository.NewRecordRepository[models.Evaluation](db, models.CollectionEvaluations),
		Reports:     repository.NewReportRepository(db),
	}
}

// countingEvaluationRepo records how many store calls reached it.
type countingEvaluationRepo struct {
	calls int
	items []models.Evaluation
}

func (r *countingEvaluationRepo) Create(_ context.Context, record *models.Evaluation) error {
	r.calls++
	record.ID = uuid.NewString()
	r.items = append(r.items, *record)
	return nil
}

func (r *countingEvaluationRepo) ListBySolution(_ context.Context, solutionID string) ([]models.Evaluation, error) {
	r.calls++
	out := []models.Evaluation{}
	for _, item := range r.items {
		if item.SolutionID == solutionID {
			out = append(out, item)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, event string, _ interface{}) {
	p.events = append(p.events, event)
}

func isValidation(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/models"
)

// EvaluationPage drives the evaluation view of one solution.
type EvaluationPage struct {
	session     Session
	solutions   SolutionReader
	evaluations EvaluationStore
	status      StatusStore
	logger      zerolog.Logger
}

// NewEvaluationPage returns ErrMissingSession when the session is incomplete.
func NewEvaluationPage(session Session, solutions SolutionReader, evaluations EvaluationStore, status StatusStore, logger zerolog.Logger) (*EvaluationPage, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	return &EvaluationPage{
		session:     session,
		solutions:   solutions,
		evaluations: evaluations,
		status:      status,
		logger: logger.With().
			Str("component", "evaluation_page").
			Str("solution_id", session.SolutionID).
			Str("doc_id", session.DocumentID).
			Logger(),
	}, nil
}

// Load reads the header, the evaluations and the status in parallel.
func (p *EvaluationPage) Load(ctx context.Context) (dto.EvaluationPageView, error) {
	var (
		header      dto.SolutionResponse
		evaluations []dto.EvaluationResponse
		status      dto.StatusResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		header, err = p.solutions.Get(gctx, p.session.DocumentID)
		return err
	})
	g.Go(func() error {
		var err error
		evaluations, err = p.evaluations.ListEvaluations(gctx, p.session.SolutionID)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = p.status.Get(gctx, p.session.DocumentID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Error().Err(err).Msg("failed to load evaluation page")
		return dto.EvaluationPageView{}, err
	}

	if header.SolutionID != p.session.SolutionID {
		return dto.EvaluationPageView{}, ErrSessionMismatch
	}

	return dto.EvaluationPageView{
		Solution:    header,
		Status:      status.Status,
		Evaluations: evaluations,
		Summary:     dto.NewEvaluationSummary(p.session.SolutionID, evaluations),
	}, nil
}

// Submit validates the form, saves the evaluation and returns the refreshed list.
func (p *EvaluationPage) Submit(ctx context.Context, input dto.EvaluationRequest) (dto.EvaluationListView, error) {
	input.Evaluator = strings.TrimSpace(input.Evaluator)
	input.Comment = strings.TrimSpace(input.Comment)

	switch {
	case input.Evaluator == "":
		return dto.EvaluationListView{}, fmt.Errorf("%w: informe o nome do avaliador", ErrInvalidInput)
	case input.Comment == "":
		return dto.EvaluationListView{}, fmt.Errorf("%w: escreva um comentario", ErrInvalidInput)
	case input.Estrelas < models.MinEstrelas || input.Estrelas > models.MaxEstrelas:
		return dto.EvaluationListView{}, fmt.Errorf("%w: selecione de 1 a 5 estrelas", ErrInvalidInput)
	}

	if err := checkOwnership(ctx, p.solutions, p.session); err != nil {
		p.logger.Warn().Err(err).Msg("evaluation rejected for session")
		return dto.EvaluationListView{}, err
	}

	if _, err := p.evaluations.SaveEvaluation(ctx, p.session.SolutionID, input); err != nil {
		p.logger.Error().Err(err).Msg("failed to save evaluation")
		return dto.EvaluationListView{}, err
	}

	evaluations, err := p.evaluations.ListEvaluations(ctx, p.session.SolutionID)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to refresh evaluations")
		return dto.EvaluationListView{}, err
	}

	return dto.EvaluationListView{
		Evaluations: evaluations,
		Summary:     dto.NewEvaluationSummary(p.session.SolutionID, evaluations),
	}, nil
}

// ChangeStatus overwrites the status of the solution.
func (p *EvaluationPage) ChangeStatus(ctx context.Context, status string) (dto.StatusResponse, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return dto.StatusResponse{}, fmt.Errorf("%w: selecione um status", ErrInvalidInput)
	}

	if err := checkOwnership(ctx, p.solutions, p.session); err != nil {
		p.logger.Warn().Err(err).Msg("status change rejected for session")
		return dto.StatusResponse{}, err
	}

	response, err := p.status.Set(ctx, p.session.DocumentID, dto.StatusRequest{Status: status})
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to change status")
		return dto.StatusResponse{}, err
	}
	return response, nil
}

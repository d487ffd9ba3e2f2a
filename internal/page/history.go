package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sasgp-api/internal/dto"
)

// HistoryPage drives the development-history view of one solution.
type HistoryPage struct {
	session   Session
	solutions SolutionReader
	reports   ReportStore
	logger    zerolog.Logger
}

// NewHistoryPage returns ErrMissingSession when the session is incomplete.
func NewHistoryPage(session Session, solutions SolutionReader, reports ReportStore, logger zerolog.Logger) (*HistoryPage, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	return &HistoryPage{
		session:   session,
		solutions: solutions,
		reports:   reports,
		logger: logger.With().
			Str("component", "history_page").
			Str("solution_id", session.SolutionID).
			Str("doc_id", session.DocumentID).
			Logger(),
	}, nil
}

// Load reads the header and the reports in parallel.
func (p *HistoryPage) Load(ctx context.Context) (dto.HistoryPageView, error) {
	var (
		header  dto.SolutionResponse
		reports []dto.ReportResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		header, err = p.solutions.Get(gctx, p.session.DocumentID)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = p.reports.ListReports(gctx, p.session.SolutionID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Error().Err(err).Msg("failed to load history page")
		return dto.HistoryPageView{}, err
	}

	if header.SolutionID != p.session.SolutionID {
		return dto.HistoryPageView{}, ErrSessionMismatch
	}

	return dto.HistoryPageView{Solution: header, Reports: reports}, nil
}

// AddReport validates and saves a report, then returns the refreshed list.
func (p *HistoryPage) AddReport(ctx context.Context, input dto.ReportRequest) ([]dto.ReportResponse, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Description = strings.TrimSpace(input.Description)

	switch {
	case input.Title == "":
		return nil, fmt.Errorf("%w: informe o titulo do relatorio", ErrInvalidInput)
	case input.Description == "":
		return nil, fmt.Errorf("%w: descreva o relatorio", ErrInvalidInput)
	}

	if err := checkOwnership(ctx, p.solutions, p.session); err != nil {
		p.logger.Warn().Err(err).Msg("report rejected for session")
		return nil, err
	}

	if _, err := p.reports.SaveReport(ctx, p.session.SolutionID, input); err != nil {
		p.logger.Error().Err(err).Msg("failed to save report")
		return nil, err
	}

	return p.refresh(ctx)
}

// RemoveReport deletes one report of the session's solution and returns the
// refreshed list. Ids of reports belonging to other solutions are ignored.
func (p *HistoryPage) RemoveReport(ctx context.Context, reportDocID string) ([]dto.ReportResponse, error) {
	reportDocID = strings.TrimSpace(reportDocID)
	if reportDocID == "" {
		return nil, fmt.Errorf("%w: relatorio nao informado", ErrInvalidInput)
	}

	if err := checkOwnership(ctx, p.solutions, p.session); err != nil {
		p.logger.Warn().Err(err).Msg("report removal rejected for session")
		return nil, err
	}

	current, err := p.refresh(ctx)
	if err != nil {
		return nil, err
	}
	if !containsReport(current, reportDocID) {
		p.logger.Warn().Str("report_id", reportDocID).Msg("report not owned by solution, nothing removed")
		return current, nil
	}

	if err := p.reports.DeleteReport(ctx, reportDocID); err != nil {
		p.logger.Error().Err(err).Str("report_id", reportDocID).Msg("failed to delete report")
		return nil, err
	}

	return p.refresh(ctx)
}

func (p *HistoryPage) refresh(ctx context.Context) ([]dto.ReportResponse, error) {
	reports, err := p.reports.ListReports(ctx, p.session.SolutionID)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to refresh reports")
		return nil, err
	}
	return reports, nil
}

func containsReport(reports []dto.ReportResponse, docID string) bool {
	for _, report := range reports {
		if report.DocID == docID {
			return true
		}
	}
	return false
}

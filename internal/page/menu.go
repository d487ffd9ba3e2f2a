package page

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/dto"
)

// Query parameters carrying the session between views.
const (
	SolutionIDParam = "solution_id"
	DocIDParam      = "doc_id"
)

// ContextMenuPage lists solutions with their per-solution actions.
type ContextMenuPage struct {
	solutions SolutionReader
	apiPrefix string
	logger    zerolog.Logger
}

// NewContextMenuPage builds the landing page controller. apiPrefix is the
// base path of the REST endpoints used by the edit and delete actions.
func NewContextMenuPage(solutions SolutionReader, apiPrefix string, logger zerolog.Logger) *ContextMenuPage {
	return &ContextMenuPage{
		solutions: solutions,
		apiPrefix: apiPrefix,
		logger:    logger.With().Str("component", "context_menu_page").Logger(),
	}
}

// Load lists every solution, newest first, with its menu.
func (p *ContextMenuPage) Load(ctx context.Context) (dto.MenuView, error) {
	solutions, err := p.solutions.List(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to load solutions")
		return dto.MenuView{}, err
	}

	entries := make([]dto.MenuEntry, 0, len(solutions))
	for _, solution := range solutions {
		entries = append(entries, dto.MenuEntry{
			Solution: solution,
			Actions:  p.BuildMenu(solution),
		})
	}

	return dto.MenuView{Solutions: entries}, nil
}

// BuildMenu returns the context menu of one solution. Navigation links carry
// both identifiers.
func (p *ContextMenuPage) BuildMenu(solution dto.SolutionResponse) []dto.MenuAction {
	query := SessionQuery(NewSession(solution.SolutionID, solution.DocID))
	resource := p.apiPrefix + "/solutions/" + url.PathEscape(solution.DocID)

	return []dto.MenuAction{
		{Key: "evaluate", Label: "Avaliar", Method: "GET", Href: "/pages/evaluation?" + query},
		{Key: "history", Label: "Historico", Method: "GET", Href: "/pages/history?" + query},
		{Key: "edit", Label: "Editar", Method: "PATCH", Href: resource},
		{Key: "delete", Label: "Excluir", Method: "DELETE", Href: resource},
	}
}

// SessionQuery encodes the session as query parameters.
func SessionQuery(session Session) string {
	values := url.Values{}
	values.Set(SolutionIDParam, session.SolutionID)
	values.Set(DocIDParam, session.DocumentID)
	return values.Encode()
}

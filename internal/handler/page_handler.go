package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/page"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// Cookies holding the selected solution between views.
const (
	SolutionIDCookie = "sasgp_solution_id"
	DocIDCookie      = "sasgp_doc_id"
)

// PageRecords is the record access needed by the evaluation and history pages.
type PageRecords interface {
	page.EvaluationStore
	page.ReportStore
}

// PageHandler serves the view models of the evaluation, history and menu pages.
type PageHandler struct {
	solutions page.SolutionReader
	records   PageRecords
	status    page.StatusStore
	menu      *page.ContextMenuPage
	logger    zerolog.Logger
}

// NewPageHandler constructs the handler. apiPrefix is used for menu links.
func NewPageHandler(solutions page.SolutionReader, records PageRecords, status page.StatusStore, apiPrefix string, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		solutions: solutions,
		records:   records,
		status:    status,
		menu:      page.NewContextMenuPage(solutions, apiPrefix, logger),
		logger:    logger.With().Str("component", "page_handler").Logger(),
	}
}

// Register attaches page endpoints to the router group.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/menu", h.menuPage)
	router.Get("/evaluation", h.evaluationPage)
	router.Post("/evaluation/evaluations", h.submitEvaluation)
	router.Put("/evaluation/status", h.changeStatus)
	router.Get("/history", h.historyPage)
	router.Post("/history/reports", h.addReport)
	router.Delete("/history/reports/:docId", h.removeReport)
}

func (h *PageHandler) menuPage(c *fiber.Ctx) error {
	view, err := h.menu.Load(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "menu loaded", view)
}

func (h *PageHandler) evaluationPage(c *fiber.Ctx) error {
	controller, err := h.evaluationController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	view, err := controller.Load(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.persistSession(c)
	return utils.SendSuccess(c, "evaluation page loaded", view)
}

func (h *PageHandler) submitEvaluation(c *fiber.Ctx) error {
	controller, err := h.evaluationController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	var payload dto.EvaluationRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	view, err := controller.Submit(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendCreated(c, "avaliacao registrada", view)
}

func (h *PageHandler) changeStatus(c *fiber.Ctx) error {
	controller, err := h.evaluationController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	var payload dto.StatusRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	status, err := controller.ChangeStatus(c.UserContext(), payload.Status)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "status atualizado", status)
}

func (h *PageHandler) historyPage(c *fiber.Ctx) error {
	controller, err := h.historyController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	view, err := controller.Load(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.persistSession(c)
	return utils.SendSuccess(c, "history page loaded", view)
}

func (h *PageHandler) addReport(c *fiber.Ctx) error {
	controller, err := h.historyController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	var payload dto.ReportRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	reports, err := controller.AddReport(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendCreated(c, "relatorio registrado", reports)
}

func (h *PageHandler) removeReport(c *fiber.Ctx) error {
	controller, err := h.historyController(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	reports, err := controller.RemoveReport(c.UserContext(), c.Params("docId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "relatorio excluido", reports)
}

func (h *PageHandler) evaluationController(c *fiber.Ctx) (*page.EvaluationPage, error) {
	return page.NewEvaluationPage(sessionFromRequest(c), h.solutions, h.records, h.status, *requestLogger(h.logger, c))
}

func (h *PageHandler) historyController(c *fiber.Ctx) (*page.HistoryPage, error) {
	return page.NewHistoryPage(sessionFromRequest(c), h.solutions, h.records, *requestLogger(h.logger, c))
}

func (h *PageHandler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, page.ErrMissingSession) {
		requestLogger(h.logger, c).Warn().Str("path", c.Path()).Msg("incomplete session, redirecting to landing page")
		return c.Redirect(page.LandingPath, fiber.StatusFound)
	}
	return respondError(c, h.logger, err)
}

func (h *PageHandler) persistSession(c *fiber.Ctx) {
	session := sessionFromRequest(c)
	for name, value := range map[string]string{
		SolutionIDCookie: session.SolutionID,
		DocIDCookie:      session.DocumentID,
	} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// sessionFromRequest reads the identifiers from the query string, falling
// back to the cookies set by a previous page load.
func sessionFromRequest(c *fiber.Ctx) page.Session {
	solutionID := c.Query(page.SolutionIDParam)
	if solutionID == "" {
		solutionID = c.Cookies(SolutionIDCookie)
	}
	docID := c.Query(page.DocIDParam)
	if docID == "" {
		docID = c.Cookies(DocIDCookie)
	}
	return page.NewSession(solutionID, docID)
}

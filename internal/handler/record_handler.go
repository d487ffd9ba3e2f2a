package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/service"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// RecordHandler wires the dependent record routes of a solution.
type RecordHandler struct {
	service service.RecordService
	logger  zerolog.Logger
}

// NewRecordHandler constructs the handler.
func NewRecordHandler(service service.RecordService, logger zerolog.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		logger:  logger.With().Str("component", "record_handler").Logger(),
	}
}

// Register attaches record endpoints under /solutions/:solutionId.
func (h *RecordHandler) Register(solutions fiber.Router) {
	solutions.Get("/:solutionId/form-answers", h.listFormAnswers)
	solutions.Post("/:solutionId/form-answers", h.saveFormAnswers)
	solutions.Get("/:solutionId/resources", h.listResources)
	solutions.Post("/:solutionId/resources", h.saveResources)
	solutions.Get("/:solutionId/scores", h.listScores)
	solutions.Post("/:solutionId/scores", h.saveScore)
	solutions.Get("/:solutionId/canvases", h.listCanvases)
	solutions.Post("/:solutionId/canvases", h.saveCanvas)
	solutions.Get("/:solutionId/evaluations/summary", h.evaluationSummary)
	solutions.Get("/:solutionId/evaluations", h.listEvaluations)
	solutions.Post("/:solutionId/evaluations", h.saveEvaluation)
	solutions.Get("/:solutionId/reports", h.listReports)
	solutions.Post("/:solutionId/reports", h.saveReport)
}

// RegisterReports attaches report deletion by document id.
func (h *RecordHandler) RegisterReports(reports fiber.Router) {
	reports.Delete("/:docId", h.deleteReport)
}

func (h *RecordHandler) saveFormAnswers(c *fiber.Ctx) error {
	var payload dto.FormAnswersRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveFormAnswers(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "form answers saved", created, err)
}

func (h *RecordHandler) listFormAnswers(c *fiber.Ctx) error {
	items, err := h.service.ListFormAnswers(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "form answers retrieved", items, err)
}

func (h *RecordHandler) saveResources(c *fiber.Ctx) error {
	var payload dto.ResourcesRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveResources(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "resources saved", created, err)
}

func (h *RecordHandler) listResources(c *fiber.Ctx) error {
	items, err := h.service.ListResources(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "resources retrieved", items, err)
}

func (h *RecordHandler) saveScore(c *fiber.Ctx) error {
	var payload dto.ScoreRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveScore(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "score saved", created, err)
}

func (h *RecordHandler) listScores(c *fiber.Ctx) error {
	items, err := h.service.ListScores(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "scores retrieved", items, err)
}

func (h *RecordHandler) saveCanvas(c *fiber.Ctx) error {
	var payload dto.CanvasRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveCanvas(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "canvas saved", created, err)
}

func (h *RecordHandler) listCanvases(c *fiber.Ctx) error {
	items, err := h.service.ListCanvases(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "canvases retrieved", items, err)
}

func (h *RecordHandler) saveEvaluation(c *fiber.Ctx) error {
	var payload dto.EvaluationRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveEvaluation(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "evaluation saved", created, err)
}

func (h *RecordHandler) listEvaluations(c *fiber.Ctx) error {
	items, err := h.service.ListEvaluations(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "evaluations retrieved", items, err)
}

func (h *RecordHandler) evaluationSummary(c *fiber.Ctx) error {
	summary, err := h.service.EvaluationSummary(c.UserContext(), c.Params("solutionId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "evaluation summary retrieved", summary)
}

func (h *RecordHandler) saveReport(c *fiber.Ctx) error {
	var payload dto.ReportRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}
	created, err := h.service.SaveReport(c.UserContext(), c.Params("solutionId"), payload)
	return h.created(c, "report saved", created, err)
}

func (h *RecordHandler) listReports(c *fiber.Ctx) error {
	items, err := h.service.ListReports(c.UserContext(), c.Params("solutionId"))
	return h.listed(c, "reports retrieved", items, err)
}

func (h *RecordHandler) deleteReport(c *fiber.Ctx) error {
	docID := c.Params("docId")
	if err := h.service.DeleteReport(c.UserContext(), docID); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "report deleted", fiber.Map{"doc_id": docID})
}

func (h *RecordHandler) created(c *fiber.Ctx, message string, created dto.RecordCreatedResponse, err error) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendCreated(c, message, created)
}

func (h *RecordHandler) listed(c *fiber.Ctx, message string, items interface{}, err error) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, message, items)
}

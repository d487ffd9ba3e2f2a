package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/dto"
	"github.com/noah-isme/sasgp-api/internal/service"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// SolutionHandler wires solution and status HTTP routes.
type SolutionHandler struct {
	solutions service.SolutionService
	status    service.StatusService
	logger    zerolog.Logger
}

// NewSolutionHandler constructs the handler.
func NewSolutionHandler(solutions service.SolutionService, status service.StatusService, logger zerolog.Logger) *SolutionHandler {
	return &SolutionHandler{
		solutions: solutions,
		status:    status,
		logger:    logger.With().Str("component", "solution_handler").Logger(),
	}
}

// Register attaches solution endpoints to the router group.
func (h *SolutionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:docId", h.get)
	router.Patch("/:docId", h.update)
	router.Delete("/:docId", h.delete)
	router.Get("/:docId/status", h.getStatus)
	router.Put("/:docId/status", h.setStatus)
}

func (h *SolutionHandler) list(c *fiber.Ctx) error {
	solutions, err := h.solutions.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "solutions retrieved", solutions)
}

func (h *SolutionHandler) create(c *fiber.Ctx) error {
	var payload dto.SolutionCreateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	created, err := h.solutions.Add(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendCreated(c, "solution created", created)
}

func (h *SolutionHandler) get(c *fiber.Ctx) error {
	solution, err := h.solutions.Get(c.UserContext(), c.Params("docId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "solution retrieved", solution)
}

func (h *SolutionHandler) update(c *fiber.Ctx) error {
	var payload dto.SolutionUpdateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	solution, err := h.solutions.Update(c.UserContext(), c.Params("docId"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "solution updated", solution)
}

func (h *SolutionHandler) delete(c *fiber.Ctx) error {
	docID := c.Params("docId")
	if err := h.solutions.Delete(c.UserContext(), docID); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "solution deleted", fiber.Map{"doc_id": docID})
}

func (h *SolutionHandler) getStatus(c *fiber.Ctx) error {
	status, err := h.status.Get(c.UserContext(), c.Params("docId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "status retrieved", status)
}

func (h *SolutionHandler) setStatus(c *fiber.Ctx) error {
	var payload dto.StatusRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	status, err := h.status.Set(c.UserContext(), c.Params("docId"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "status updated", status)
}

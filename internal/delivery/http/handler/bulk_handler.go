package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/queue"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BulkMatchHandler struct {
	uc usecase.BulkMatchingUsecase
}

type bulkMatchRequest struct {
	TenantID           string             `json:"tenant_id"`
	JobIDs             []uuid.UUID        `json:"job_ids"`
	CandidateIDs       []uuid.UUID        `json:"candidate_ids"`
	WeightOverrides    map[string]float64 `json:"weight_overrides"`
	Priority           string             `json:"priority"`
	NotifyOnCompletion bool               `json:"notify_on_completion"`
}

func NewBulkMatchHandler(uc usecase.BulkMatchingUsecase) *BulkMatchHandler {
	return &BulkMatchHandler{uc: uc}
}

func (h *BulkMatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/bulk-matches")
	grp.Post("/", h.Submit)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Cancel)
}

func (h *BulkMatchHandler) Submit(c fiber.Ctx) error {
	var req bulkMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	snap, err := h.uc.Submit(c.Context(), queue.BulkRequest{
		TenantID:           req.TenantID,
		JobIDs:             req.JobIDs,
		CandidateIDs:       req.CandidateIDs,
		WeightOverrides:    toWeights(req.WeightOverrides),
		Priority:           queue.Priority(req.Priority),
		NotifyOnCompletion: req.NotifyOnCompletion,
	})
	if err != nil {
		return mapQueueError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageOK, dto.NewQueueEntryResponse(snap))
}

func (h *BulkMatchHandler) List(c fiber.Ctx) error {
	snaps := h.uc.List(c.Context())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQueueEntryListResponse(snaps))
}

func (h *BulkMatchHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	snap, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapQueueError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQueueEntryResponse(snap))
}

func (h *BulkMatchHandler) Cancel(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.Cancel(c.Context(), id); err != nil {
		return mapQueueError(err)
	}

	snap, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapQueueError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQueueEntryResponse(snap))
}

func mapQueueError(err error) error {
	switch {
	case errors.Is(err, queue.ErrBackpressure):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Tenant at max concurrent bulk jobs", nil, err)
	case errors.Is(err, queue.ErrInvalidRequest):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid bulk matching request", nil, err)
	case errors.Is(err, queue.ErrEntryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Queue entry not found", nil, err)
	case errors.Is(err, queue.ErrEntryTerminal):
		return middleware.NewAppError(fiber.StatusConflict, "Queue entry already terminal", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"bytes"
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/export"
	"talent-match/internal/pkg/response"
	"talent-match/internal/queue"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc   usecase.MatchingUsecase
	bulk usecase.BulkMatchingUsecase
}

type matchRequest struct {
	CandidateID     uuid.UUID          `json:"candidate_id"`
	JobID           uuid.UUID          `json:"job_id"`
	WeightOverrides map[string]float64 `json:"weight_overrides"`
	TenantID        string             `json:"tenant_id"`
	Queued          bool               `json:"queued"`
	Priority        string             `json:"priority"`
}

type statusUpdateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func NewMatchHandler(uc usecase.MatchingUsecase, bulk usecase.BulkMatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc, bulk: bulk}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id/status", h.UpdateStatus)
	grp.Post("/:id/reopen", h.Reopen)

	jobs := r.Group("/jobs")
	jobs.Get("/:job_id/matches", h.ListByJob)
	jobs.Get("/:job_id/matches/export", h.ExportByJob)
}

// Create scores one pair synchronously, or enqueues it when the caller
// explicitly asks for a queued single.
func (h *MatchHandler) Create(c fiber.Ctx) error {
	var req matchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if req.Queued {
		snap, err := h.bulk.SubmitSingle(c.Context(), queue.SingleRequest{
			TenantID:        req.TenantID,
			CandidateID:     req.CandidateID,
			JobID:           req.JobID,
			WeightOverrides: toWeights(req.WeightOverrides),
			Priority:        queue.Priority(req.Priority),
		})
		if err != nil {
			return mapQueueError(err)
		}
		return response.Success(c, fiber.StatusAccepted, response.MessageOK, dto.NewQueueEntryResponse(snap))
	}

	res, err := h.uc.Match(c.Context(), usecase.MatchRequest{
		CandidateID:     req.CandidateID,
		JobID:           req.JobID,
		WeightOverrides: toWeights(req.WeightOverrides),
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMatchResponse(res))
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	res, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(res))
}

// ListByJob returns the latest version per candidate, best score first.
func (h *MatchHandler) ListByJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	results, err := h.uc.ListByJob(c.Context(), jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(results))
}

func (h *MatchHandler) ExportByJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	results, err := h.uc.ListByJob(c.Context(), jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, results); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="matches_`+jobID.String()+`.csv"`)
	return c.Send(buf.Bytes())
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req statusUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.UpdateStatus(c.Context(), id, match.Status(req.From), match.Status(req.To)); err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *MatchHandler) Reopen(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.Reopen(c.Context(), id); err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toWeights(raw map[string]float64) matching.Weights {
	if len(raw) == 0 {
		return nil
	}
	w := make(matching.Weights, len(raw))
	for k, v := range raw {
		w[match.FactorCategory(k)] = v
	}
	return w
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCriteria):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid matching criteria", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrStatusConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Match status changed concurrently", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrMatchTimeout):
		return middleware.NewAppError(fiber.StatusRequestTimeout, "Match computation timed out", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

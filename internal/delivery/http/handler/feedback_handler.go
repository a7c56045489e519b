package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/match"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type FeedbackHandler struct {
	uc usecase.FeedbackUsecase
}

type feedbackRequest struct {
	Outcome string    `json:"outcome"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	UserID  uuid.UUID `json:"user_id"`
}

func NewFeedbackHandler(uc usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matches/:id/feedback", h.Submit)
	r.Get("/feedback", h.List)
}

func (h *FeedbackHandler) List(c fiber.Ctx) error {
	all, err := h.uc.List(c.Context())
	if err != nil {
		return mapFeedbackError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFeedbackListResponse(all))
}

func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req feedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	saved, err := h.uc.Submit(c.Context(), match.Feedback{
		MatchID: matchID,
		Outcome: match.FeedbackOutcome(req.Outcome),
		Rating:  req.Rating,
		Comment: req.Comment,
		UserID:  req.UserID,
	})
	if err != nil {
		return mapFeedbackError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewFeedbackResponse(saved))
}

func mapFeedbackError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidFeedback):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid feedback", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

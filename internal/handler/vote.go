package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

type VoteHandler struct {
	svc *service.FeedService
}

func NewVoteHandler(svc *service.FeedService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/posts/:postId/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	postID, errMsg := middleware.ValidatePostID(c.Params("postId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	role, errMsg := middleware.ValidateRole(req.Role)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ROLE", errMsg)
	}
	req.Role = string(role)

	verdict, errMsg := middleware.ValidateVoteVerdict(req.Verdict)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VERDICT", errMsg)
	}
	req.Verdict = string(verdict)

	req.Reason = middleware.ValidateReason(req.Reason)

	resp, err := h.svc.SubmitVote(postID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	Metrics.VotesTotal.WithLabelValues(string(verdict)).Inc()

	return c.JSON(resp)
}

package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

type VerifyHandler struct {
	svc *service.VerifyService
}

func NewVerifyHandler(svc *service.VerifyService) *VerifyHandler {
	return &VerifyHandler{svc: svc}
}

// Verify handles POST /api/posts/:postId/verify?context=NEWS&force=true
//
// Without force, a post that already carries verification details is left
// untouched (viewing never silently re-analyzes). force triggers a full
// re-run that supersedes the prior payload.
func (h *VerifyHandler) Verify(c fiber.Ctx) error {
	postID, errMsg := middleware.ValidatePostID(c.Params("postId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	contextType := model.ContextType(strings.ToUpper(fiber.Query[string](c, "context")))
	if contextType != "" && !model.ValidContextTypes[contextType] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CONTEXT",
			"context must be one of: NEWS, CHAT, DEBATE")
	}

	force := fiber.Query[bool](c, "force")

	post, degraded, err := h.svc.Verify(c.Context(), postID, contextType, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
		}
		if errors.Is(err, service.ErrAlreadyVerified) {
			// Not an error for the client: return the existing state.
			return c.JSON(fiber.Map{"post": post, "analyzed": false, "degraded": false})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify post")
	}

	if degraded {
		Metrics.AnalysesTotal.WithLabelValues("fallback").Inc()
	} else {
		Metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	}

	return c.JSON(fiber.Map{"post": post, "analyzed": true, "degraded": degraded})
}

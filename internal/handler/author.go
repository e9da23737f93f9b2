package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

type AuthorHandler struct {
	svc *service.AuthorService
}

func NewAuthorHandler(svc *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

// GetByAuthor handles GET /api/authors/:author
func (h *AuthorHandler) GetByAuthor(c fiber.Ctx) error {
	author, errMsg := middleware.ValidateAuthor(c.Params("author"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Lookup(c.Context(), author)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No posts by this author")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up author")
	}

	return c.JSON(resp)
}

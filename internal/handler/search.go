package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
)

type SearchHandler struct {
	svc *service.FeedService
}

func NewSearchHandler(svc *service.FeedService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles POST /api/search
//
// A collaborator failure is not a 5xx: the client gets an explicit empty,
// degraded result set instead of an unresolved loading state.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	var req model.SearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	query, errMsg := middleware.ValidateQuery(req.Query)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", errMsg)
	}

	results, err := h.svc.Search(c.Context(), query, req.Filters)
	if err != nil {
		Metrics.SearchFailures.Inc()
		return c.JSON(fiber.Map{
			"posts":    []model.Post{},
			"total":    0,
			"degraded": true,
		})
	}

	return c.JSON(fiber.Map{
		"posts":    results,
		"total":    len(results),
		"degraded": false,
	})
}

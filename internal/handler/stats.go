package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
)

type StatsHandler struct {
	authors   *service.AuthorService
	consensus *service.ConsensusService
	users     *service.CredibilityService
}

func NewStatsHandler(authors *service.AuthorService, consensus *service.ConsensusService, users *service.CredibilityService) *StatsHandler {
	return &StatsHandler{authors: authors, consensus: consensus, users: users}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	return c.JSON(h.authors.Stats(h.consensus))
}

// GetUser handles GET /api/users/:userId — the voter's current standing and
// the credibility value that would be snapshotted onto their next vote.
func (h *StatsHandler) GetUser(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	return c.JSON(h.users.Standing(userID))
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

type ExportHandler struct {
	st *store.FeedStore
}

func NewExportHandler(st *store.FeedStore) *ExportHandler {
	return &ExportHandler{st: st}
}

// Export handles GET /api/export — a full JSON dump of the current feed,
// vote histories included. Heavily rate limited; meant for research and
// moderation tooling, not regular clients.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	posts := h.st.All()

	c.Set("Content-Disposition", "attachment; filename=omnitruth-feed.json")
	return c.JSON(fiber.Map{
		"posts":       posts,
		"total":       len(posts),
		"revision":    h.st.Revision(),
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

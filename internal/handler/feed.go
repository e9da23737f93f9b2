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

type FeedHandler struct {
	svc *service.FeedService
	st  *store.FeedStore
}

func NewFeedHandler(svc *service.FeedService, st *store.FeedStore) *FeedHandler {
	return &FeedHandler{svc: svc, st: st}
}

// GetFeed handles GET /api/feed?filter=X&sort=Y
func (h *FeedHandler) GetFeed(c fiber.Ctx) error {
	filter, errMsg := middleware.ValidateVerdictFilter(fiber.Query[string](c, "filter"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FILTER", errMsg)
	}

	sortKey, errMsg := middleware.ValidateSortKey(fiber.Query[string](c, "sort"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SORT", errMsg)
	}

	posts := h.svc.Feed(filter, sortKey)

	return c.JSON(fiber.Map{
		"posts":      posts,
		"total":      len(posts),
		"refreshing": h.svc.Refreshing(),
		"revision":   h.st.Revision(),
	})
}

// GetPost handles GET /api/posts/:postId
func (h *FeedHandler) GetPost(c fiber.Ctx) error {
	postID, errMsg := middleware.ValidatePostID(c.Params("postId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	post, err := h.st.Get(postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load post")
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (h *FeedHandler) CreatePost(c fiber.Ctx) error {
	var req model.CreatePostRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	author, errMsg := middleware.ValidateAuthor(req.Author)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Author = author

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "author and content are required")
	}
	if len(req.Content) > middleware.MaxContentLen {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "content must be at most 2000 characters")
	}

	post, err := h.svc.AddPost(req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// Like handles POST /api/posts/:postId/like
func (h *FeedHandler) Like(c fiber.Ctx) error {
	postID, errMsg := middleware.ValidatePostID(c.Params("postId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	post, err := h.svc.Like(postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to like post")
	}

	return c.JSON(fiber.Map{"success": true, "likes": post.Likes})
}

// Refresh handles POST /api/feed/refresh — discards the collection and
// re-seeds it from the ingestion collaborator.
func (h *FeedHandler) Refresh(c fiber.Ctx) error {
	if err := h.svc.Refresh(c.Context()); err != nil {
		Metrics.IngestFailures.Inc()
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "INGEST_FAILED", "Trending feed unavailable, kept current posts")
	}
	return c.JSON(fiber.Map{"success": true, "total": h.st.Len()})
}

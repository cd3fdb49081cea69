package handlers

import (
	"errors"

	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/services"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// POST /reviews {bookId, rating, review} — requires a confirmed order.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var body struct {
		BookID string `json:"bookId"`
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	bookID, ok := validate.ID(body.BookID)
	if !ok || !validate.Rating(body.Rating) {
		return jsonError(c, fiber.StatusBadRequest, "Missing fields")
	}

	switch err := h.Reviews.Add(bookID, tokenEmail(c), body.Rating, body.Review); {
	case err == nil:
		applog.Audit(c, "reviews.create", map[string]any{"book_id": bookID})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrForbidden):
		return jsonError(c, fiber.StatusForbidden, "Only buyers can review this book")
	case errors.Is(err, services.ErrConflict):
		return jsonError(c, fiber.StatusConflict, "Already reviewed")
	default:
		applog.Error(c, "reviews.create.fail", err, map[string]any{"book_id": bookID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not save review")
	}
}

// GET /reviews?bookId= (public)
func (h *ReviewHandler) ListForBook(c *fiber.Ctx) error {
	bookID, ok := validate.ID(c.Query("bookId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}
	reviews, err := h.Reviews.ForBook(bookID)
	if err != nil {
		applog.Error(c, "reviews.list.fail", err, map[string]any{"book_id": bookID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not load reviews")
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(reviews)
}

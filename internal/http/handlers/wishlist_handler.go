package handlers

import (
	"errors"

	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wishlist *repos.WishlistRepo
}

// POST /wishlist {bookId}
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var body struct {
		BookID string `json:"bookId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	bookID, ok := validate.ID(body.BookID)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}
	switch err := h.Wishlist.Add(tokenEmail(c), bookID); {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, repos.ErrDuplicate):
		return jsonError(c, fiber.StatusConflict, "Already wishlisted")
	default:
		applog.Error(c, "wishlist.add.fail", err, map[string]any{"book_id": bookID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not save wishlist")
	}
}

// DELETE /wishlist?bookId=
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	bookID, ok := validate.ID(c.Query("bookId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}
	if err := h.Wishlist.Remove(tokenEmail(c), bookID); err != nil {
		applog.Error(c, "wishlist.remove.fail", err, map[string]any{"book_id": bookID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not update wishlist")
	}
	return c.JSON(fiber.Map{"success": true})
}

// GET /wishlist — the caller's wishlisted books, resolved to catalog rows.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	books, err := h.Wishlist.ListBooks(tokenEmail(c))
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load wishlist")
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(books)
}

// GET /wishlist/check?bookId=
func (h *WishlistHandler) Check(c *fiber.Ctx) error {
	bookID, ok := validate.ID(c.Query("bookId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}
	exists, err := h.Wishlist.Exists(tokenEmail(c), bookID)
	if err != nil {
		applog.Error(c, "wishlist.check.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not check wishlist")
	}
	return c.JSON(fiber.Map{"wishlisted": exists})
}

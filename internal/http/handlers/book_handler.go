package handlers

import (
	"database/sql"

	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookHandler struct {
	Books *repos.BookRepo
}

// GET /books
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.Books.List(c.Query("category"), c.Query("seller"))
	if err != nil {
		applog.Error(c, "books.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load books")
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(books)
}

// GET /books/:id
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}
	book, err := h.Books.Get(id)
	if err == sql.ErrNoRows {
		return jsonError(c, fiber.StatusNotFound, "Book not found")
	}
	if err != nil {
		applog.Error(c, "books.get.fail", err, map[string]any{"book_id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Could not load book")
	}
	return c.JSON(book)
}

// POST /books (seller only)
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Quantity    int     `json:"quantity"`
		Image       string  `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	name, ok := validate.Name(body.Name)
	if !ok || body.Category == "" || body.Price < 0 || body.Quantity < 0 {
		return jsonError(c, fiber.StatusBadRequest, "Missing or invalid fields")
	}

	// RequireRole put the seller's account in context; the listing carries
	// its descriptor, not anything client-supplied.
	u, _ := c.Locals("user").(*domain.User)
	book := domain.Book{
		ID:          uuid.NewString(),
		Name:        name,
		Description: body.Description,
		Category:    body.Category,
		Price:       body.Price,
		Quantity:    body.Quantity,
		Image:       body.Image,
		Seller:      domain.Seller{Name: u.Name, Email: u.Email, Image: u.Image},
	}
	if err := h.Books.Create(book); err != nil {
		applog.Error(c, "books.create.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not save book")
	}
	applog.Audit(c, "books.create", map[string]any{"book_id": book.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": book.ID})
}

// ownBook loads the book and enforces seller ownership. Returns nil and
// writes the response when the caller may not touch it.
func (h *BookHandler) ownBook(c *fiber.Ctx, action string) *domain.Book {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		_ = jsonError(c, fiber.StatusBadRequest, "Invalid book id")
		return nil
	}
	book, err := h.Books.Get(id)
	if err == sql.ErrNoRows {
		_ = jsonError(c, fiber.StatusNotFound, "Book not found")
		return nil
	}
	if err != nil {
		applog.Error(c, "books.load.fail", err, map[string]any{"book_id": id})
		_ = jsonError(c, fiber.StatusInternalServerError, "Could not load book")
		return nil
	}
	if book.Seller.Email != tokenEmail(c) {
		applog.Security(c, "books.ownership.deny", map[string]any{"book_id": id, "action": action})
		_ = jsonError(c, fiber.StatusForbidden, "You can "+action+" only your own books")
		return nil
	}
	return &book
}

// PATCH /books/:id (seller owner only)
func (h *BookHandler) Update(c *fiber.Ctx) error {
	book := h.ownBook(c, "update")
	if book == nil {
		return nil
	}
	var upd repos.BookUpdate
	if err := c.BodyParser(&upd); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if (upd.Price != nil && *upd.Price < 0) || (upd.Quantity != nil && *upd.Quantity < 0) {
		return jsonError(c, fiber.StatusBadRequest, "Price and quantity must be non-negative")
	}
	if err := h.Books.Update(book.ID, upd); err != nil {
		applog.Error(c, "books.update.fail", err, map[string]any{"book_id": book.ID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not update book")
	}
	applog.Audit(c, "books.update", map[string]any{"book_id": book.ID})
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /books/:id (seller owner only)
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	book := h.ownBook(c, "delete")
	if book == nil {
		return nil
	}
	if err := h.Books.Delete(book.ID); err != nil {
		applog.Error(c, "books.delete.fail", err, map[string]any{"book_id": book.ID})
		return jsonError(c, fiber.StatusInternalServerError, "Could not delete book")
	}
	applog.Audit(c, "books.delete", map[string]any{"book_id": book.ID})
	return c.JSON(fiber.Map{"success": true})
}

// GET /my-inventory/:email (seller only, own inventory)
func (h *BookHandler) MyInventory(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != tokenEmail(c) {
		applog.Security(c, "inventory.scope.deny", map[string]any{"param": email})
		return jsonError(c, fiber.StatusForbidden, "You can view only your own inventory")
	}
	books, err := h.Books.List("", email)
	if err != nil {
		applog.Error(c, "inventory.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load inventory")
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(books)
}

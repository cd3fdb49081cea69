package handlers

import (
	"errors"

	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"
	"bookcourier/internal/services"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Svc      *services.UserService
	Users    *repos.UserRepo
	Requests *repos.SellerRequestRepo
}

// POST /user — upsert on sign-in. The account email is the verified token
// claim; the body only contributes display fields.
func (h *UserHandler) Upsert(c *fiber.Ctx) error {
	var body struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	_ = c.BodyParser(&body) // display fields are optional

	u, err := h.Svc.UpsertOnSignIn(tokenEmail(c), body.Name, body.Image)
	if err != nil {
		applog.Error(c, "user.upsert.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not save user")
	}
	applog.Info(c, "user.upsert", map[string]any{"role": u.Role})
	return c.JSON(u)
}

// GET /user/role
func (h *UserHandler) Role(c *fiber.Ctx) error {
	role, err := h.Svc.Role(tokenEmail(c))
	if errors.Is(err, services.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		applog.Error(c, "user.role.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load role")
	}
	return c.JSON(fiber.Map{"role": role})
}

// POST /become-seller
func (h *UserHandler) BecomeSeller(c *fiber.Ctx) error {
	switch err := h.Svc.RequestSeller(tokenEmail(c)); {
	case err == nil:
		applog.Audit(c, "user.seller.request", nil)
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrConflict):
		return jsonError(c, fiber.StatusConflict, "Already requested")
	default:
		applog.Error(c, "user.seller.request.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not save request")
	}
}

// GET /users (admin only)
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load users")
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(users)
}

// GET /seller-requests (admin only)
func (h *UserHandler) SellerRequests(c *fiber.Ctx) error {
	reqs, err := h.Requests.List()
	if err != nil {
		applog.Error(c, "admin.requests.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load requests")
	}
	if reqs == nil {
		reqs = []domain.SellerRequest{}
	}
	return c.JSON(reqs)
}

// PATCH /update-role (admin only)
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	email, ok := validate.Email(body.Email)
	if !ok || body.Role == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing email or role")
	}
	switch err := h.Svc.SetRole(email, body.Role); {
	case err == nil:
		applog.Audit(c, "admin.role.update", map[string]any{"target": email, "role": body.Role})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrBadTransition):
		return jsonError(c, fiber.StatusBadRequest, "Unknown role")
	default:
		applog.Error(c, "admin.role.update.fail", err, map[string]any{"target": email})
		return jsonError(c, fiber.StatusInternalServerError, "Could not update role")
	}
}

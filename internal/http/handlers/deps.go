package handlers

import (
	"bookcourier/internal/config"
	"bookcourier/internal/identity"
	"bookcourier/internal/payments"
	"bookcourier/internal/repos"
	"bookcourier/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Verifier identity.Verifier
	Users    *repos.UserRepo

	BookHandler     *BookHandler
	OrderHandler    *OrderHandler
	PaymentHandler  *PaymentHandler
	UserHandler     *UserHandler
	WishlistHandler *WishlistHandler
	ReviewHandler   *ReviewHandler
	StatsHandler    *StatsHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, verifier identity.Verifier, gate payments.Gateway) *Deps {
	bookRepo := repos.NewBookRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	reqRepo := repos.NewSellerRequestRepo(db)
	statsRepo := repos.NewStatsRepo(db)

	checkoutSvc := services.NewCheckoutService(bookRepo, orderRepo, gate, cfg.ClientOrigin)
	reviewSvc := services.NewReviewService(reviewRepo, orderRepo)
	userSvc := services.NewUserService(userRepo, reqRepo, cfg.RoleOverrides)

	return &Deps{
		Verifier:        verifier,
		Users:           userRepo,
		BookHandler:     &BookHandler{Books: bookRepo},
		OrderHandler:    &OrderHandler{Orders: orderRepo, Checkout: checkoutSvc},
		PaymentHandler:  &PaymentHandler{Checkout: checkoutSvc, WebhookSecret: cfg.WebhookSecret},
		UserHandler:     &UserHandler{Svc: userSvc, Users: userRepo, Requests: reqRepo},
		WishlistHandler: &WishlistHandler{Wishlist: wishRepo},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		StatsHandler:    &StatsHandler{Stats: statsRepo},
	}
}

// Routes registers the HTTP surface on the app. Kept beside the handlers so
// tests exercise the same route table the server runs.
func Routes(app *fiber.App, d *Deps) {
	auth := RequireAuth(d.Verifier)
	seller := RequireRole(d.Users, "seller")
	admin := RequireRole(d.Users, "admin")

	// Public catalog
	app.Get("/books", d.BookHandler.List)
	app.Get("/books/:id", d.BookHandler.Get)
	app.Get("/reviews", d.ReviewHandler.ListForBook)
	app.Get("/stats", d.StatsHandler.Summary)

	// Accounts
	app.Post("/user", auth, d.UserHandler.Upsert)
	app.Get("/user/role", auth, d.UserHandler.Role)
	app.Post("/become-seller", auth, d.UserHandler.BecomeSeller)

	// Wishlist
	app.Post("/wishlist", auth, d.WishlistHandler.Add)
	app.Delete("/wishlist", auth, d.WishlistHandler.Remove)
	app.Get("/wishlist", auth, d.WishlistHandler.List)
	app.Get("/wishlist/check", auth, d.WishlistHandler.Check)

	// Reviews
	app.Post("/reviews", auth, d.ReviewHandler.Create)

	// Orders
	app.Get("/my-orders", auth, d.OrderHandler.MyOrders)
	app.Get("/orders/check", auth, d.OrderHandler.Check)
	app.Delete("/orders/:id", auth, d.OrderHandler.Cancel)
	app.Patch("/orders/:id", auth, admin, d.OrderHandler.UpdateStatus)
	app.Get("/admin/orders", auth, admin, d.OrderHandler.AdminList)

	// Payments
	app.Post("/create-checkout-session", auth, d.PaymentHandler.CreateCheckoutSession)
	app.Post("/payment-success", d.PaymentHandler.PaymentSuccess)
	app.Post("/payment-webhook", d.PaymentHandler.Webhook)

	// Seller
	app.Post("/books", auth, seller, d.BookHandler.Create)
	app.Patch("/books/:id", auth, seller, d.BookHandler.Update)
	app.Delete("/books/:id", auth, seller, d.BookHandler.Delete)
	app.Get("/my-inventory/:email", auth, seller, d.BookHandler.MyInventory)
	app.Get("/manage-orders/:email", auth, seller, d.OrderHandler.ManageOrders)

	// Admin moderation
	app.Get("/users", auth, admin, d.UserHandler.List)
	app.Get("/seller-requests", auth, admin, d.UserHandler.SellerRequests)
	app.Patch("/update-role", auth, admin, d.UserHandler.UpdateRole)
}

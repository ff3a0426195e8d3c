package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	accountHandler *handler.AccountHandler,
	adminHandler *handler.AdminHandler,
	tokens *auth.Tokens,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Public catalogue
	mux.HandleFunc("GET /api/products", catalogHandler.List)
	mux.HandleFunc("GET /api/products/{slug}", catalogHandler.Get)
	mux.HandleFunc("GET /api/categories", catalogHandler.Categories)
	mux.HandleFunc("GET /api/categories/{slug}/products", catalogHandler.ByCategory)
	mux.HandleFunc("GET /media/{key}", adminHandler.ServeImage)

	// Session cart, available to anonymous visitors
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("POST /api/cart", cartHandler.Add)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("DELETE /api/cart/{productId}", cartHandler.Remove)

	// Authentication
	mux.HandleFunc("POST /api/auth/register", accountHandler.Register)
	mux.HandleFunc("POST /api/auth/login", accountHandler.Login)
	mux.HandleFunc("POST /api/auth/manager/login", accountHandler.ManagerLogin)

	// Customer account and checkout
	user := func(h http.HandlerFunc) http.Handler { return middleware.RequireUser(h) }
	mux.Handle("GET /api/me", user(accountHandler.Profile))
	mux.Handle("PUT /api/me", user(accountHandler.UpdateProfile))
	mux.Handle("GET /api/me/addresses", user(accountHandler.ListAddresses))
	mux.Handle("POST /api/me/addresses", user(accountHandler.AddAddress))
	mux.Handle("PUT /api/me/addresses/{id}", user(accountHandler.UpdateAddress))
	mux.Handle("DELETE /api/me/addresses/{id}", user(accountHandler.DeleteAddress))
	mux.Handle("GET /api/favorites", user(catalogHandler.Favourites))
	mux.Handle("POST /api/products/{id}/favorite", user(catalogHandler.AddFavourite))
	mux.Handle("DELETE /api/products/{id}/favorite", user(catalogHandler.RemoveFavourite))
	mux.Handle("GET /api/orders", user(orderHandler.List))
	mux.Handle("POST /api/orders", user(orderHandler.Create))
	mux.Handle("GET /api/orders/{id}", user(orderHandler.Get))
	mux.Handle("POST /api/orders/{id}/payment", user(orderHandler.Pay))
	mux.Handle("POST /api/products/{id}/checkout", user(orderHandler.DirectCheckout))

	// Manager back office
	manager := func(h http.HandlerFunc) http.Handler { return middleware.RequireManager(h) }
	mux.Handle("POST /api/admin/products", manager(adminHandler.CreateProduct))
	mux.Handle("PUT /api/admin/products/{id}", manager(adminHandler.UpdateProduct))
	mux.Handle("DELETE /api/admin/products/{id}", manager(adminHandler.DeleteProduct))
	mux.Handle("POST /api/admin/products/{id}/image", manager(adminHandler.UploadImage))
	mux.Handle("POST /api/admin/categories", manager(adminHandler.CreateCategory))
	mux.Handle("PUT /api/admin/categories/{id}", manager(adminHandler.UpdateCategory))
	mux.Handle("DELETE /api/admin/categories/{id}", manager(adminHandler.DeleteCategory))
	mux.Handle("GET /api/admin/orders", manager(adminHandler.ListOrders))
	mux.Handle("GET /api/admin/orders/{id}", manager(adminHandler.OrderDetail))
	mux.Handle("GET /api/admin/users", manager(adminHandler.ListUsers))
	mux.Handle("POST /api/admin/users", manager(adminHandler.CreateUser))
	mux.Handle("PUT /api/admin/users/{id}", manager(adminHandler.UpdateUser))
	mux.Handle("DELETE /api/admin/users/{id}", manager(adminHandler.DeleteUser))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> Session -> Authenticate
	var h http.Handler = mux
	h = middleware.Authenticate(tokens, logger)(h)
	h = middleware.Session(h)
	h = middleware.CORS(h)
	h = middleware.Metrics(mux)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

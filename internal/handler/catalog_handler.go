package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogHandler handles public catalogue HTTP requests.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(catalog service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/products. A q parameter switches to title search.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	var (
		products []model.Product
		err      error
	)
	if query := r.URL.Query().Get("q"); query != "" {
		products, err = h.catalog.SearchProducts(r.Context(), query, limit, offset)
	} else {
		products, err = h.catalog.GetProducts(r.Context(), limit, offset)
	}
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{slug}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, related, err := h.catalog.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"related": related,
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.GetCategories(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// ByCategory handles GET /api/categories/{slug}/products.
func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ProductsByCategory(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Favourites handles GET /api/favorites.
func (h *CatalogHandler) Favourites(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	products, err := h.catalog.GetFavourites(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// AddFavourite handles POST /api/products/{id}/favorite.
func (h *CatalogHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if err := h.catalog.AddFavourite(r.Context(), claims.UserID, productID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavourite handles DELETE /api/products/{id}/favorite.
func (h *CatalogHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if err := h.catalog.RemoveFavourite(r.Context(), claims.UserID, productID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

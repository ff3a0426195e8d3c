package handler

import (
	"io"
	"mime"
	"net/http"
	"path"

	"storefront/internal/image"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxImageUpload caps product image uploads at 10 MiB.
const maxImageUpload = 10 << 20

// AdminHandler handles the manager back-office HTTP requests.
type AdminHandler struct {
	catalog  service.CatalogService
	orders   service.OrderService
	accounts service.AccountService
	images   image.Store
	logger   zerolog.Logger
}

// NewAdminHandler creates a new back-office handler.
func NewAdminHandler(
	catalog service.CatalogService,
	orders service.OrderService,
	accounts service.AccountService,
	images image.Store,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		orders:   orders,
		accounts: accounts,
		images:   images,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/admin/products/{id}/image. The image comes
// as a multipart form field named "image"; the stored key replaces any
// previous key on the product.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "invalid multipart form"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "image field is required"), h.logger)
		return
	}
	defer file.Close()

	key, err := h.images.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to store image")
		writeError(w, err, h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	old := product.Image
	updated, err := h.catalog.UpdateProduct(r.Context(), id, &model.ProductRequest{
		CategoryID:  product.CategoryID.String(),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Image:       key,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if old != "" && old != key {
		if err := h.images.Delete(r.Context(), old); err != nil {
			h.logger.Warn().Err(err).Str("key", old).Msg("failed to delete previous image")
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

// ServeImage handles GET /media/{key}, streaming the stored bytes.
func (h *AdminHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	rc, err := h.images.Open(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn().Err(err).Str("key", key).Msg("failed to stream image")
	}
}

// CreateCategory handles POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrCategoryNotFound, h.logger)
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrCategoryNotFound, h.logger)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	orders, err := h.orders.AllOrders(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// OrderDetail handles GET /api/admin/orders/{id}.
func (h *AdminHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	detail, err := h.orders.OrderDetail(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	users, err := h.accounts.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.AdminUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.accounts.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrUserNotFound, h.logger)
		return
	}

	var req model.AdminUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.accounts.UpdateUser(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrUserNotFound, h.logger)
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

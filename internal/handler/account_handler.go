package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountHandler handles registration, login and account data requests.
type AccountHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "account").Logger(),
	}
}

// Register handles POST /api/auth/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.accounts.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.accounts.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ManagerLogin handles POST /api/auth/manager/login.
func (h *AccountHandler) ManagerLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.accounts.ManagerLogin(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/me.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	user, err := h.accounts.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/me.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	var req model.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), claims.UserID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListAddresses handles GET /api/me/addresses.
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	addresses, err := h.accounts.ListAddresses(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// AddAddress handles POST /api/me/addresses.
func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	var req model.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.accounts.AddAddress(r.Context(), claims.UserID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, address)
}

// UpdateAddress handles PUT /api/me/addresses/{id}.
func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	addressID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrAddressNotFound, h.logger)
		return
	}

	var req model.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.accounts.UpdateAddress(r.Context(), claims.UserID, addressID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, address)
}

// DeleteAddress handles DELETE /api/me/addresses/{id}.
func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	addressID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrAddressNotFound, h.logger)
		return
	}

	if err := h.accounts.DeleteAddress(r.Context(), claims.UserID, addressID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const addressColumns = `id, user_id, name, phone_number, address_line1, address_line2, city, state_province, postal_code, is_default`

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed shipping address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// Create inserts a new shipping address.
func (r *addressRepository) Create(ctx context.Context, address *model.ShippingAddress) error {
	query := `
		INSERT INTO shipping_addresses
			(id, user_id, name, phone_number, address_line1, address_line2, city, state_province, postal_code, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		address.ID, address.UserID, address.Name, address.PhoneNumber,
		address.AddressLine1, address.AddressLine2, address.City,
		address.StateProvince, address.PostalCode, address.IsDefault,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", address.UserID.String()).Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// Update rewrites an address owned by the given user.
func (r *addressRepository) Update(ctx context.Context, address *model.ShippingAddress) error {
	query := `
		UPDATE shipping_addresses
		SET name = $3, phone_number = $4, address_line1 = $5, address_line2 = $6,
			city = $7, state_province = $8, postal_code = $9, is_default = $10
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		address.ID, address.UserID, address.Name, address.PhoneNumber,
		address.AddressLine1, address.AddressLine2, address.City,
		address.StateProvince, address.PostalCode, address.IsDefault,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", address.ID.String()).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}

	return nil
}

// Delete removes an address owned by the given user.
func (r *addressRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM shipping_addresses WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to delete address")
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}

	return nil
}

// GetByID retrieves a single address by its ID.
func (r *addressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE id = $1`

	var a model.ShippingAddress
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Name, &a.PhoneNumber, &a.AddressLine1, &a.AddressLine2,
		&a.City, &a.StateProvince, &a.PostalCode, &a.IsDefault,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}

// GetByUser retrieves all addresses of a user.
func (r *addressRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE user_id = $1 ORDER BY is_default DESC, name`
	return r.query(ctx, query, userID)
}

// GetDefaultByUser retrieves the addresses the user flagged as default.
func (r *addressRepository) GetDefaultByUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE user_id = $1 AND is_default`
	return r.query(ctx, query, userID)
}

func (r *addressRepository) query(ctx context.Context, query string, userID uuid.UUID) ([]model.ShippingAddress, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.ShippingAddress
	for rows.Next() {
		var a model.ShippingAddress
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.PhoneNumber, &a.AddressLine1, &a.AddressLine2,
			&a.City, &a.StateProvince, &a.PostalCode, &a.IsDefault,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	tokens      *auth.Tokens
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	tokens *auth.Tokens,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		addressRepo: addressRepo,
		tokens:      tokens,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// Register creates a customer account.
func (s *accountService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := normaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Email and password must not be empty")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to check email")
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsManager:    false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login authenticates a user and issues a token.
func (s *accountService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	return s.login(ctx, req, false)
}

// ManagerLogin authenticates a manager. A valid customer login is rejected
// with the same error as a wrong password.
func (s *accountService) ManagerLogin(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	return s.login(ctx, req, true)
}

func (s *accountService) login(ctx context.Context, req *model.LoginRequest, requireManager bool) (*model.AuthResponse, error) {
	email := normaliseEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to retrieve user")
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}
	if requireManager && !user.IsManager {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.IsManager)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Bool("manager", user.IsManager).Msg("user logged in")
	return &model.AuthResponse{Token: token, User: *user}, nil
}

// EnsureManager creates the bootstrap manager account on first start. When
// an account with the given email already exists nothing happens.
func (s *accountService) EnsureManager(ctx context.Context, email, name, password string) error {
	email = normaliseEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check manager account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash manager password: %w", err)
	}

	manager := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		IsActive:     true,
		IsManager:    true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, manager); err != nil {
		return fmt.Errorf("failed to create manager account: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("manager account created")
	return nil
}

// GetProfile retrieves the user's own account.
func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to retrieve user")
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile edits the user's own email and name.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.ProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to retrieve user")
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	email := normaliseEmail(req.Email)
	if email != "" && email != user.Email {
		other, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			s.logger.Error().Err(err).Str("email", email).Msg("failed to check email")
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil {
			return nil, model.ErrEmailTaken
		}
		user.Email = email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update user")
		return nil, err
	}
	return user, nil
}

// ListAddresses retrieves the user's shipping addresses.
func (s *accountService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	addresses, err := s.addressRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to retrieve addresses")
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// AddAddress creates a shipping address for the user.
func (s *accountService) AddAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.ShippingAddress, error) {
	if err := validateAddressRequest(req); err != nil {
		return nil, err
	}

	address := &model.ShippingAddress{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		StateProvince: req.StateProvince,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create address")
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

// UpdateAddress edits one of the user's shipping addresses.
func (s *accountService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *model.AddressRequest) (*model.ShippingAddress, error) {
	if err := validateAddressRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		s.logger.Error().Err(err).Str("address_id", addressID.String()).Msg("failed to retrieve address")
		return nil, fmt.Errorf("failed to retrieve address: %w", err)
	}
	if existing == nil || existing.UserID != userID {
		return nil, model.ErrAddressNotFound
	}

	existing.Name = req.Name
	existing.PhoneNumber = req.PhoneNumber
	existing.AddressLine1 = req.AddressLine1
	existing.AddressLine2 = req.AddressLine2
	existing.City = req.City
	existing.StateProvince = req.StateProvince
	existing.PostalCode = req.PostalCode
	existing.IsDefault = req.IsDefault

	if err := s.addressRepo.Update(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("address_id", addressID.String()).Msg("failed to update address")
		return nil, err
	}
	return existing, nil
}

// DeleteAddress removes one of the user's shipping addresses.
func (s *accountService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.addressRepo.Delete(ctx, addressID, userID); err != nil {
		s.logger.Error().Err(err).Str("address_id", addressID.String()).Msg("failed to delete address")
		return err
	}
	return nil
}

// ListUsers retrieves all accounts with pagination.
func (s *accountService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := s.userRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve users")
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

// CreateUser creates an account with explicit flags.
func (s *accountService) CreateUser(ctx context.Context, req *model.AdminUserRequest) (*model.User, error) {
	email := normaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Email and password must not be empty")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to check email")
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     req.IsActive,
		IsManager:    req.IsManager,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Bool("manager", user.IsManager).Msg("user created")
	return user, nil
}

// UpdateUser edits an account. The password is replaced only when the
// request carries one.
func (s *accountService) UpdateUser(ctx context.Context, id uuid.UUID, req *model.AdminUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to retrieve user")
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	email := normaliseEmail(req.Email)
	if email != "" && email != user.Email {
		other, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			s.logger.Error().Err(err).Str("email", email).Msg("failed to check email")
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil {
			return nil, model.ErrEmailTaken
		}
		user.Email = email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	user.IsActive = req.IsActive
	user.IsManager = req.IsManager
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user")
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *accountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateAddressRequest(req *model.AddressRequest) error {
	if req.Name == "" || req.AddressLine1 == "" || req.City == "" || req.PostalCode == "" {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Name, address line 1, city and postal code are required")
	}
	return nil
}

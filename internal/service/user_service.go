package service

import (
	"context"
	"errors"

	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
)

// ErrNoUpdates is returned for an update request carrying no fields.
var ErrNoUpdates = errors.New("no updates provided")

const defaultDailyAILimit = 10

// UserService handles user account management: self-service
// registration and the admin-managed CRUD surface.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Register creates a self-registered account. Uniqueness is enforced by
// the constrained insert; the duplicate error names the clashing field
// (username vs PIN), which is more than the login path reveals — kept
// as observed.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		PIN:          req.PIN,
		Role:         model.RoleSelfRegistered,
		UnlimitedAI:  false,
		DailyAILimit: defaultDailyAILimit,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all user accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Create adds an admin-created account. An unlimited-AI account stores
// the integer sentinel as its daily limit.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest, createdBy string) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	limit := defaultDailyAILimit
	if req.DailyAILimit != nil {
		limit = *req.DailyAILimit
	}
	if req.UnlimitedAI {
		limit = model.UnlimitedAISentinel
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		PIN:          req.PIN,
		Role:         model.RoleAdminCreated,
		UnlimitedAI:  req.UnlimitedAI,
		DailyAILimit: limit,
		CreatedBy:    &createdBy,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. Only fields present in the request
// reach the UPDATE statement; zero recognized fields is an error.
// Switching unlimitedAI on forces the stored limit to the sentinel.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	upd := &repository.UserUpdate{
		Username:     req.Username,
		PIN:          req.PIN,
		Email:        req.Email,
		UnlimitedAI:  req.UnlimitedAI,
		DailyAILimit: req.DailyAILimit,
	}

	if req.Password != nil {
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	if req.UnlimitedAI != nil && *req.UnlimitedAI {
		sentinel := model.UnlimitedAISentinel
		upd.DailyAILimit = &sentinel
	}

	if upd.Username == nil && upd.PasswordHash == nil && upd.PIN == nil &&
		upd.Email == nil && upd.UnlimitedAI == nil && upd.DailyAILimit == nil {
		return nil, ErrNoUpdates
	}

	return s.userRepo.Update(ctx, id, upd)
}

// Delete removes a user; sessions and daily-call rows cascade.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}

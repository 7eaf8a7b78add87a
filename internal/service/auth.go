package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/repository"
)

// Registration and login failure kinds. Login failures are deliberately
// collapsed into a single generic error so responses cannot be used to
// enumerate usernames.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterRequest carries the fields required to create an account.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is returned by register and login: a freshly minted token
// and the user's profile view.
type AuthResponse struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

// AuthService orchestrates registration and login against the user store
// and mints tokens for authenticated users.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	CurrentUser(ctx context.Context, username string) (*models.UserView, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	limiter    LoginLimiter
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService instance. The limiter may be
// nil, in which case login throttling is disabled.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, limiter LoginLimiter, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		limiter:    limiter,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	s.logger.Info("registering new user", zap.String("username", req.Username))

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		Enabled:      true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can pass the optimistic checks;
		// the unique constraint decides, and the loser gets a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(ctx, req.Username)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username), zap.Int64("user_id", user.ID))

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.View()}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	if err := s.enforceLimiter(ctx, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.Int64("user_id", user.ID))

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.View()}, nil
}

func (s *authService) CurrentUser(ctx context.Context, username string) (*models.UserView, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view := user.View()
	return &view, nil
}

// enforceLimiter applies the login throttle. Over-limit attempts are
// reported as generic credential failures; a broken limiter fails open so
// a redis outage cannot lock out every user.
func (s *authService) enforceLimiter(ctx context.Context, username string) error {
	if s.limiter == nil {
		return nil
	}

	err := s.limiter.Enforce(ctx, username)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrLoginRateLimited):
		s.logger.Warn("login throttled", zap.String("username", username))
		return ErrInvalidCredentials
	default:
		s.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
}

// classifyDuplicate decides which conflict to report after an insert lost
// a registration race.
func (s *authService) classifyDuplicate(ctx context.Context, username string) error {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err == nil && taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

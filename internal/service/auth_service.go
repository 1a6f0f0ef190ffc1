package service

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"referee_training_backend/internal/config"
	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
)

// AuthService handles registration, login and token issuance.
type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Language string `json:"language"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult carries the issued token with the authenticated user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(req RegisterRequest) (*AuthResult, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, util.ErrPersistence
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, util.ErrPersistence
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
		Language: "en",
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("register user", zap.Error(err))
		return nil, util.ErrPersistence
	}

	return s.issue(user)
}

func (s *AuthService) Login(req LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, util.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("update last login", zap.Error(err), zap.String("userId", user.ID))
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, util.ErrPersistence
	}
	return &AuthResult{Token: token, User: user}, nil
}

package service

import (
	"golang.org/x/crypto/bcrypt"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
)

// UserService covers profile reads/updates and admin user management.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	return user, nil
}

// ProfileRequest uses pointers so a partial update leaves missing fields
// untouched.
type ProfileRequest struct {
	Name         *string `json:"name"`
	Language     *string `json:"language"`
	Association  *string `json:"association"`
	RefereeLevel *string `json:"refereeLevel"`
	Password     *string `json:"password"`
}

func (s *UserService) UpdateProfile(id string, req ProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Language != nil && *req.Language != "" {
		user.Language = *req.Language
	}
	if req.Association != nil {
		user.Association = *req.Association
	}
	if req.RefereeLevel != nil {
		user.RefereeLevel = *req.RefereeLevel
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			return nil, util.ErrValidation
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, util.ErrPersistence
		}
		user.Password = string(hashed)
	}
	user.ProfileComplete = user.Association != "" && user.RefereeLevel != ""

	if err := s.userRepo.Update(user); err != nil {
		return nil, util.ErrPersistence
	}
	return user, nil
}

// --- admin ---

func (s *UserService) List(page, limit int, search string) ([]model.User, int64, error) {
	return s.userRepo.List(page, limit, search)
}

// AdminUserRequest toggles role and account state.
type AdminUserRequest struct {
	Role     *model.UserRole `json:"role"`
	Disabled *bool           `json:"disabled"`
}

func (s *UserService) AdminUpdate(id string, req AdminUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if req.Role != nil {
		if *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
			return nil, util.ErrValidation
		}
		user.Role = *req.Role
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, util.ErrPersistence
	}
	return user, nil
}

// internal/services/auth_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

type AuthService struct {
	db          *gorm.DB
	revocations *RevocationStore
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries a partial update; empty fields keep their
// current values.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func NewAuthService(db *gorm.DB, revocations *RevocationStore) *AuthService {
	return &AuthService{db: db, revocations: revocations}
}

func (s *AuthService) Signup(req *SignupRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid signup data", err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Upstream(err)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.RoleCustomer,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Upstream(err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid login data", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindAuthentication, "invalid credentials")
		}
		return nil, apperrors.Upstream(err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.New(apperrors.KindAuthentication, "invalid credentials")
	}

	return &user, nil
}

// Logout invalidates outstanding tokens for the user by bumping the
// revocation epoch. Without a revocation store the cookie clear is all the
// invalidation there is, and a stolen token stays valid until natural expiry.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if s.revocations == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, userID.String())
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.Upstream(err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid profile data", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.Upstream(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		var other models.User
		if err := s.db.Where("email = ?", req.Email).First(&other).Error; err == nil {
			return nil, apperrors.New(apperrors.KindConflict, "email already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Upstream(err)
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, apperrors.Upstream(err)
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return &user, nil
}

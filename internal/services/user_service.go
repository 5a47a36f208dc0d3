// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

// UserService covers administrative user management.
type UserService struct {
	db *gorm.DB
}

type AdminUpdateUserRequest struct {
	Name    string `json:"name" validate:"omitempty,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Find(&users).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}
	return users, nil
}

func (s *UserService) Get(id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidID, "invalid user id")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.Upstream(err)
	}
	return &user, nil
}

func (s *UserService) Update(id string, req *AdminUpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid user data", err)
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
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
	if req.IsAdmin != nil {
		if *req.IsAdmin {
			user.Role = models.RoleAdmin
		} else {
			user.Role = models.RoleCustomer
		}
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return user, nil
}

func (s *UserService) Delete(id string, requester models.User) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.New(apperrors.KindInvalidID, "invalid user id")
	}

	if userID == requester.ID {
		return apperrors.New(apperrors.KindValidation, "cannot delete own account")
	}

	result := s.db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return apperrors.Upstream(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}

	return nil
}

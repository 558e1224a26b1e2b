package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/dto"
	"github.com/notablehq/notable-backend/internal/models"
	"github.com/notablehq/notable-backend/internal/security"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken        = errors.New("the user with this email already exists in the system")
	ErrEmailConflict     = errors.New("user with this email already exists")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrWeakPassword      = errors.New("password must be between 8 and 40 characters")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrSuperuserDelete   = errors.New("super users are not allowed to delete themselves")
	ErrAdminSelfDelete   = errors.New("admins are not allowed to delete their own account")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLen = 8
	maxPasswordLen = 40
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create registers a new user account. Used by both public signup and
// first-superuser seeding paths; the caller decides the flags.
func (s *UserService) Create(req *dto.SignupRequest) (*models.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.New(),
		Email:          req.Email,
		HashedPassword: hash,
		FullName:       req.FullName,
		IsActive:       true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Get returns a user by id.
func (s *UserService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// List returns a page of users plus the total count.
func (s *UserService) List(skip, limit int) ([]models.User, int64, error) {
	var users []models.User
	if err := s.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, count, nil
}

// UpdateProfile applies a self-service profile update. Account flags
// are not reachable from here.
func (s *UserService) UpdateProfile(user *models.User, req *dto.UpdateMeRequest) (*models.User, error) {
	if req.Email != nil && *req.Email != user.Email {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		if err := s.checkEmailFree(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// AdminUpdate applies a superuser-driven update to the target user.
func (s *UserService) AdminUpdate(userID uuid.UUID, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		if err := s.checkEmailFree(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hash
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdatePassword changes the user's password after checking the current
// one.
func (s *UserService) UpdatePassword(user *models.User, req *dto.UpdatePasswordRequest) error {
	ok, err := security.VerifyPassword(req.CurrentPassword, user.HashedPassword)
	if err != nil || !ok {
		return ErrIncorrectPassword
	}

	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(user).Update("hashed_password", hash).Error
}

// DeleteSelf removes the caller's own account. Superusers cannot remove
// themselves.
func (s *UserService) DeleteSelf(user *models.User) error {
	if user.IsSuperuser {
		return ErrSuperuserDelete
	}
	return s.deleteUser(user)
}

// AdminDelete removes the target account. An admin cannot delete their
// own account through this path.
func (s *UserService) AdminDelete(caller *models.User, userID uuid.UUID) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if user.ID == caller.ID {
		return ErrAdminSelfDelete
	}
	return s.deleteUser(user)
}

func (s *UserService) deleteUser(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func (s *UserService) checkEmailFree(email string, selfID uuid.UUID) error {
	var other models.User
	err := s.db.Where("email = ?", email).First(&other).Error
	if err == nil && other.ID != selfID {
		return ErrEmailConflict
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrWeakPassword
	}
	return nil
}
